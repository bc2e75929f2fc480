package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type WatchIntervalRequest struct {
	Interval string `json:"interval"` // Go duration, e.g. "500ms"
}

type WatchResponse struct {
	Status   string `json:"status"`
	Interval string `json:"interval,omitempty"`
}

// control requests are queued for the watcher, hence 202

func (h *Handler) startWatch(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Start(); err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("Watch start requested")
	h.writeJSON(w, http.StatusAccepted, WatchResponse{Status: "running"})
}

func (h *Handler) stopWatch(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Stop(); err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("Watch stop requested")
	h.writeJSON(w, http.StatusAccepted, WatchResponse{Status: "paused"})
}

func (h *Handler) setWatchInterval(w http.ResponseWriter, r *http.Request) {
	var req WatchIntervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	interval, err := time.ParseDuration(req.Interval)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid interval: %v", err)})
		return
	}

	if err := h.manager.SetInterval(interval); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Watch interval change requested", "interval", interval.String())
	h.writeJSON(w, http.StatusAccepted, WatchResponse{Status: "updated", Interval: interval.String()})
}
