package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajkula/livetext/domain/model"
)

type RegisterResourceRequest struct {
	Path string `json:"path"`
}

type ResourceResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	Text string `json:"text"`
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.registry.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"resources": resources,
		"count":     len(resources),
	})
}

func (h *Handler) registerResource(w http.ResponseWriter, r *http.Request) {
	var req RegisterResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode register request", "error", err)
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	// the response carries the registration snapshot; once Add returns the
	// resource is only touched through registry.With
	text, handle, err := h.manager.Register(req.Path)
	if err != nil {
		h.logger.Warn("Failed to register resource", "path", req.Path, "error", err)
		h.writeError(w, err)
		return
	}

	id, err := h.registry.Add(r.Context(), model.NewTextResource(text, handle, h.logger))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("Resource registered", "id", id, "path", handle.Path())

	h.writeJSON(w, http.StatusCreated, ResourceResponse{
		ID:   id,
		Path: handle.Path(),
		Text: text,
	})
}

// getResource always answers with the last good text
func (h *Handler) getResource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var response ResourceResponse
	err := h.registry.With(r.Context(), id, func(res *model.TextResource) error {
		response = ResourceResponse{ID: id, Path: res.Path(), Text: res.Get()}
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}

// strictGetResource reports a pending refresh failure instead of stale text
func (h *Handler) strictGetResource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var response ResourceResponse
	err := h.registry.With(r.Context(), id, func(res *model.TextResource) error {
		text, err := res.StrictGet()
		if err != nil {
			return err
		}
		response = ResourceResponse{ID: id, Path: res.Path(), Text: text}
		return nil
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, response)
}
