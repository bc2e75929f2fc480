package rest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ajkula/livetext/config"
	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/inbound"
	"github.com/ajkula/livetext/domain/port/outbound"
)

// Handler serves the HTTP API over the resource manager
type Handler struct {
	manager  inbound.ResourceManager
	registry outbound.ResourceRegistry
	config   *config.Config
	logger   outbound.Logger
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewHandler(
	manager inbound.ResourceManager,
	registry outbound.ResourceRegistry,
	cfg *config.Config,
	logger outbound.Logger,
) *Handler {
	return &Handler{
		manager:  manager,
		registry: registry,
		config:   cfg,
		logger:   logger,
	}
}

// SetupRoutes configures the REST API routes
func (h *Handler) SetupRoutes(router *mux.Router) {
	// resources
	router.HandleFunc("/api/resources", h.listResources).Methods("GET")
	router.HandleFunc("/api/resources", h.registerResource).Methods("POST")
	router.HandleFunc("/api/resources/{id}", h.getResource).Methods("GET")
	router.HandleFunc("/api/resources/{id}/strict", h.strictGetResource).Methods("GET")

	// watcher control
	router.HandleFunc("/api/watch/start", h.startWatch).Methods("POST")
	router.HandleFunc("/api/watch/stop", h.stopWatch).Methods("POST")
	router.HandleFunc("/api/watch/interval", h.setWatchInterval).Methods("PUT")

	router.HandleFunc("/api/settings", h.getSettings).Methods("GET")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ioErr *model.IOError

	switch {
	case errors.Is(err, model.ErrResourceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrDeadWatcher):
		status = http.StatusServiceUnavailable
	case errors.Is(err, model.ErrInvalidInterval), errors.Is(err, model.ErrEmptyResourcePath):
		status = http.StatusBadRequest
	case errors.As(err, &ioErr) && errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		h.logger.Error("Request failed", "error", err, "status", status)
	}

	h.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}
