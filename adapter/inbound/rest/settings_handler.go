package rest

import (
	"net/http"

	"github.com/ajkula/livetext/config"
)

type SettingsResponse struct {
	Config  *config.PublicConfig `json:"config"`
	Message string               `json:"message,omitempty"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Getting current settings")

	cfg := h.config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	h.writeJSON(w, http.StatusOK, SettingsResponse{
		Config:  cfg.ToPublic(),
		Message: "Settings retrieved successfully",
	})
}
