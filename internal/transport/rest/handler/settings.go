package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"factfind/internal/model"
	"factfind/internal/service"
)

// SettingsHandler handles admin settings endpoints
type SettingsHandler struct {
	settingsSvc *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsSvc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// Get handles GET /v1/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrSettingsNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Update handles PATCH /v1/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update model.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsSvc.Update(r.Context(), update)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
