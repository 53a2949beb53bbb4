package handler

import (
	"encoding/json"
	"net/http"

	"factfind/internal/service"
	"factfind/internal/transport/rest/middleware"
)

// AssistantHandler handles the assistant endpoint
type AssistantHandler struct {
	assistantSvc *service.AssistantService
	reportSvc    *service.ReportService
	factfindSvc  *service.FactFindService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantSvc *service.AssistantService, reportSvc *service.ReportService, factfindSvc *service.FactFindService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc, reportSvc: reportSvc, factfindSvc: factfindSvc}
}

// Generate handles POST /v1/sessions/{id}/assistant: answers a question
// grounded in the session's fact-find summary.
func (h *AssistantHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.factfindSvc.Session(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	user := middleware.GetUser(r.Context())
	if user == nil || (!user.IsAdmin && user.ID != session.UserID) {
		writeError(w, http.StatusForbidden, "not your session")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	summary, err := h.reportSvc.SummaryLines(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	response, err := h.assistantSvc.Generate(r.Context(), summary, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assistant request failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
