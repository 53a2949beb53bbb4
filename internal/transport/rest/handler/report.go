package handler

import (
	"net/http"

	"factfind/internal/service"
	"factfind/internal/transport/rest/middleware"
)

// ReportHandler handles export endpoints
type ReportHandler struct {
	reportSvc   *service.ReportService
	factfindSvc *service.FactFindService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService, factfindSvc *service.FactFindService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc, factfindSvc: factfindSvc}
}

// GeneratePDF handles POST /v1/sessions/{id}/report/pdf: renders the
// summary document, marks the session completed, and emails the PDF
// when recipients are configured.
func (h *ReportHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	result, err := h.reportSvc.GeneratePDF(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	if result.Warning != "" {
		w.Header().Set("X-Warning", result.Warning)
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
}

// GenerateExcel handles GET /v1/sessions/{id}/report/excel
func (h *ReportHandler) GenerateExcel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	result, err := h.reportSvc.GenerateExcel(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
}

func (h *ReportHandler) ownedSession(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return 0, false
	}
	session, err := h.factfindSvc.Session(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return 0, false
	}
	user := middleware.GetUser(r.Context())
	if user == nil || (!user.IsAdmin && user.ID != session.UserID) {
		writeError(w, http.StatusForbidden, "not your session")
		return 0, false
	}
	return id, true
}
