package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"factfind/internal/questionnaire"
	"factfind/internal/service"
	"factfind/internal/transport/rest/middleware"
)

// SessionHandler handles fact-find session endpoints
type SessionHandler struct {
	sessionSvc  *service.SessionService
	factfindSvc *service.FactFindService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, factfindSvc *service.FactFindService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, factfindSvc: factfindSvc}
}

// List handles GET /v1/sessions. Admins see every session, respondents
// see their own.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if user.IsAdmin {
		sessions, err := h.sessionSvc.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list sessions")
			return
		}
		writeJSON(w, http.StatusOK, sessions)
		return
	}

	sessions, err := h.sessionSvc.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Create handles POST /v1/sessions: starts a new fact find and returns
// the session together with its first step.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	session, step, err := h.factfindSvc.StartSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": session,
		"step":    step,
	})
}

// Get handles GET /v1/sessions/{id}: the session row plus its persisted
// answers.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := h.sessionSvc.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if !h.canAccess(r, view.Session.UserID) {
		writeError(w, http.StatusForbidden, "not your session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Update handles PATCH /v1/sessions/{id}: status and signature changes.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.factfindSvc.Session(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if !h.canAccess(r, session.UserID) {
		writeError(w, http.StatusForbidden, "not your session")
		return
	}

	var update service.SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.sessionSvc.Update(r.Context(), id, update)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Current handles GET /v1/sessions/{id}/current
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	step, ok := h.stepOp(w, r, h.factfindSvc.Current)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// SubmitAnswer handles POST /v1/sessions/{id}/answers
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var in questionnaire.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.factfindSvc.Submit(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, questionnaire.ErrInvalidSelection),
			errors.Is(err, questionnaire.ErrNoSelection):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, questionnaire.ErrNotPresenting),
			errors.Is(err, service.ErrSessionCompleted):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeSessionError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// Previous handles POST /v1/sessions/{id}/previous
func (h *SessionHandler) Previous(w http.ResponseWriter, r *http.Request) {
	step, ok := h.stepOp(w, r, h.factfindSvc.Previous)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// Summary handles GET /v1/sessions/{id}/summary
func (h *SessionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	pairs, err := h.factfindSvc.Summary(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pairs)
}

// stepOp runs a traversal operation after the ownership check.
func (h *SessionHandler) stepOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int) (*service.Step, error)) (*service.Step, bool) {
	id, ok := h.ownedSession(w, r)
	if !ok {
		return nil, false
	}
	step, err := op(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return nil, false
	}
	return step, true
}

// ownedSession parses the id and enforces the admin-or-owner rule.
func (h *SessionHandler) ownedSession(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return 0, false
	}
	session, err := h.factfindSvc.Session(r.Context(), id)
	if err != nil {
		writeSessionError(w, err)
		return 0, false
	}
	if !h.canAccess(r, session.UserID) {
		writeError(w, http.StatusForbidden, "not your session")
		return 0, false
	}
	return id, true
}

func (h *SessionHandler) canAccess(r *http.Request, ownerID int) bool {
	user := middleware.GetUser(r.Context())
	return user != nil && (user.IsAdmin || user.ID == ownerID)
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "session operation failed")
}
