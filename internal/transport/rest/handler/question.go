package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"factfind/internal/model"
	"factfind/internal/service"
)

// QuestionHandler handles question bank endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// List handles GET /v1/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list questions")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Create handles POST /v1/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.questionSvc.Create(r.Context(), &question); err != nil {
		writeQuestionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

// Update handles PUT /v1/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question.ID = id

	if err := h.questionSvc.Update(r.Context(), &question); err != nil {
		writeQuestionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// Delete handles DELETE /v1/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.questionSvc.Delete(r.Context(), id); err != nil {
		writeQuestionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /v1/questions/reorder
func (h *QuestionHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.questionSvc.Reorder(r.Context(), req.IDs); err != nil {
		writeQuestionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "question operation failed")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
