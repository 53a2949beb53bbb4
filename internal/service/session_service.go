package service

import (
	"context"
	"fmt"

	"factfind/internal/model"
	"factfind/internal/repository"
)

// SessionView is a session joined with its persisted answers, for the
// detail and review screens.
type SessionView struct {
	Session model.Session  `json:"session"`
	Answers []model.Answer `json:"answers"`
}

// SessionService exposes the durable session records. Ownership rules
// (admin sees all, respondents see their own) are applied by the
// transport layer, which knows who is asking.
type SessionService struct {
	sessions repository.SessionRepo
	answers  repository.AnswerRepo
}

func NewSessionService(sessions repository.SessionRepo, answers repository.AnswerRepo) *SessionService {
	return &SessionService{sessions: sessions, answers: answers}
}

func (s *SessionService) ListAll(ctx context.Context) ([]model.Session, error) {
	return s.sessions.ListAll(ctx)
}

func (s *SessionService) ListByUser(ctx context.Context, userID int) ([]model.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *SessionService) Get(ctx context.Context, id int) (*SessionView, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	answers, err := s.answers.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return &SessionView{Session: *session, Answers: answers}, nil
}

// SessionUpdate carries the mutable session fields. Nil means leave
// unchanged.
type SessionUpdate struct {
	Status        *model.SessionStatus `json:"status,omitempty"`
	SignatureData *string              `json:"signatureData,omitempty"`
}

func (s *SessionService) Update(ctx context.Context, id int, update SessionUpdate) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if update.Status != nil {
		session.Status = *update.Status
	}
	if update.SignatureData != nil {
		session.SignatureData = *update.SignatureData
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return session, nil
}
