package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"factfind/internal/model"
)

// In-memory repository fakes for the service tests.

type fakeQuestionRepo struct {
	questions map[int]model.Question
	nextID    int
}

func newFakeQuestionRepo(questions ...model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[int]model.Question), nextID: 1}
	for _, q := range questions {
		if q.ID >= r.nextID {
			r.nextID = q.ID + 1
		}
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) List(_ context.Context) ([]model.Question, error) {
	out := make([]model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *model.Question) error {
	question.ID = r.nextID
	r.nextID++
	r.questions[question.ID] = *question
	return nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *model.Question) error {
	r.questions[question.ID] = *question
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := r.questions[id]; !ok {
		return false, nil
	}
	delete(r.questions, id)
	return true, nil
}

func (r *fakeQuestionRepo) Reorder(_ context.Context, ids []int) error {
	for rank, id := range ids {
		q, ok := r.questions[id]
		if !ok {
			continue
		}
		q.Order = rank + 1
		r.questions[id] = q
	}
	return nil
}

type fakeSessionRepo struct {
	sessions map[int]model.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int]model.Session), nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, userID int) (*model.Session, error) {
	s := model.Session{
		ID:        r.nextID,
		UserID:    userID,
		Status:    model.SessionInProgress,
		StartedAt: time.Now(),
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.sessions[s.ID] = s
	return &s, nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int) (*model.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSessionRepo) ListByUser(_ context.Context, userID int) ([]model.Session, error) {
	var out []model.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListAll(_ context.Context) ([]model.Session, error) {
	var out []model.Session
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *model.Session) error {
	r.sessions[session.ID] = *session
	return nil
}

type fakeAnswerRepo struct {
	answers []model.Answer
	fail    bool
}

func (r *fakeAnswerRepo) Upsert(_ context.Context, answer *model.Answer) error {
	if r.fail {
		return errors.New("write refused")
	}
	for i, a := range r.answers {
		if a.SessionID == answer.SessionID && a.QuestionID == answer.QuestionID {
			r.answers[i].Value = answer.Value
			return nil
		}
	}
	a := *answer
	a.ID = len(r.answers) + 1
	a.CreatedAt = time.Now()
	r.answers = append(r.answers, a)
	return nil
}

func (r *fakeAnswerRepo) ListBySession(_ context.Context, sessionID int) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range r.answers {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type countingQuestionCache struct {
	cached        []model.Question
	invalidations int
}

func (c *countingQuestionCache) Set(_ context.Context, questions []model.Question) error {
	c.cached = questions
	return nil
}

func (c *countingQuestionCache) Get(_ context.Context) ([]model.Question, error) {
	return c.cached, nil
}

func (c *countingQuestionCache) Invalidate(_ context.Context) error {
	c.cached = nil
	c.invalidations++
	return nil
}
