package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"factfind/internal/cache"
	"factfind/internal/logger"
	"factfind/internal/model"
	"factfind/internal/questionnaire"
	"factfind/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session is already completed")
)

// answerWriteTimeout bounds the durable write on the submit hot path.
const answerWriteTimeout = 3 * time.Second

// Step is the respondent-facing view of a session after a traversal
// operation. Question is nil when the phase is complete. Persisted is
// false when the durable answer write failed; the traversal still
// advanced and Warning says why.
type Step struct {
	SessionID int             `json:"sessionId"`
	Phase     string          `json:"phase"`
	Question  *model.Question `json:"question,omitempty"`
	Persisted bool            `json:"persisted"`
	Warning   string          `json:"warning,omitempty"`
}

// FactFindService drives respondent sessions. Each session works over a
// question snapshot taken at start; the live controller state is parked
// in redis between requests and rebuilt from Postgres on a cache miss.
type FactFindService struct {
	sessions  repository.SessionRepo
	answers   repository.AnswerRepo
	questions *QuestionService
	states    cache.SessionCache
}

func NewFactFindService(sessions repository.SessionRepo, answers repository.AnswerRepo, questions *QuestionService, states cache.SessionCache) *FactFindService {
	return &FactFindService{
		sessions:  sessions,
		answers:   answers,
		questions: questions,
		states:    states,
	}
}

// StartSession creates a session, snapshots the question bank, and
// presents the first visible question. An empty bank completes the
// session immediately.
func (s *FactFindService) StartSession(ctx context.Context, userID int) (*model.Session, *Step, error) {
	snapshot, err := s.questions.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	ctrl := questionnaire.NewController(snapshot)
	question := ctrl.Start()
	if question == nil {
		if err := s.complete(ctx, session); err != nil {
			return nil, nil, err
		}
	}
	s.park(ctx, session.ID, ctrl)

	return session, s.step(session.ID, ctrl, question, true, ""), nil
}

// Current returns the question being presented, rebuilding the
// controller when its parked state has expired.
func (s *FactFindService) Current(ctx context.Context, sessionID int) (*Step, error) {
	session, ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.step(session.ID, ctrl, ctrl.Current(), true, ""), nil
}

// Submit records an answer for the session's current question and
// advances. The durable write is best-effort: when Postgres is down the
// respondent still moves forward, and the miss is reported in the Step.
func (s *FactFindService) Submit(ctx context.Context, sessionID int, in questionnaire.Input) (*Step, error) {
	session, ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionCompleted {
		return nil, ErrSessionCompleted
	}

	res, err := ctrl.Submit(in)
	if err != nil {
		return nil, err
	}

	persisted := true
	warning := ""
	writeCtx, cancel := context.WithTimeout(ctx, answerWriteTimeout)
	defer cancel()
	if err := s.answers.Upsert(writeCtx, &model.Answer{
		SessionID:  sessionID,
		QuestionID: res.Recorded.QuestionID,
		Value:      res.Recorded.Value,
	}); err != nil {
		logger.Warn("answer write failed", err)
		persisted = false
		warning = "answer was not saved durably"
	}

	if res.Done {
		if err := s.complete(ctx, session); err != nil {
			return nil, err
		}
	}
	s.park(ctx, sessionID, ctrl)

	return s.step(sessionID, ctrl, res.Next, persisted, warning), nil
}

// Previous retreats to the prior visible question.
func (s *FactFindService) Previous(ctx context.Context, sessionID int) (*Step, error) {
	session, ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	question := ctrl.GoPrevious()
	s.park(ctx, sessionID, ctrl)
	return s.step(session.ID, ctrl, question, true, ""), nil
}

// Summary returns the session's recorded answers resolved against its
// question snapshot, in first-submission order.
func (s *FactFindService) Summary(ctx context.Context, sessionID int) ([]model.QA, error) {
	_, ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ctrl.Summary(), nil
}

// Session returns the durable session row.
func (s *FactFindService) Session(ctx context.Context, sessionID int) (*model.Session, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// load fetches the session row and its controller, rebuilding the
// controller from persisted answers when the parked state is gone.
func (s *FactFindService) load(ctx context.Context, sessionID int) (*model.Session, *questionnaire.Controller, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if s.states != nil {
		state, err := s.states.Get(ctx, sessionID)
		if err != nil {
			logger.Warn("session cache read failed", err)
		} else if state != nil {
			return session, questionnaire.Restore(state.Questions, state.Traversal), nil
		}
	}

	ctrl, err := s.rebuild(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	return session, ctrl, nil
}

// rebuild reconstructs a controller from the durable answers. The
// snapshot is re-taken from the current question bank; the resumption
// point is the first visible unanswered question.
func (s *FactFindService) rebuild(ctx context.Context, session *model.Session) (*questionnaire.Controller, error) {
	snapshot, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	recorded := make([]questionnaire.Recorded, 0, len(answers))
	set := make(questionnaire.MapAnswers, len(answers))
	for _, a := range answers {
		recorded = append(recorded, questionnaire.Recorded{QuestionID: a.QuestionID, Value: a.Value})
		set[a.QuestionID] = a.Value
	}

	state := questionnaire.State{Answers: recorded}
	if session.Status == model.SessionCompleted {
		state.Phase = questionnaire.PhaseComplete
		state.Index = questionnaire.NoIndex
	} else if idx := questionnaire.ResumeIndex(sortedSnapshot(snapshot), set); idx == questionnaire.NoIndex {
		state.Phase = questionnaire.PhaseComplete
		state.Index = questionnaire.NoIndex
	} else {
		state.Phase = questionnaire.PhasePresenting
		state.Index = idx
	}

	return questionnaire.Restore(snapshot, state), nil
}

func (s *FactFindService) complete(ctx context.Context, session *model.Session) error {
	if session.Status == model.SessionCompleted {
		return nil
	}
	now := time.Now()
	session.Status = model.SessionCompleted
	session.CompletedAt = &now
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	return nil
}

// park stores the controller state in the cache, best-effort.
func (s *FactFindService) park(ctx context.Context, sessionID int, ctrl *questionnaire.Controller) {
	if s.states == nil {
		return
	}
	state := &cache.SessionState{Questions: ctrl.Questions(), Traversal: ctrl.State()}
	if err := s.states.Set(ctx, sessionID, state); err != nil {
		logger.Warn("session cache write failed", err)
	}
}

func (s *FactFindService) step(sessionID int, ctrl *questionnaire.Controller, question *model.Question, persisted bool, warning string) *Step {
	return &Step{
		SessionID: sessionID,
		Phase:     string(ctrl.Phase()),
		Question:  question,
		Persisted: persisted,
		Warning:   warning,
	}
}

// sortedSnapshot matches the controller's display ordering so the
// resume scan and the controller agree on indexes.
func sortedSnapshot(questions []model.Question) []model.Question {
	return questionnaire.NewController(questions).Questions()
}
