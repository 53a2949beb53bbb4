package service

import (
	"context"
	"errors"
	"fmt"

	"factfind/internal/cache"
	"factfind/internal/logger"
	"factfind/internal/model"
	"factfind/internal/repository"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// QuestionService manages the question bank behind a read-through
// cache. Writes invalidate the cache so respondents pick up changes on
// their next session.
type QuestionService struct {
	repo  repository.QuestionRepo
	cache cache.QuestionCache
}

func NewQuestionService(repo repository.QuestionRepo, cache cache.QuestionCache) *QuestionService {
	return &QuestionService{repo: repo, cache: cache}
}

// List returns every question in presentation order. Cache failures are
// logged and fall through to the database.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			logger.Warn("question cache read failed", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	questions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, questions); err != nil {
			logger.Warn("question cache write failed", err)
		}
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id int) (*model.Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) Create(ctx context.Context, question *model.Question) error {
	if err := s.validate(ctx, question, 0); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, question); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuestionService) Update(ctx context.Context, question *model.Question) error {
	if err := s.validate(ctx, question, question.ID); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, question); err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuestionService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if !deleted {
		return ErrQuestionNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Reorder rewrites the "order" column so ids[i] gets rank i+1.
func (s *QuestionService) Reorder(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty order list", ErrInvalidQuestion)
	}
	if err := s.repo.Reorder(ctx, ids); err != nil {
		return fmt.Errorf("reorder questions: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn("question cache invalidation failed", err)
	}
}

// validate rejects malformed questions at save time so the
// questionnaire never has to defend against them at presentation time.
// selfID is the question's own id on update, 0 on create.
func (s *QuestionService) validate(ctx context.Context, q *model.Question, selfID int) error {
	if q.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}
	switch q.Type {
	case model.QuestionTypeText, model.QuestionTypeNumber, model.QuestionTypeDate, model.QuestionTypeYesNo:
		if len(q.Options) > 0 && q.Type != model.QuestionTypeYesNo {
			return fmt.Errorf("%w: options only apply to choice questions", ErrInvalidQuestion)
		}
	case model.QuestionTypeChoice, model.QuestionTypeCheckbox:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: choice questions need at least one option", ErrInvalidQuestion)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, q.Type)
	}

	if q.DependsOn != nil {
		if q.DependsOn.QuestionID == selfID && selfID != 0 {
			return fmt.Errorf("%w: question cannot depend on itself", ErrInvalidQuestion)
		}
		if err := s.checkReference(ctx, q.DependsOn.QuestionID); err != nil {
			return err
		}
	}

	if q.Rule != nil {
		if err := q.Rule.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
		}
		if q.Rule.If.QuestionID != 0 {
			if err := s.checkReference(ctx, q.Rule.If.QuestionID); err != nil {
				return err
			}
		}
		if q.Rule.Then.Kind == model.ConsequenceSkipTo {
			if err := s.checkReference(ctx, q.Rule.Then.QuestionID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *QuestionService) checkReference(ctx context.Context, id int) error {
	ref, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ref == nil {
		return fmt.Errorf("%w: question %d does not exist", ErrInvalidQuestion, id)
	}
	return nil
}
