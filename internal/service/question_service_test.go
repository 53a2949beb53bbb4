package service

import (
	"context"
	"testing"

	"factfind/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionServiceCreateValidation(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		question model.Question
	}{
		{"missing text", model.Question{Type: model.QuestionTypeText}},
		{"unknown type", model.Question{Text: "q", Type: "slider"}},
		{"choice without options", model.Question{Text: "q", Type: model.QuestionTypeChoice}},
		{"checkbox without options", model.Question{Text: "q", Type: model.QuestionTypeCheckbox}},
		{"text with options", model.Question{Text: "q", Type: model.QuestionTypeText, Options: []string{"a"}}},
		{"dangling dependency", model.Question{Text: "q", Type: model.QuestionTypeText, DependsOn: &model.DependsOn{QuestionID: 99, Value: "Yes"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, &tt.question)
			assert.ErrorIs(t, err, ErrInvalidQuestion)
		})
	}
}

func TestQuestionServiceSelfDependencyRejected(t *testing.T) {
	repo := newFakeQuestionRepo(model.Question{ID: 1, Text: "base", Type: model.QuestionTypeYesNo, Order: 1})
	svc := NewQuestionService(repo, nil)

	err := svc.Update(context.Background(), &model.Question{
		ID:        1,
		Text:      "base",
		Type:      model.QuestionTypeYesNo,
		Order:     1,
		DependsOn: &model.DependsOn{QuestionID: 1, Value: "Yes"},
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)
}

func TestQuestionServiceRuleValidation(t *testing.T) {
	repo := newFakeQuestionRepo(model.Question{ID: 1, Text: "base", Type: model.QuestionTypeYesNo, Order: 1})
	svc := NewQuestionService(repo, nil)
	ctx := context.Background()

	// Skip target must exist.
	err := svc.Create(ctx, &model.Question{
		Text: "q", Type: model.QuestionTypeText,
		Rule: &model.Rule{
			If:   model.Condition{Kind: model.ConditionIsYes, QuestionID: 1},
			Then: model.Consequence{Kind: model.ConsequenceSkipTo, QuestionID: 42},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidQuestion)

	// End-form rule against an existing question is fine.
	err = svc.Create(ctx, &model.Question{
		Text: "q", Type: model.QuestionTypeText,
		Rule: &model.Rule{
			If:   model.Condition{Kind: model.ConditionIsNo, QuestionID: 1},
			Then: model.Consequence{Kind: model.ConsequenceEndForm},
		},
	})
	assert.NoError(t, err)
}

func TestQuestionServiceCacheInvalidatedOnWrites(t *testing.T) {
	repo := newFakeQuestionRepo()
	cache := &countingQuestionCache{}
	svc := NewQuestionService(repo, cache)
	ctx := context.Background()

	q := model.Question{Text: "first", Type: model.QuestionTypeText, Order: 1}
	require.NoError(t, svc.Create(ctx, &q))
	assert.Equal(t, 1, cache.invalidations)

	// List populates the cache; the next list is served from it.
	_, err := svc.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cache.cached)

	q.Text = "renamed"
	require.NoError(t, svc.Update(ctx, &q))
	assert.Equal(t, 2, cache.invalidations)
	assert.Nil(t, cache.cached)

	require.NoError(t, svc.Delete(ctx, q.ID))
	assert.Equal(t, 3, cache.invalidations)
}

func TestQuestionServiceDeleteMissing(t *testing.T) {
	svc := NewQuestionService(newFakeQuestionRepo(), nil)
	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
