package service

import (
	"context"
	"testing"

	"factfind/internal/model"
	"factfind/internal/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func factFindQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "Do you smoke?", Type: model.QuestionTypeYesNo, Order: 1},
		{ID: 2, Text: "Have you smoked in the last 12 months?", Type: model.QuestionTypeYesNo, Order: 2,
			DependsOn: &model.DependsOn{QuestionID: 1, Value: "No"}},
		{ID: 3, Text: "What is your occupation?", Type: model.QuestionTypeText, Order: 3},
	}
}

func newTestFactFind(t *testing.T, answers *fakeAnswerRepo, questions ...model.Question) (*FactFindService, *fakeSessionRepo) {
	t.Helper()
	if len(questions) == 0 {
		questions = factFindQuestions()
	}
	sessions := newFakeSessionRepo()
	questionSvc := NewQuestionService(newFakeQuestionRepo(questions...), nil)
	return NewFactFindService(sessions, answers, questionSvc, nil), sessions
}

func TestStartSessionPresentsFirstQuestion(t *testing.T) {
	svc, _ := newTestFactFind(t, &fakeAnswerRepo{})

	session, step, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, model.SessionInProgress, session.Status)
	assert.Equal(t, string(questionnaire.PhasePresenting), step.Phase)
	require.NotNil(t, step.Question)
	assert.Equal(t, 1, step.Question.ID)
}

func TestStartSessionEmptyBankCompletesImmediately(t *testing.T) {
	sessions := newFakeSessionRepo()
	questionSvc := NewQuestionService(newFakeQuestionRepo(), nil)
	svc := NewFactFindService(sessions, &fakeAnswerRepo{}, questionSvc, nil)

	session, step, err := svc.StartSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, string(questionnaire.PhaseComplete), step.Phase)
	assert.Nil(t, step.Question)

	stored, err := sessions.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
}

func TestSubmitPersistsAndAdvances(t *testing.T) {
	answers := &fakeAnswerRepo{}
	svc, _ := newTestFactFind(t, answers)
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	step, err := svc.Submit(ctx, session.ID, questionnaire.Input{Value: "No"})
	require.NoError(t, err)

	assert.True(t, step.Persisted)
	assert.Empty(t, step.Warning)
	require.NotNil(t, step.Question)
	assert.Equal(t, 2, step.Question.ID)

	stored, err := answers.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "No", stored[0].Value)
}

func TestSubmitAdvancesDespiteWriteFailure(t *testing.T) {
	answers := &fakeAnswerRepo{fail: true}
	svc, _ := newTestFactFind(t, answers)
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	step, err := svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Yes"})
	require.NoError(t, err)

	// The respondent still moves forward; the miss is reported.
	assert.False(t, step.Persisted)
	assert.NotEmpty(t, step.Warning)
	require.NotNil(t, step.Question)
	assert.Equal(t, 3, step.Question.ID) // 2 is hidden after "Yes"
}

func TestSubmitCompletesSession(t *testing.T) {
	svc, sessions := newTestFactFind(t, &fakeAnswerRepo{})
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Yes"})
	require.NoError(t, err)
	step, err := svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Engineer"})
	require.NoError(t, err)

	assert.Equal(t, string(questionnaire.PhaseComplete), step.Phase)
	assert.Nil(t, step.Question)

	stored, err := sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, stored.Status)
}

func TestSubmitRejectsCompletedSession(t *testing.T) {
	svc, _ := newTestFactFind(t, &fakeAnswerRepo{})
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Yes"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Engineer"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "late"})
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestSubmitInvalidSelectionRejected(t *testing.T) {
	answers := &fakeAnswerRepo{}
	svc, _ := newTestFactFind(t, answers)
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Maybe"})
	assert.ErrorIs(t, err, questionnaire.ErrInvalidSelection)

	// Nothing was written and the session is still on the first question.
	stored, err := answers.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	step, err := svc.Current(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, step.Question)
	assert.Equal(t, 1, step.Question.ID)
}

func TestSessionRebuiltFromPersistedAnswers(t *testing.T) {
	// No session cache is wired, so every call rebuilds from the durable
	// answers; the resume point is the first unanswered visible question.
	answers := &fakeAnswerRepo{}
	svc, _ := newTestFactFind(t, answers)
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "No"})
	require.NoError(t, err)

	step, err := svc.Current(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, step.Question)
	assert.Equal(t, 2, step.Question.ID)
}

func TestPreviousStepsBack(t *testing.T) {
	svc, _ := newTestFactFind(t, &fakeAnswerRepo{})
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "No"})
	require.NoError(t, err)

	step, err := svc.Previous(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, step.Question)
	assert.Equal(t, 1, step.Question.ID)
}

func TestSummaryInFirstSubmissionOrder(t *testing.T) {
	svc, _ := newTestFactFind(t, &fakeAnswerRepo{})
	ctx := context.Background()

	session, _, err := svc.StartSession(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "No"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, session.ID, questionnaire.Input{Value: "Yes"})
	require.NoError(t, err)

	pairs, err := svc.Summary(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Do you smoke?", pairs[0].Question)
	assert.Equal(t, "No", pairs[0].Answer)
	assert.Equal(t, "Have you smoked in the last 12 months?", pairs[1].Question)
}

func TestSessionNotFound(t *testing.T) {
	svc, _ := newTestFactFind(t, &fakeAnswerRepo{})
	_, err := svc.Current(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
