package questionnaire

import (
	"testing"

	"factfind/internal/model"

	"github.com/stretchr/testify/assert"
)

func dep(questionID int, value string) *model.DependsOn {
	return &model.DependsOn{QuestionID: questionID, Value: value}
}

// threeQuestions is the canonical branching list: question 2 is only
// visible after answering question 1 with "Yes".
func threeQuestions() []model.Question {
	return []model.Question{
		{ID: 1, Text: "Do you smoke?", Type: model.QuestionTypeYesNo, Order: 1},
		{ID: 2, Text: "How much per day?", Type: model.QuestionTypeNumber, Order: 2, DependsOn: dep(1, "Yes")},
		{ID: 3, Text: "What is your occupation?", Type: model.QuestionTypeText, Order: 3},
	}
}

func TestIsVisible_NoDependency(t *testing.T) {
	q := model.Question{ID: 7, Type: model.QuestionTypeText}

	assert.True(t, IsVisible(q, MapAnswers{}))
	assert.True(t, IsVisible(q, MapAnswers{1: "Yes", 2: "No"}))
}

func TestIsVisible_Dependency(t *testing.T) {
	q := model.Question{ID: 5, Type: model.QuestionTypeText, DependsOn: dep(4, "Yes")}

	assert.False(t, IsVisible(q, MapAnswers{}), "unanswered dependency stays hidden")
	assert.False(t, IsVisible(q, MapAnswers{4: "No"}))
	assert.True(t, IsVisible(q, MapAnswers{4: "Yes"}))
}

func TestIsVisible_DanglingReference(t *testing.T) {
	// Referencing a deleted question id fails open to hidden, never errors.
	q := model.Question{ID: 5, Type: model.QuestionTypeText, DependsOn: dep(999, "Yes")}

	assert.False(t, IsVisible(q, MapAnswers{5: "anything"}))
}

func TestNextVisibleIndex_SkipsUnsatisfiedDependency(t *testing.T) {
	qs := threeQuestions()

	// Answering 1="No" hides question 2: the scan from index 0 lands on
	// index 2 (question 3).
	assert.Equal(t, 2, NextVisibleIndex(qs, 0, MapAnswers{1: "No"}))
}

func TestNextVisibleIndex_SatisfiedDependency(t *testing.T) {
	qs := threeQuestions()

	assert.Equal(t, 1, NextVisibleIndex(qs, 0, MapAnswers{1: "Yes"}))
}

func TestNextVisibleIndex_Exhausted(t *testing.T) {
	qs := threeQuestions()

	assert.Equal(t, NoIndex, NextVisibleIndex(qs, 2, MapAnswers{}))
	assert.Equal(t, NoIndex, NextVisibleIndex(nil, -1, MapAnswers{}))
}

func TestNextVisibleIndex_EnumeratesVisibleSubsequence(t *testing.T) {
	qs := []model.Question{
		{ID: 1, Order: 1},
		{ID: 2, Order: 2, DependsOn: dep(1, "Yes")},
		{ID: 3, Order: 3},
		{ID: 4, Order: 4, DependsOn: dep(3, "Maybe")},
		{ID: 5, Order: 5},
	}
	answers := MapAnswers{1: "No", 3: "Maybe"}

	var enumerated []int
	for i := FirstVisibleIndex(qs, answers); i != NoIndex; i = NextVisibleIndex(qs, i, answers) {
		enumerated = append(enumerated, i)
		if IsVisible(qs[i], answers) == false {
			t.Fatalf("landed on invisible index %d", i)
		}
	}

	assert.Equal(t, []int{0, 2, 3, 4}, enumerated)
}

func TestPrevVisibleIndex_IsLeftInverseOfNext(t *testing.T) {
	qs := []model.Question{
		{ID: 1, Order: 1},
		{ID: 2, Order: 2, DependsOn: dep(1, "Yes")},
		{ID: 3, Order: 3},
		{ID: 4, Order: 4, DependsOn: dep(1, "Yes")},
		{ID: 5, Order: 5},
	}
	answers := MapAnswers{1: "No"}

	for i := FirstVisibleIndex(qs, answers); i != NoIndex; i = NextVisibleIndex(qs, i, answers) {
		next := NextVisibleIndex(qs, i, answers)
		if next == NoIndex {
			continue
		}
		assert.Equal(t, i, PrevVisibleIndex(qs, next, answers),
			"forward then back should return to the same index")
	}
}

func TestPrevVisibleIndex_AtStart(t *testing.T) {
	qs := threeQuestions()

	assert.Equal(t, NoIndex, PrevVisibleIndex(qs, 0, MapAnswers{}))
}

func TestFirstVisibleIndex_DependentHead(t *testing.T) {
	// A first question with an unsatisfiable dependency is skipped when
	// scanning against the empty answer map.
	qs := []model.Question{
		{ID: 1, Order: 1, DependsOn: dep(2, "Yes")},
		{ID: 2, Order: 2},
	}

	assert.Equal(t, 1, FirstVisibleIndex(qs, MapAnswers{}))
}

func TestIsVisible_LaterOrderedDependency(t *testing.T) {
	// A dependency on a later-ordered question is legal data but can
	// never be satisfied during forward traversal: no lookahead.
	qs := []model.Question{
		{ID: 1, Order: 1, DependsOn: dep(3, "Yes")},
		{ID: 2, Order: 2},
		{ID: 3, Order: 3},
	}

	assert.Equal(t, 1, FirstVisibleIndex(qs, MapAnswers{}))
	assert.False(t, IsVisible(qs[0], MapAnswers{}))
}
