// Package questionnaire implements the conditional fact-find traversal:
// deciding which questions are visible given the answers recorded so
// far, and walking the ordered question list forward and backward. It
// is pure - no I/O, no clocks - so the service layer can park and
// restore it between requests.
package questionnaire

import "factfind/internal/model"

// NoIndex is returned when no visible question exists in the scanned
// direction.
const NoIndex = -1

// AnswerSet is the read side of the recorded answers the resolver
// consults. *Tracker implements it.
type AnswerSet interface {
	Value(questionID int) (string, bool)
}

// MapAnswers adapts a plain map to an AnswerSet.
type MapAnswers map[int]string

func (m MapAnswers) Value(questionID int) (string, bool) {
	v, ok := m[questionID]
	return v, ok
}

// IsVisible reports whether a question is eligible for presentation.
// Questions without a dependency are always visible. A dependent
// question is visible only when the referenced answer exists and equals
// the configured value exactly; an unanswered, deleted, or later-ordered
// reference therefore resolves to hidden. The check is single-level and
// non-transitive.
func IsVisible(q model.Question, answers AnswerSet) bool {
	if q.DependsOn == nil {
		return true
	}
	v, ok := answers.Value(q.DependsOn.QuestionID)
	return ok && v == q.DependsOn.Value
}

// NextVisibleIndex scans strictly forward from from+1 and returns the
// first visible index, or NoIndex when the list is exhausted.
func NextVisibleIndex(questions []model.Question, from int, answers AnswerSet) int {
	for i := from + 1; i < len(questions); i++ {
		if IsVisible(questions[i], answers) {
			return i
		}
	}
	return NoIndex
}

// PrevVisibleIndex scans strictly backward from from-1 and returns the
// first visible index, or NoIndex when the start of the list is
// reached.
func PrevVisibleIndex(questions []model.Question, from int, answers AnswerSet) int {
	for i := from - 1; i >= 0; i-- {
		if IsVisible(questions[i], answers) {
			return i
		}
	}
	return NoIndex
}

// FirstVisibleIndex returns the first presentable index, scanning from
// the head of the list.
func FirstVisibleIndex(questions []model.Question, answers AnswerSet) int {
	return NextVisibleIndex(questions, -1, answers)
}

// ResumeIndex returns the first visible index whose question has no
// recorded answer, or NoIndex when every visible question is answered.
// It is the resumption point when rebuilding an in-flight session from
// persisted answers.
func ResumeIndex(questions []model.Question, answers AnswerSet) int {
	for i := range questions {
		if !IsVisible(questions[i], answers) {
			continue
		}
		if _, ok := answers.Value(questions[i].ID); !ok {
			return i
		}
	}
	return NoIndex
}
