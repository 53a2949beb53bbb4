package model

import "time"

// QuestionType defines the input type of a question
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeNumber   QuestionType = "number"
	QuestionTypeChoice   QuestionType = "multiple-choice"
	QuestionTypeCheckbox QuestionType = "checkbox-multiple"
	QuestionTypeDate     QuestionType = "date"
	QuestionTypeYesNo    QuestionType = "yes-no"
)

// DependsOn gates a question's visibility on a prior question's answer.
// The check is single-level: the recorded answer for QuestionID must
// equal Value exactly. Boolean answers are compared in their string
// form ("Yes"/"No").
type DependsOn struct {
	QuestionID int    `json:"questionId"`
	Value      string `json:"value"`
}

// Question is one entry of the fact-find form. Order is the display
// rank, ascending, not necessarily contiguous.
type Question struct {
	ID          int          `json:"id"`
	Text        string       `json:"text"`
	Type        QuestionType `json:"type"`
	Options     []string     `json:"options,omitempty"`
	Order       int          `json:"order"`
	DependsOn   *DependsOn   `json:"dependsOn,omitempty"`
	Rule        *Rule        `json:"rule,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Prefix      string       `json:"prefix,omitempty"`
	Suffix      string       `json:"suffix,omitempty"`
	Category    string       `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// YesNoOptions are the implicit options of a yes-no question.
var YesNoOptions = []string{"Yes", "No"}

// ChoiceOptions returns the selectable options for choice-like types.
func (q *Question) ChoiceOptions() []string {
	if q.Type == QuestionTypeYesNo && len(q.Options) == 0 {
		return YesNoOptions
	}
	return q.Options
}

// IsChoice reports whether the question requires selecting from options.
func (q *Question) IsChoice() bool {
	switch q.Type {
	case QuestionTypeChoice, QuestionTypeCheckbox, QuestionTypeYesNo:
		return true
	}
	return false
}
