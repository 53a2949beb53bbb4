package model

import (
	"errors"
	"fmt"
	"strings"
)

// ConditionKind discriminates the condition variants of a Rule.
type ConditionKind string

const (
	ConditionEquals   ConditionKind = "equals"
	ConditionContains ConditionKind = "contains"
	ConditionIsYes    ConditionKind = "is-yes"
	ConditionIsNo     ConditionKind = "is-no"
)

// ConsequenceKind discriminates what happens when a condition matches.
type ConsequenceKind string

const (
	ConsequenceShow    ConsequenceKind = "show"
	ConsequenceSkipTo  ConsequenceKind = "skip-to"
	ConsequenceEndForm ConsequenceKind = "end-form"
)

// Condition is a single predicate over one question's recorded answer.
// Equals and Contains use Value; IsYes and IsNo ignore it.
type Condition struct {
	Kind       ConditionKind `json:"kind"`
	QuestionID int           `json:"questionId"`
	Value      string        `json:"value,omitempty"`
}

// Consequence is the action taken when the paired condition matches.
// SkipTo uses QuestionID; Show and EndForm ignore it.
type Consequence struct {
	Kind       ConsequenceKind `json:"kind"`
	QuestionID int             `json:"questionId,omitempty"`
}

// Rule is the validated replacement for the free-form conditional-logic
// object the admin UI used to edit. It is checked at save time; the
// traversal layer only ever evaluates well-formed rules.
type Rule struct {
	If   Condition   `json:"if"`
	Then Consequence `json:"then"`
}

var (
	ErrUnknownCondition   = errors.New("unknown condition kind")
	ErrUnknownConsequence = errors.New("unknown consequence kind")
)

// Validate checks the rule's shape. Referential checks against the
// question list belong to the question service.
func (r *Rule) Validate() error {
	switch r.If.Kind {
	case ConditionEquals, ConditionContains:
		if r.If.Value == "" {
			return fmt.Errorf("condition %q requires a value", r.If.Kind)
		}
	case ConditionIsYes, ConditionIsNo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCondition, r.If.Kind)
	}
	if r.If.QuestionID <= 0 {
		return fmt.Errorf("condition requires a question id")
	}

	switch r.Then.Kind {
	case ConsequenceShow, ConsequenceEndForm:
	case ConsequenceSkipTo:
		if r.Then.QuestionID <= 0 {
			return fmt.Errorf("skip-to requires a target question id")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConsequence, r.Then.Kind)
	}
	return nil
}

// Matches evaluates the condition against a recorded answer value.
// A missing answer never matches.
func (c Condition) Matches(value string, ok bool) bool {
	if !ok {
		return false
	}
	switch c.Kind {
	case ConditionEquals:
		return value == c.Value
	case ConditionContains:
		return strings.Contains(value, c.Value)
	case ConditionIsYes:
		return value == "Yes"
	case ConditionIsNo:
		return value == "No"
	}
	return false
}
