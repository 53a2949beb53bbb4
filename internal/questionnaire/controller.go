package questionnaire

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"factfind/internal/model"
)

// Phase is the controller's presentation state.
type Phase string

const (
	PhaseIntro      Phase = "intro"
	PhasePresenting Phase = "presenting"
	PhaseComplete   Phase = "complete"
)

// NotProvided is the sentinel stored when a text or number question is
// submitted empty. Soft-fail: the traversal still advances.
const NotProvided = "Not provided"

var (
	// ErrNotPresenting is returned for Submit outside PhasePresenting.
	ErrNotPresenting = errors.New("no question is being presented")
	// ErrInvalidSelection is returned when a choice answer is not one of
	// the question's options. No transition, no side effect.
	ErrInvalidSelection = errors.New("selection is not one of the options")
	// ErrNoSelection is returned when a checkbox question is submitted
	// with zero selections. No transition, no side effect.
	ErrNoSelection = errors.New("select at least one option")
)

// Input is a candidate answer for the current question. Value carries
// single-valued answers; Selections carries checkbox choices.
type Input struct {
	Value      string   `json:"value"`
	Selections []string `json:"selections,omitempty"`
}

// SubmitResult reports an accepted submission.
type SubmitResult struct {
	Recorded Recorded
	Next     *model.Question // nil when Done
	Done     bool
}

// State is the serializable controller snapshot the service layer parks
// in the session cache between requests.
type State struct {
	Phase   Phase      `json:"phase"`
	Index   int        `json:"index"`
	Answers []Recorded `json:"answers"`
}

// Controller drives one session's presentation order over an injected
// read-only question snapshot, fetched once at session start. Admin
// edits made after that do not affect a running session.
type Controller struct {
	questions []model.Question
	tracker   *Tracker
	phase     Phase
	index     int
}

// NewController creates a controller in the intro phase. The snapshot
// is copied and sorted ascending by display order.
func NewController(questions []model.Question) *Controller {
	qs := make([]model.Question, len(questions))
	copy(qs, questions)
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].Order < qs[j].Order })
	return &Controller{
		questions: qs,
		tracker:   NewTracker(),
		phase:     PhaseIntro,
		index:     NoIndex,
	}
}

// Restore rebuilds a controller from a parked state over the same
// snapshot it was created with.
func Restore(questions []model.Question, s State) *Controller {
	c := NewController(questions)
	for _, rec := range s.Answers {
		c.tracker.Record(rec.QuestionID, rec.Value)
	}
	c.phase = s.Phase
	c.index = s.Index
	return c
}

// State snapshots the controller for parking.
func (c *Controller) State() State {
	return State{Phase: c.phase, Index: c.index, Answers: c.tracker.All()}
}

// Phase returns the current presentation phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Questions returns the session's question snapshot in display order.
func (c *Controller) Questions() []model.Question {
	return c.questions
}

// Answers returns the recorded pairs in first-insertion order.
func (c *Controller) Answers() []Recorded {
	return c.tracker.All()
}

// Start moves from the intro to the first visible question. An empty or
// fully-dependent list completes immediately.
func (c *Controller) Start() *model.Question {
	idx := FirstVisibleIndex(c.questions, c.tracker)
	if idx == NoIndex {
		c.phase = PhaseComplete
		c.index = NoIndex
		return nil
	}
	c.phase = PhasePresenting
	c.index = idx
	return &c.questions[idx]
}

// Current returns the question being presented, or nil outside
// PhasePresenting.
func (c *Controller) Current() *model.Question {
	if c.phase != PhasePresenting {
		return nil
	}
	return &c.questions[c.index]
}

// Submit validates the input for the current question, records the
// answer, and advances to the next visible question (or completes).
// Choice-type validation failures reject locally with no transition;
// text and number inputs soft-fail to the NotProvided sentinel.
func (c *Controller) Submit(in Input) (*SubmitResult, error) {
	if c.phase != PhasePresenting {
		return nil, ErrNotPresenting
	}
	q := c.questions[c.index]

	value, err := normalize(q, in)
	if err != nil {
		return nil, err
	}

	c.tracker.Record(q.ID, value)
	res := &SubmitResult{Recorded: Recorded{QuestionID: q.ID, Value: value}}

	next := c.advanceFrom(q)
	if next == NoIndex {
		c.phase = PhaseComplete
		c.index = NoIndex
		res.Done = true
		return res, nil
	}
	c.index = next
	res.Next = &c.questions[next]
	return res, nil
}

// advanceFrom picks the next index after an accepted answer, honoring
// the question's rule before the plain forward scan.
func (c *Controller) advanceFrom(q model.Question) int {
	if q.Rule != nil {
		v, ok := c.tracker.Value(q.Rule.If.QuestionID)
		if q.Rule.If.Matches(v, ok) {
			switch q.Rule.Then.Kind {
			case model.ConsequenceEndForm:
				return NoIndex
			case model.ConsequenceSkipTo:
				if t := c.indexOf(q.Rule.Then.QuestionID); t != NoIndex {
					// Land on the target, or the first visible question
					// after it when the target itself is hidden.
					return NextVisibleIndex(c.questions, t-1, c.tracker)
				}
				// Dangling skip target: fail open to the plain scan.
			}
		}
	}
	return NextVisibleIndex(c.questions, c.index, c.tracker)
}

// GoPrevious retreats to the previous visible question. At the first
// visible question it is a no-op and the current question is returned.
func (c *Controller) GoPrevious() *model.Question {
	if c.phase != PhasePresenting {
		return nil
	}
	prev := PrevVisibleIndex(c.questions, c.index, c.tracker)
	if prev == NoIndex {
		return &c.questions[c.index]
	}
	c.index = prev
	return &c.questions[prev]
}

// Summary resolves the recorded answers to (question text, value) pairs
// in first-insertion order, for the export collaborators.
func (c *Controller) Summary() []model.QA {
	byID := make(map[int]string, len(c.questions))
	for _, q := range c.questions {
		byID[q.ID] = q.Text
	}
	recs := c.tracker.All()
	out := make([]model.QA, 0, len(recs))
	for _, rec := range recs {
		text, ok := byID[rec.QuestionID]
		if !ok {
			text = fmt.Sprintf("Question %d", rec.QuestionID)
		}
		out = append(out, model.QA{Question: text, Answer: rec.Value})
	}
	return out
}

func (c *Controller) indexOf(questionID int) int {
	for i, q := range c.questions {
		if q.ID == questionID {
			return i
		}
	}
	return NoIndex
}

// normalize applies the per-type validation policy.
func normalize(q model.Question, in Input) (string, error) {
	switch q.Type {
	case model.QuestionTypeText, model.QuestionTypeDate:
		v := strings.TrimSpace(in.Value)
		if v == "" {
			return NotProvided, nil
		}
		return v, nil

	case model.QuestionTypeNumber:
		v := strings.TrimSpace(in.Value)
		if v == "" {
			return NotProvided, nil
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			// The presentation layer shapes numeric input; anything else
			// degrades to the sentinel rather than rejecting.
			return NotProvided, nil
		}
		return v, nil

	case model.QuestionTypeChoice, model.QuestionTypeYesNo:
		for _, opt := range q.ChoiceOptions() {
			if in.Value == opt {
				return in.Value, nil
			}
		}
		return "", ErrInvalidSelection

	case model.QuestionTypeCheckbox:
		if len(in.Selections) == 0 {
			return "", ErrNoSelection
		}
		opts := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			opts[opt] = true
		}
		for _, sel := range in.Selections {
			if !opts[sel] {
				return "", ErrInvalidSelection
			}
		}
		return strings.Join(in.Selections, ", "), nil
	}

	// Unknown types behave like free text.
	v := strings.TrimSpace(in.Value)
	if v == "" {
		return NotProvided, nil
	}
	return v, nil
}
