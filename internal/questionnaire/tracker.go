package questionnaire

// Recorded is one tracked (questionID, value) pair.
type Recorded struct {
	QuestionID int    `json:"questionId"`
	Value      string `json:"value"`
}

// Tracker owns the in-memory answer map for one respondent session.
// Recording is last-write-wins by question id, while All preserves the
// order in which ids were first recorded. The tracker performs no
// referential check against the question list and no locking; callers
// serialize access (one in-flight submission per session).
type Tracker struct {
	order  []int
	values map[int]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{values: make(map[int]string)}
}

// Record inserts or overwrites the value for questionID. Overwriting
// keeps the id's original insertion position.
func (t *Tracker) Record(questionID int, value string) {
	if _, ok := t.values[questionID]; !ok {
		t.order = append(t.order, questionID)
	}
	t.values[questionID] = value
}

// Value returns the recorded value for questionID.
func (t *Tracker) Value(questionID int) (string, bool) {
	v, ok := t.values[questionID]
	return v, ok
}

// All returns every recorded pair in first-insertion order.
func (t *Tracker) All() []Recorded {
	out := make([]Recorded, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, Recorded{QuestionID: id, Value: t.values[id]})
	}
	return out
}

// Len returns the number of distinct recorded question ids.
func (t *Tracker) Len() int {
	return len(t.order)
}
