package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordAndValue(t *testing.T) {
	tr := NewTracker()
	tr.Record(1, "Yes")

	v, ok := tr.Value(1)
	assert.True(t, ok)
	assert.Equal(t, "Yes", v)

	_, ok = tr.Value(2)
	assert.False(t, ok)
}

func TestTracker_Idempotence(t *testing.T) {
	tr := NewTracker()
	tr.Record(3, "Employed")
	once := tr.All()

	tr.Record(3, "Employed")
	assert.Equal(t, once, tr.All(), "recording the same pair twice changes nothing")
}

func TestTracker_OverwriteKeepsInsertionOrder(t *testing.T) {
	tr := NewTracker()
	tr.Record(2, "No")
	tr.Record(1, "Yes")
	tr.Record(2, "Maybe")

	assert.Equal(t, []Recorded{
		{QuestionID: 2, Value: "Maybe"},
		{QuestionID: 1, Value: "Yes"},
	}, tr.All())
	assert.Equal(t, 2, tr.Len())
}

func TestTracker_UnknownQuestionAcceptedSilently(t *testing.T) {
	// The tracker deliberately performs no referential check: an answer
	// for a question id absent from the active list is kept as-is.
	tr := NewTracker()
	tr.Record(9999, "orphan")

	v, ok := tr.Value(9999)
	assert.True(t, ok)
	assert.Equal(t, "orphan", v)
}
