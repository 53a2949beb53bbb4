package model

import "time"

// Answer is one stored response, unique per (session, question).
// Re-answering replaces the prior value.
type Answer struct {
	ID         int       `json:"id"`
	SessionID  int       `json:"sessionId"`
	QuestionID int       `json:"questionId"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
}

// QA is a text-resolved (question, answer) pair in presentation order,
// the shape the export collaborators consume.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
