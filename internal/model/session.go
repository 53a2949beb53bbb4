package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session is one respondent's questionnaire attempt.
type Session struct {
	ID            int           `json:"id"`
	UserID        int           `json:"userId"`
	Status        SessionStatus `json:"status"`
	StartedAt     time.Time     `json:"startedAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
	SignatureData string        `json:"signatureData,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
