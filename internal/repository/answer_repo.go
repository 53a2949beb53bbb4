package repository

import (
	"context"
	"fmt"

	"factfind/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnswerRepo interface {
	// Upsert stores the value for (session, question), replacing any
	// prior value. The original row's created_at is kept so that
	// ListBySession preserves first-submission order.
	Upsert(ctx context.Context, answer *model.Answer) error
	ListBySession(ctx context.Context, sessionID int) ([]model.Answer, error)
}

type answerRepo struct {
	db *pgxpool.Pool
}

func NewAnswerRepo(db *pgxpool.Pool) AnswerRepo {
	return &answerRepo{db: db}
}

func (r *answerRepo) Upsert(ctx context.Context, answer *model.Answer) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO answers (session_id, question_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, question_id)
		DO UPDATE SET value = EXCLUDED.value
		RETURNING id, created_at
	`, answer.SessionID, answer.QuestionID, answer.Value,
	).Scan(&answer.ID, &answer.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func (r *answerRepo) ListBySession(ctx context.Context, sessionID int) ([]model.Answer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, question_id, value, created_at
		FROM answers
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
