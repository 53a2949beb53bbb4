package repository

import (
	"context"
	"fmt"

	"factfind/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepo interface {
	Create(ctx context.Context, userID int) (*model.Session, error)
	GetByID(ctx context.Context, id int) (*model.Session, error)
	// ListByUser returns the user's sessions, newest first.
	ListByUser(ctx context.Context, userID int) ([]model.Session, error)
	// ListAll returns every session, newest first (admin view).
	ListAll(ctx context.Context) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
}

type sessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) SessionRepo {
	return &sessionRepo{db: db}
}

const sessionColumns = `id, user_id, status, started_at, completed_at, signature_data, created_at`

func (r *sessionRepo) Create(ctx context.Context, userID int) (*model.Session, error) {
	s := &model.Session{UserID: userID, Status: model.SessionInProgress}
	err := r.db.QueryRow(ctx, `
		INSERT INTO sessions (user_id, status)
		VALUES ($1, $2)
		RETURNING id, started_at, created_at
	`, userID, s.Status).Scan(&s.ID, &s.StartedAt, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id int) (*model.Session, error) {
	var s model.Session
	err := r.db.QueryRow(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt, &s.SignatureData, &s.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID int) ([]model.Session, error) {
	return r.list(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY started_at DESC
	`, userID)
}

func (r *sessionRepo) ListAll(ctx context.Context) ([]model.Session, error) {
	return r.list(ctx, `
		SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC
	`)
}

func (r *sessionRepo) list(ctx context.Context, query string, args ...any) ([]model.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Status, &s.StartedAt, &s.CompletedAt, &s.SignatureData, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	_, err := r.db.Exec(ctx, `
		UPDATE sessions
		SET status = $1, completed_at = $2, signature_data = $3
		WHERE id = $4
	`, session.Status, session.CompletedAt, session.SignatureData, session.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}
