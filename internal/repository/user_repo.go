package repository

import (
	"context"
	"fmt"

	"factfind/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	return r.get(ctx, `
		SELECT id, external_id, email, name, is_admin, created_at
		FROM users WHERE id = $1
	`, id)
}

func (r *userRepo) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	return r.get(ctx, `
		SELECT id, external_id, email, name, is_admin, created_at
		FROM users WHERE external_id = $1
	`, externalID)
}

func (r *userRepo) get(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		u    model.User
		name *string
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.ExternalID, &u.Email, &name, &u.IsAdmin, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if name != nil {
		u.Name = *name
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (external_id, email, name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.ExternalID, user.Email, user.Name, user.IsAdmin).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
