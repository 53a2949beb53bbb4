package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"factfind/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestionRepo interface {
	// List returns every question ascending by display order.
	List(ctx context.Context) ([]model.Question, error)
	GetByID(ctx context.Context, id int) (*model.Question, error)
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id int) (bool, error)
	// Reorder assigns display ranks 1..n following the given id order.
	Reorder(ctx context.Context, ids []int) error
}

type questionRepo struct {
	db *pgxpool.Pool
}

func NewQuestionRepo(db *pgxpool.Pool) QuestionRepo {
	return &questionRepo{db: db}
}

const questionColumns = `id, text, type, options, "order", depends_on, rule, placeholder, prefix, suffix, category, created_at, updated_at`

func (r *questionRepo) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		ORDER BY "order" ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func (r *questionRepo) GetByID(ctx context.Context, id int) (*model.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanQuestion(rows)
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	options, dependsOn, rule, err := marshalQuestionJSON(question)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO questions (text, type, options, "order", depends_on, rule, placeholder, prefix, suffix, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, question.Text, question.Type, options, question.Order, dependsOn, rule,
		question.Placeholder, question.Prefix, question.Suffix, question.Category,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

func (r *questionRepo) Update(ctx context.Context, question *model.Question) error {
	options, dependsOn, rule, err := marshalQuestionJSON(question)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `
		UPDATE questions
		SET text = $1, type = $2, options = $3, "order" = $4, depends_on = $5, rule = $6,
		    placeholder = $7, prefix = $8, suffix = $9, category = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`, question.Text, question.Type, options, question.Order, dependsOn, rule,
		question.Placeholder, question.Prefix, question.Suffix, question.Category,
		question.ID,
	).Scan(&question.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	return nil
}

func (r *questionRepo) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete question: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *questionRepo) Reorder(ctx context.Context, ids []int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("reorder questions: %w", err)
	}
	defer tx.Rollback(ctx)

	for rank, id := range ids {
		if _, err := tx.Exec(ctx, `
			UPDATE questions SET "order" = $1, updated_at = NOW() WHERE id = $2
		`, rank+1, id); err != nil {
			return fmt.Errorf("reorder question %d: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

func marshalQuestionJSON(q *model.Question) (options, dependsOn, rule []byte, err error) {
	if q.Options != nil {
		if options, err = json.Marshal(q.Options); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal options: %w", err)
		}
	}
	if q.DependsOn != nil {
		if dependsOn, err = json.Marshal(q.DependsOn); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal dependsOn: %w", err)
		}
	}
	if q.Rule != nil {
		if rule, err = json.Marshal(q.Rule); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal rule: %w", err)
		}
	}
	return options, dependsOn, rule, nil
}

func scanQuestion(rows pgx.Rows) (*model.Question, error) {
	var (
		q         model.Question
		options   []byte
		dependsOn []byte
		rule      []byte
	)
	if err := rows.Scan(&q.ID, &q.Text, &q.Type, &options, &q.Order, &dependsOn, &rule,
		&q.Placeholder, &q.Prefix, &q.Suffix, &q.Category, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan question: %w", err)
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
	}
	if len(dependsOn) > 0 {
		q.DependsOn = &model.DependsOn{}
		if err := json.Unmarshal(dependsOn, q.DependsOn); err != nil {
			return nil, fmt.Errorf("unmarshal dependsOn: %w", err)
		}
	}
	if len(rule) > 0 {
		q.Rule = &model.Rule{}
		if err := json.Unmarshal(rule, q.Rule); err != nil {
			return nil, fmt.Errorf("unmarshal rule: %w", err)
		}
	}
	return &q, nil
}
