package repository

import (
	"context"
	"fmt"

	"factfind/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepo interface {
	// Get returns the single settings row, or nil when it has not been
	// seeded yet.
	Get(ctx context.Context) (*model.Settings, error)
	// Ensure inserts the row if absent; existing values win.
	Ensure(ctx context.Context, defaults *model.Settings) error
	Update(ctx context.Context, update model.SettingsUpdate) (*model.Settings, error)
}

type settingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepo(db *pgxpool.Pool) SettingsRepo {
	return &settingsRepo{db: db}
}

const settingsColumns = `id, ai_prompt, ai_model, ai_temperature, email_template, email_recipients, excel_template, created_at, updated_at`

func (r *settingsRepo) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.QueryRow(ctx, `
		SELECT `+settingsColumns+` FROM settings ORDER BY id ASC LIMIT 1
	`).Scan(&s.ID, &s.AIPrompt, &s.AIModel, &s.AITemperature,
		&s.EmailTemplate, &s.EmailRecipients, &s.ExcelTemplate, &s.CreatedAt, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Ensure(ctx context.Context, defaults *model.Settings) error {
	existing, err := r.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO settings (ai_prompt, ai_model, ai_temperature, email_template, email_recipients, excel_template)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, defaults.AIPrompt, defaults.AIModel, defaults.AITemperature,
		defaults.EmailTemplate, defaults.EmailRecipients, defaults.ExcelTemplate)
	if err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (r *settingsRepo) Update(ctx context.Context, update model.SettingsUpdate) (*model.Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("settings row not initialized")
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&current.AIPrompt, update.AIPrompt)
	apply(&current.AIModel, update.AIModel)
	apply(&current.AITemperature, update.AITemperature)
	apply(&current.EmailTemplate, update.EmailTemplate)
	apply(&current.EmailRecipients, update.EmailRecipients)
	apply(&current.ExcelTemplate, update.ExcelTemplate)

	err = r.db.QueryRow(ctx, `
		UPDATE settings
		SET ai_prompt = $1, ai_model = $2, ai_temperature = $3,
		    email_template = $4, email_recipients = $5, excel_template = $6,
		    updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`, current.AIPrompt, current.AIModel, current.AITemperature,
		current.EmailTemplate, current.EmailRecipients, current.ExcelTemplate,
		current.ID).Scan(&current.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return current, nil
}
