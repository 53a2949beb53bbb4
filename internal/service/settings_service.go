package service

import (
	"context"
	"errors"

	"factfind/internal/model"
	"factfind/internal/repository"
)

var ErrSettingsNotFound = errors.New("settings not seeded")

// SettingsService reads and updates the single admin settings row.
type SettingsService struct {
	repo repository.SettingsRepo
}

func NewSettingsService(repo repository.SettingsRepo) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, update model.SettingsUpdate) (*model.Settings, error) {
	return s.repo.Update(ctx, update)
}
