package service

import (
	"VirtualCard/internal/repo"
	"context"
)

// SettingsService — чтение и запись строк оформления.
type SettingsService struct {
	settings repo.SettingsRepository
}

// NewSettingsService создаёт сервис настроек.
func NewSettingsService(settings repo.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get возвращает значение ключа или def, если ключа нет.
func (s *SettingsService) Get(ctx context.Context, key, def string) (string, error) {
	v, ok, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Set создаёт или обновляет значение по ключу.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	return s.settings.Set(ctx, key, value)
}

// All возвращает все настройки.
func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}
