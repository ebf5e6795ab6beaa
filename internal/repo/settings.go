package repo

import (
	"VirtualCard/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository — key-value хранилище строк оформления.
type SettingsRepository interface {
	// Get возвращает значение и признак наличия ключа.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set создаёт или обновляет значение по ключу (upsert).
	Set(ctx context.Context, key, value string) error
	// All возвращает все настройки одной картой.
	All(ctx context.Context) (map[string]string, error)
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository создаёт реализацию репозитория настроек.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var s model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	s := &model.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      value,
			"updated_at": time.Now().UTC(),
		}),
	}).Create(s).Error
}

func (r *settingsRepo) All(ctx context.Context) (map[string]string, error) {
	var rows []model.Setting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		out[s.Key] = s.Value
	}
	return out, nil
}
