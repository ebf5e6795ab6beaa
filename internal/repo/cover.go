package repo

import (
	"VirtualCard/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// CoverRepository — доступ к обложкам открытки.
type CoverRepository interface {
	// SetActive атомарно деактивирует все прежние обложки и вставляет новую
	// активную: активной строкой не может оказаться больше одной.
	SetActive(ctx context.Context, imagePath string) (*model.CardCover, error)
	// Active возвращает текущую обложку или (nil, nil), если её нет.
	Active(ctx context.Context) (*model.CardCover, error)
}

type coverRepo struct {
	db *gorm.DB
}

// NewCoverRepository создаёт реализацию репозитория обложек.
func NewCoverRepository(db *gorm.DB) CoverRepository {
	return &coverRepo{db: db}
}

func (r *coverRepo) SetActive(ctx context.Context, imagePath string) (*model.CardCover, error) {
	cover := &model.CardCover{ImagePath: imagePath, IsActive: true}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CardCover{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(cover).Error
	})
	if err != nil {
		return nil, err
	}
	return cover, nil
}

func (r *coverRepo) Active(ctx context.Context) (*model.CardCover, error) {
	var cover model.CardCover
	err := r.db.WithContext(ctx).Where("is_active = ?", true).First(&cover).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cover, nil
}
