package repo

import (
	"VirtualCard/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// InviteRepository — доступ к пригласительным ссылкам.
// Ссылки никогда не удаляются, только деактивируются.
type InviteRepository interface {
	Create(ctx context.Context, link *model.InviteLink) error
	// GetByToken возвращает ссылку или (nil, nil), если её нет.
	GetByToken(ctx context.Context, token string) (*model.InviteLink, error)
	// List — все ссылки, новые сверху.
	List(ctx context.Context) ([]model.InviteLink, error)
	// Deactivate снимает флаг активности. Возвращает false, если ссылки нет.
	Deactivate(ctx context.Context, token string) (bool, error)
}

type inviteRepo struct {
	db *gorm.DB
}

// NewInviteRepository создаёт реализацию репозитория ссылок.
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &inviteRepo{db: db}
}

func (r *inviteRepo) Create(ctx context.Context, link *model.InviteLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *inviteRepo) GetByToken(ctx context.Context, token string) (*model.InviteLink, error) {
	var link model.InviteLink
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *inviteRepo) List(ctx context.Context) ([]model.InviteLink, error) {
	var links []model.InviteLink
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *inviteRepo) Deactivate(ctx context.Context, token string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&model.InviteLink{}).
		Where("token = ?", token).
		Update("is_active", false)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
