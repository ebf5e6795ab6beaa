package repo

import (
	"VirtualCard/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// MessageRepository — доступ к сообщениям.
type MessageRepository interface {
	// CreateWithInviteUse атомарно инкрементирует счётчик использования токена
	// и вставляет сообщение: либо происходит и то и другое, либо ничего.
	// Пригодность токена перепроверяется внутри транзакции.
	CreateWithInviteUse(ctx context.Context, msg *model.Message, token string) error

	// GetByID возвращает сообщение или (nil, nil), если его нет.
	GetByID(ctx context.Context, id int64) (*model.Message, error)

	// ListPending — ожидающие модерации, новые сверху.
	ListPending(ctx context.Context, limit, offset int) ([]model.Message, error)
	// ListApproved — одобренные, последние одобренные сверху.
	ListApproved(ctx context.Context, limit, offset int) ([]model.Message, error)
	// ListApprovedForCard — одобренные в порядке отправки (для страницы открытки).
	ListApprovedForCard(ctx context.Context) ([]model.Message, error)
	// ListAll — все сообщения, новые сверху.
	ListAll(ctx context.Context, limit, offset int) ([]model.Message, error)

	CountPending(ctx context.Context) (int64, error)

	// Save пишет изменённое сообщение целиком.
	Save(ctx context.Context, msg *model.Message) error
	// Delete удаляет сообщение безвозвратно.
	Delete(ctx context.Context, id int64) (bool, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepository создаёт реализацию репозитория сообщений.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) CreateWithInviteUse(ctx context.Context, msg *model.Message, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// Пригодность ссылки проверяется условиями самого UPDATE. Под
		// конкурентной записью (Postgres, READ COMMITTED) WHERE перечитывается
		// на зафиксированной строке после снятия блокировки, поэтому два
		// параллельных инкремента не могут вывести uses_count за max_uses.
		res := tx.Model(&model.InviteLink{}).
			Where("token = ?", token).
			Where("is_active = ?", true).
			Where("expires_at IS NULL OR expires_at >= ?", now).
			Where("max_uses IS NULL OR uses_count < max_uses").
			UpdateColumn("uses_count", gorm.Expr("uses_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// инкремент не прошёл: перечитываем строку, чтобы вернуть точную причину
			var link model.InviteLink
			if err := tx.Where("token = ?", token).First(&link).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.ErrTokenNotFound
				}
				return err
			}
			if err := link.Usable(now); err != nil {
				return err
			}
			// лимит выбрала конкурентная отправка между проверкой и инкрементом
			return model.ErrTokenUseLimit
		}
		return tx.Create(msg).Error
	})
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepo) ListPending(ctx context.Context, limit, offset int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepo) ListApproved(ctx context.Context, limit, offset int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusApproved).
		Order("approved_at DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepo) ListApprovedForCard(ctx context.Context) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("status = ?", model.StatusApproved).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

func (r *messageRepo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("status = ?", model.StatusPending).
		Count(&n).Error
	return n, err
}

func (r *messageRepo) Save(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Save(msg).Error
}

func (r *messageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Message{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
