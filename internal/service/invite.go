package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"VirtualCard/internal/token"
	"context"
	"fmt"
	"time"
)

// InviteLinkService — создание и управление пригласительными ссылками.
type InviteLinkService struct {
	invites repo.InviteRepository
}

// NewInviteLinkService создаёт сервис пригласительных ссылок.
func NewInviteLinkService(invites repo.InviteRepository) *InviteLinkService {
	return &InviteLinkService{invites: invites}
}

// Create выпускает новую ссылку с коротким сгенерированным токеном.
// maxUses <= 0 — без лимита, expiresHours <= 0 — бессрочная.
func (s *InviteLinkService) Create(ctx context.Context, note string, maxUses, expiresHours int) (*model.InviteLink, error) {
	tok, err := token.GenerateShort()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	link := &model.InviteLink{
		Token:    tok,
		Note:     note,
		IsActive: true,
	}
	if maxUses > 0 {
		link.MaxUses = &maxUses
	}
	if expiresHours > 0 {
		exp := time.Now().UTC().Add(time.Duration(expiresHours) * time.Hour)
		link.ExpiresAt = &exp
	}

	if err := s.invites.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// List возвращает все ссылки, новые сверху.
func (s *InviteLinkService) List(ctx context.Context) ([]model.InviteLink, error) {
	return s.invites.List(ctx)
}

// Deactivate выключает ссылку. Сама строка остаётся навсегда.
func (s *InviteLinkService) Deactivate(ctx context.Context, tok string) (bool, error) {
	return s.invites.Deactivate(ctx, tok)
}
