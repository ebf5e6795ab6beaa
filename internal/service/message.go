package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
	"time"
)

// MessageService — операции модерации для дашборда.
type MessageService struct {
	messages repo.MessageRepository
}

// NewMessageService создаёт сервис модерации.
func NewMessageService(messages repo.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// Pending возвращает сообщения, ожидающие модерации.
func (s *MessageService) Pending(ctx context.Context, limit, offset int) ([]model.Message, error) {
	return s.messages.ListPending(ctx, limit, offset)
}

// All возвращает все сообщения.
func (s *MessageService) All(ctx context.Context, limit, offset int) ([]model.Message, error) {
	return s.messages.ListAll(ctx, limit, offset)
}

// Approved возвращает одобренные сообщения (последние одобренные сверху).
func (s *MessageService) Approved(ctx context.Context, limit, offset int) ([]model.Message, error) {
	return s.messages.ListApproved(ctx, limit, offset)
}

// Get возвращает сообщение или nil, если его нет.
func (s *MessageService) Get(ctx context.Context, id int64) (*model.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// PendingCount возвращает число сообщений в ожидании.
func (s *MessageService) PendingCount(ctx context.Context) (int64, error) {
	return s.messages.CountPending(ctx)
}

// Approve переводит pending → approved и фиксирует момент одобрения.
// Возвращает false, если сообщения нет или оно не в pending.
func (s *MessageService) Approve(ctx context.Context, id int64) (bool, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if msg == nil || msg.Status != model.StatusPending {
		return false, nil
	}
	now := time.Now().UTC()
	msg.Status = model.StatusApproved
	msg.ApprovedAt = &now
	if err := s.messages.Save(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Reject переводит сообщение в rejected из любого статуса.
func (s *MessageService) Reject(ctx context.Context, id int64) (bool, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}
	msg.Status = model.StatusRejected
	if err := s.messages.Save(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Unapprove возвращает approved → pending и сбрасывает момент одобрения.
func (s *MessageService) Unapprove(ctx context.Context, id int64) (bool, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if msg == nil || msg.Status != model.StatusApproved {
		return false, nil
	}
	msg.Status = model.StatusPending
	msg.ApprovedAt = nil
	if err := s.messages.Save(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Update правит имя и/или содержимое. Смена имени заново выводит
// инициалы и цветовую подсказку из отформатированного имени.
func (s *MessageService) Update(ctx context.Context, id int64, name, content *string) (bool, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}
	if name != nil {
		formatted := FormatNames(*name)
		msg.Name = formatted
		msg.Initials = Initials(formatted)
		msg.ColorHint = ColorHint(formatted)
	}
	if content != nil {
		msg.Content = *content
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return false, err
	}
	return true, nil
}

// Delete удаляет сообщение безвозвратно (жёсткое удаление, без tombstone).
func (s *MessageService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.messages.Delete(ctx, id)
}
