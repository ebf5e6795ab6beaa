package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
	"time"
)

// CardService — чтение данных для публичной страницы открытки.
// Видит только одобренные сообщения.
type CardService struct {
	messages repo.MessageRepository
	covers   repo.CoverRepository
}

// NewCardService создаёт сервис открытки.
func NewCardService(messages repo.MessageRepository, covers repo.CoverRepository) *CardService {
	return &CardService{messages: messages, covers: covers}
}

// ApprovedMessages возвращает одобренные сообщения в порядке отправки.
func (s *CardService) ApprovedMessages(ctx context.Context) ([]model.Message, error) {
	return s.messages.ListApprovedForCard(ctx)
}

// ActiveCover возвращает текущую обложку или nil.
func (s *CardService) ActiveCover(ctx context.Context) (*model.CardCover, error) {
	return s.covers.Active(ctx)
}

// MessagesJSON возвращает одобренные сообщения в форме для фронтенда:
// наружу уходит только UUID, пути к медиа превращаются в /media/-URL.
func (s *CardService) MessagesJSON(ctx context.Context) ([]map[string]any, error) {
	msgs, err := s.ApprovedMessages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, map[string]any{
			"uuid":         m.UUID,
			"name":         m.Name,
			"initials":     m.Initials,
			"content_html": m.Content,
			"thumb_url":    mediaURL(m.ThumbPath),
			"image_url":    mediaURL(m.ImagePath),
			"video_url":    mediaURL(m.VideoPath),
			"media_type":   m.MediaType,
			"color_hint":   m.ColorHint,
			"created_at":   m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

func mediaURL(rel string) any {
	if rel == "" {
		return nil
	}
	return "/media/" + rel
}
