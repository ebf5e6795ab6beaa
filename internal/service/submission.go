package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"VirtualCard/internal/sanitize"
	"context"
	"time"

	"github.com/google/uuid"
)

// ImageSaver — контракт обработчика изображений (см. media.ImageProcessor).
type ImageSaver interface {
	Save(data []byte, filename string) (fullPath, thumbPath string, err error)
}

// VideoSaver — контракт обработчика видео (см. media.VideoProcessor).
type VideoSaver interface {
	Save(ctx context.Context, data []byte, filename string) (videoPath, thumbPath string, err error)
}

// SubmissionService собирает входящую отправку в сохранённое сообщение:
// проверка токена → форматирование имени → санитизация → медиа → запись.
type SubmissionService struct {
	invites  repo.InviteRepository
	messages repo.MessageRepository
	images   ImageSaver
	videos   VideoSaver
}

// NewSubmissionService создаёт сервис отправки.
func NewSubmissionService(
	invites repo.InviteRepository,
	messages repo.MessageRepository,
	images ImageSaver,
	videos VideoSaver,
) *SubmissionService {
	return &SubmissionService{invites: invites, messages: messages, images: images, videos: videos}
}

// Submission — одна входящая отправка, уже распакованная из HTTP-формы.
type Submission struct {
	Token   string
	Name    string
	Content string

	MediaData     []byte
	MediaFilename string
	MediaType     string // model.MediaImage | model.MediaVideo | ""

	IPAddress string
}

// ValidateToken проверяет пригодность токена без побочных эффектов.
// Порядок проверок: существование → активность → срок → лимит.
func (s *SubmissionService) ValidateToken(ctx context.Context, tok string) error {
	link, err := s.invites.GetByToken(ctx, tok)
	if err != nil {
		return err
	}
	if link == nil {
		return model.ErrTokenNotFound
	}
	return link.Usable(time.Now().UTC())
}

// Create проводит отправку целиком. Любая ошибка (токен, медиа, запись)
// прерывает операцию без частично сохранённого сообщения; инкремент
// использования токена и вставка сообщения коммитятся вместе.
func (s *SubmissionService) Create(ctx context.Context, sub Submission) (*model.Message, error) {
	// быстрый отказ до обработки медиа и текста
	if err := s.ValidateToken(ctx, sub.Token); err != nil {
		return nil, err
	}

	name := FormatNames(sub.Name)

	msg := &model.Message{
		UUID:      uuid.NewString(),
		Name:      name,
		Initials:  Initials(name),
		Content:   sanitize.Sanitize(sub.Content),
		MediaType: sub.MediaType,
		Status:    model.StatusPending,
		IPAddress: sub.IPAddress,
		ColorHint: ColorHint(name),
	}

	if len(sub.MediaData) > 0 && sub.MediaFilename != "" {
		switch sub.MediaType {
		case model.MediaImage:
			full, thumb, err := s.images.Save(sub.MediaData, sub.MediaFilename)
			if err != nil {
				return nil, err
			}
			msg.ImagePath, msg.ThumbPath = full, thumb
		case model.MediaVideo:
			video, thumb, err := s.videos.Save(ctx, sub.MediaData, sub.MediaFilename)
			if err != nil {
				return nil, err
			}
			msg.VideoPath, msg.ThumbPath = video, thumb
		}
	}

	if err := s.messages.CreateWithInviteUse(ctx, msg, sub.Token); err != nil {
		return nil, err
	}
	return msg, nil
}
