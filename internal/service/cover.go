package service

import (
	"VirtualCard/internal/model"
	"VirtualCard/internal/repo"
	"context"
)

// ImageStore — обработчик изображений, умеющий также удалять свои файлы
// (см. media.ImageProcessor).
type ImageStore interface {
	ImageSaver
	Remove(relPaths ...string) error
}

// CoverService — загрузка и выбор обложки открытки.
type CoverService struct {
	covers repo.CoverRepository
	images ImageStore
}

// NewCoverService создаёт сервис обложек.
func NewCoverService(covers repo.CoverRepository, images ImageStore) *CoverService {
	return &CoverService{covers: covers, images: images}
}

// Upload прогоняет изображение через общий конвейер и делает его
// единственной активной обложкой. Возвращает путь относительно медиакорня.
// Если запись в БД не прошла, уже сохранённые файлы убираются с диска.
func (s *CoverService) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	full, thumb, err := s.images.Save(data, filename)
	if err != nil {
		return "", err
	}
	if _, err := s.covers.SetActive(ctx, full); err != nil {
		_ = s.images.Remove(full, thumb)
		return "", err
	}
	return full, nil
}

// Active возвращает текущую обложку или nil.
func (s *CoverService) Active(ctx context.Context) (*model.CardCover, error) {
	return s.covers.Active(ctx)
}
