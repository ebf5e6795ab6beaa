package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxVideoSize = 50 * 1024 * 1024

var allowedVideoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}

// VideoProcessor сохраняет видео как есть и извлекает статичную миниатюру
// внешним вызовом ffmpeg.
type VideoProcessor struct {
	root    string
	ffmpeg  string
	timeout time.Duration
}

// NewVideoProcessor создаёт процессор и гарантирует существование корня.
func NewVideoProcessor(root, ffmpegPath string, timeout time.Duration) (*VideoProcessor, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &VideoProcessor{root: root, ffmpeg: ffmpegPath, timeout: timeout}, nil
}

// Validate проверяет размер и тип содержимого видео.
func (p *VideoProcessor) Validate(data []byte) error {
	if len(data) > maxVideoSize {
		return fmt.Errorf("%w: video is %d bytes, limit %d", ErrTooLarge, len(data), maxVideoSize)
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedVideoTypes {
		if mt.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Save сохраняет видеофайл и миниатюру, возвращает пути относительно корня.
// Миниатюра — один кадр на первой секунде, 200x200, JPEG. Если ffmpeg
// отсутствует или завершился с ошибкой, вся операция возвращает ErrThumbnail.
func (p *VideoProcessor) Save(ctx context.Context, data []byte, filename string) (string, string, error) {
	if err := p.Validate(data); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".mp4"
	}

	dateDir := datePath(time.Now())
	dir, err := ensureDateDir(p.root, dateDir)
	if err != nil {
		return "", "", err
	}

	base := uuid.New().String()
	name := base + ext
	thumbName := "thumb_" + base + ".jpg"

	videoAbs := filepath.Join(dir, name)
	if err := os.WriteFile(videoAbs, data, 0o644); err != nil {
		return "", "", err
	}

	if err := p.extractFrame(ctx, videoAbs, filepath.Join(dir, thumbName)); err != nil {
		return "", "", err
	}

	return path.Join(dateDir, name), path.Join(dateDir, thumbName), nil
}
