package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	// регистрация webp-декодера для image.Decode
	_ "golang.org/x/image/webp"
)

const (
	maxImageSize = 5 * 1024 * 1024
	fullMaxWidth = 1600
	thumbSize    = 200

	fullQuality  = 85
	thumbQuality = 80
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ImageProcessor валидирует, нормализует и сохраняет изображения
// вместе с миниатюрами под корнем медиакаталога.
type ImageProcessor struct {
	root string
}

// NewImageProcessor создаёт процессор и гарантирует существование корня.
func NewImageProcessor(root string) (*ImageProcessor, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &ImageProcessor{root: root}, nil
}

// Validate проверяет размер и тип содержимого (по сигнатуре, не по расширению).
func (p *ImageProcessor) Validate(data []byte) error {
	if len(data) > maxImageSize {
		return fmt.Errorf("%w: image is %d bytes, limit %d", ErrTooLarge, len(data), maxImageSize)
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mt.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Save обрабатывает и сохраняет изображение с миниатюрой.
// Возвращает пути относительно корня медиакаталога (full, thumb).
//
// Конвейер: декодирование → сведение альфа-канала на белый фон →
// даунскейл до ширины 1600 (Lanczos) → полноразмерный файл (q85) и
// миниатюра, вписанная в 200x200 (q80). Оба файла получают общее
// UUID-имя в каталоге даты, миниатюра с префиксом thumb_.
func (p *ImageProcessor) Save(data []byte, filename string) (string, string, error) {
	if err := p.Validate(data); err != nil {
		return "", "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%w: decode: %v", ErrUnsupportedType, err)
	}

	// формат вывода следует за расширением исходного имени;
	// неизвестные расширения (в т.ч. .webp — кодировать его нечем) уходят в JPEG
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		format = imaging.JPEG
		ext = ".jpg"
	}

	if !isOpaque(img) {
		bounds := img.Bounds()
		bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
		img = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	}

	if img.Bounds().Dx() > fullMaxWidth {
		img = imaging.Resize(img, fullMaxWidth, 0, imaging.Lanczos)
	}

	dateDir := datePath(time.Now())
	dir, err := ensureDateDir(p.root, dateDir)
	if err != nil {
		return "", "", err
	}

	name := uuid.New().String() + ext
	thumbName := "thumb_" + name

	if err := encodeTo(filepath.Join(dir, name), img, format, fullQuality); err != nil {
		return "", "", err
	}

	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	if err := encodeTo(filepath.Join(dir, thumbName), thumb, format, thumbQuality); err != nil {
		return "", "", err
	}

	return path.Join(dateDir, name), path.Join(dateDir, thumbName), nil
}

// Remove удаляет файлы по путям относительно медиакорня.
// Отсутствующий файл ошибкой не считается.
func (p *ImageProcessor) Remove(relPaths ...string) error {
	for _, rel := range relPaths {
		if rel == "" {
			continue
		}
		abs := filepath.Join(p.root, filepath.FromSlash(rel))
		if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func encodeTo(abs string, img image.Image, format imaging.Format, quality int) error {
	f, err := os.Create(abs)
	if err != nil {
		return err
	}
	defer f.Close()
	return imaging.Encode(f, img, format, imaging.JPEGQuality(quality))
}

// isOpaque сообщает, есть ли в изображении прозрачные пиксели.
func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}
