package media

import (
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Ошибки валидации и обработки медиафайлов.
var (
	// ErrTooLarge — файл превышает лимит размера для своего типа.
	ErrTooLarge = errors.New("file exceeds size limit")
	// ErrUnsupportedType — тип содержимого (по сигнатуре, не по расширению) не входит в белый список.
	ErrUnsupportedType = errors.New("unsupported media type")
	// ErrThumbnail — не удалось получить миниатюру видео. Фолбэка нет:
	// видео без миниатюры считается неполной отправкой.
	ErrThumbnail = errors.New("thumbnail generation failed")
)

// datePath возвращает каталог вида YYYY/MM/DD для текущего момента.
// Разбиение по датам ограничивает размер каталогов.
func datePath(now time.Time) string {
	return now.Format("2006/01/02")
}

// ensureDateDir создаёт каталог даты под корнем и возвращает его абсолютный путь.
func ensureDateDir(root, dateDir string) (string, error) {
	dir := filepath.Join(root, filepath.FromSlash(dateDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
