package media

import (
	"context"
	"fmt"
	"os/exec"
)

// extractFrame извлекает один кадр на отметке 1s в JPEG 200x200.
// Вызов блокирует запрос; таймаут ограничивает зависший процесс.
func (p *VideoProcessor) extractFrame(ctx context.Context, videoAbs, thumbAbs string) error {
	tctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, p.ffmpeg,
		"-i", videoAbs,
		"-vframes", "1",
		"-an",
		"-s", "200x200",
		"-ss", "1",
		thumbAbs,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s: %v (%s)", ErrThumbnail, p.ffmpeg, err, firstLine(out))
	}
	return nil
}

func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			return string(out[:i])
		}
	}
	return string(out)
}
