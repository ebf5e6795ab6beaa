package handlers

import (
	"VirtualCard/internal/config"
	"VirtualCard/internal/middleware"
	"VirtualCard/internal/model"
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite для тестов хендлеров.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.Message{}, &model.InviteLink{}, &model.CardCover{}, &model.Setting{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// testConfig — конфигурация для тестов с временным каталогом медиа.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	middleware.SetLogger(zap.NewNop().Sugar())
	return &config.Config{
		MediaPath:        t.TempDir(),
		AuthSecret:       "test-secret",
		AdminPassword:    "admin",
		FFmpegPath:       "ffmpeg",
		FFmpegTimeoutSec: 5,
	}
}

// multipartBody собирает multipart-форму из текстовых полей.
func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// стаб обработчика изображений для обложек
type stubImageSaver struct {
	full, thumb string
	err         error
}

func (s *stubImageSaver) Save(data []byte, filename string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return s.full, s.thumb, nil
}

func (s *stubImageSaver) Remove(relPaths ...string) error { return nil }

type stubVideoSaver struct{}

func (s *stubVideoSaver) Save(ctx context.Context, data []byte, filename string) (string, string, error) {
	return "", "", nil
}
