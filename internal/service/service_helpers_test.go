package service

import (
	"VirtualCard/internal/model"
	"context"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite для сервисных тестов.
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

// стабы процессоров медиа: возвращают заготовленные пути или ошибку
type stubImageSaver struct {
	full, thumb string
	err         error
	calls       int
	removed     []string
}

func (s *stubImageSaver) Save(data []byte, filename string) (string, string, error) {
	s.calls++
	if s.err != nil {
		return "", "", s.err
	}
	return s.full, s.thumb, nil
}

func (s *stubImageSaver) Remove(relPaths ...string) error {
	s.removed = append(s.removed, relPaths...)
	return nil
}

type stubVideoSaver struct {
	video, thumb string
	err          error
	calls        int
}

func (s *stubVideoSaver) Save(ctx context.Context, data []byte, filename string) (string, string, error) {
	s.calls++
	if s.err != nil {
		return "", "", s.err
	}
	return s.video, s.thumb, nil
}
