package repo

import (
	"VirtualCard/internal/model"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// Имя БД уникально для каждого теста, чтобы данные не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	// миграции для всех моделей, используемых в репозиториях
	if err := db.AutoMigrate(&model.Message{}, &model.InviteLink{}, &model.CardCover{}, &model.Setting{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
