package model

import "time"

// Ключи настроек, используемые сервисами отображения.
const (
	SettingRecipientName     = "recipient_name"
	SettingSubmissionHeading = "submission_heading"
)

// Setting — плоское key-value хранилище строк оформления.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
