package model

import "time"

// CardCover — фоновое изображение страницы открытки.
// Активной может быть максимум одна строка; старые обложки сохраняются.
type CardCover struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ImagePath  string    `gorm:"size:500;not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
	IsActive   bool      `gorm:"not null;default:true"`
}
