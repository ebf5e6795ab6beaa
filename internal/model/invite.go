package model

import (
	"errors"
	"time"
)

// Ошибки проверки пригласительного токена. Порядок проверок в Usable фиксирован:
// существование → активность → срок → лимит использований.
var (
	ErrTokenNotFound    = errors.New("invite token not found")
	ErrTokenDeactivated = errors.New("invite token has been deactivated")
	ErrTokenExpired     = errors.New("invite token has expired")
	ErrTokenUseLimit    = errors.New("invite token has reached maximum uses")
)

// InviteLink — пригласительная ссылка. Токен сам по себе первичный ключ,
// уникальность обеспечивается генерацией. Строки никогда не удаляются,
// вместо удаления ссылка деактивируется.
type InviteLink struct {
	Token     string     `gorm:"primaryKey;size:64"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	ExpiresAt *time.Time // nil — бессрочная
	MaxUses   *int       // nil — без лимита
	UsesCount int        `gorm:"not null;default:0"`
	IsActive  bool       `gorm:"not null;default:true"`
	Note      string     `gorm:"size:500"`
}

// Usable проверяет, что ссылка пригодна для отправки сообщения.
// Возвращает первую нарушенную проверку; инкремент счётчика остаётся за вызывающим.
func (l *InviteLink) Usable(now time.Time) error {
	if !l.IsActive {
		return ErrTokenDeactivated
	}
	if l.ExpiresAt != nil && l.ExpiresAt.Before(now) {
		return ErrTokenExpired
	}
	if l.MaxUses != nil && l.UsesCount >= *l.MaxUses {
		return ErrTokenUseLimit
	}
	return nil
}

// ToDict возвращает представление для JSON-ответов дашборда.
func (l *InviteLink) ToDict() map[string]any {
	var expiresAt any
	if l.ExpiresAt != nil {
		expiresAt = l.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"token":      l.Token,
		"created_at": l.CreatedAt.UTC().Format(time.RFC3339),
		"expires_at": expiresAt,
		"max_uses":   l.MaxUses,
		"uses_count": l.UsesCount,
		"is_active":  l.IsActive,
		"note":       l.Note,
	}
}
