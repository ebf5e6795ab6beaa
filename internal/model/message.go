package model

import "time"

// Статусы модерации сообщения.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Типы медиа, прикреплённого к сообщению.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Message — одно поздравление, отправленное гостем.
// Наружу отдаётся только UUID; числовой ID остаётся внутренним.
type Message struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	UUID string `gorm:"size:36;uniqueIndex;not null"`

	Name     string `gorm:"size:255;not null"` // имя после форматирования
	Initials string `gorm:"size:5;not null"`
	Content  string `gorm:"type:text;not null"` // уже санитизированный HTML

	ImagePath string `gorm:"size:500"`
	VideoPath string `gorm:"size:500"`
	ThumbPath string `gorm:"size:500"`
	MediaType string `gorm:"size:20"` // "image" | "video" | ""

	Status     string     `gorm:"size:20;not null;default:pending"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	ApprovedAt *time.Time // ставится при одобрении, сбрасывается при возврате в pending

	IPAddress  string `gorm:"size:45"`
	ColorHint  string `gorm:"size:20"`
	OrderIndex *int   // зарезервировано под ручную сортировку, штатный поток не заполняет
}

// ToDict возвращает представление для JSON-ответов дашборда.
func (m *Message) ToDict() map[string]any {
	var approvedAt any
	if m.ApprovedAt != nil {
		approvedAt = m.ApprovedAt.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"id":          m.ID,
		"uuid":        m.UUID,
		"name":        m.Name,
		"initials":    m.Initials,
		"content":     m.Content,
		"image_path":  m.ImagePath,
		"video_path":  m.VideoPath,
		"thumb_path":  m.ThumbPath,
		"media_type":  m.MediaType,
		"status":      m.Status,
		"created_at":  m.CreatedAt.UTC().Format(time.RFC3339),
		"approved_at": approvedAt,
		"color_hint":  m.ColorHint,
		"order_index": m.OrderIndex,
	}
}
