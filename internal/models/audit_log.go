package models

import "time"

type AuditAction string

const (
	AuditActionSchedule AuditAction = "schedule"
	AuditActionCancel   AuditAction = "cancel"
	AuditActionEmail    AuditAction = "email"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hangi kullanıcı?
	UserID   uint   `json:"user_id"`
	UserName string `gorm:"size:100" json:"user_name"` // Kullanıcı adı (denormalize)

	// Hangi entity? (ör: "scheduled_report", "report_email")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:150;index" json:"entity_id"` // iş id'si veya alıcı adresi

	// İşlem tipi: schedule/cancel/email
	Action AuditAction `gorm:"size:20" json:"action"`

	// Opsiyonel açıklama (küçük bir özet)
	Description string `gorm:"size:255" json:"description"`

	// İşlemin detayı (JSON)
	Data string `gorm:"type:jsonb" json:"data"`
}
