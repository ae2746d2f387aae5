package audit

import (
	"encoding/json"
	"fmt"

	"bi-backend/internal/database"
	"bi-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Data        any
}

// WriteLog: Zamanlama/e-posta işlemlerini kim-ne-ne zaman olarak kaydeder
func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	dataStr := "null"
	if opts.Data != nil {
		if b, err := json.Marshal(opts.Data); err == nil {
			dataStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		Data:        dataStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
