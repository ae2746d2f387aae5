package audit

import (
	"strconv"

	"bi-backend/internal/database"
	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs
// Son işlemleri listeler; entity_type ve action ile filtrelenebilir
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.AuditLog{}).Order("created_at DESC, id DESC")

		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}
		if action := c.Query("action"); action != "" {
			q = q.Where("action = ?", action)
		}

		limit := 100
		if l := c.Query("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 1 || n > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit 1-1000 arasında olmalı")
			}
			limit = n
		}

		var logs []models.AuditLog
		if err := q.Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		return c.JSON(logs)
	}
}
