package scheduler

import (
	"bi-backend/internal/audit"
	"bi-backend/internal/auth"
	"bi-backend/internal/database"
	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ScheduleReportRequest struct {
	ID         string `json:"id"` // boşsa reportId:email türetilir
	ReportID   string `json:"reportId"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
	Department string `json:"department"`
	Region     string `json:"region"`
	Email      string `json:"email"`
	Frequency  string `json:"frequency"`
	Time       string `json:"time"`
	Format     string `json:"format"`
}

// POST /api/schedule-report
// Zamanlanmış rapor işi kurar; aynı id varsa değiştirir
func ScheduleReportHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ScheduleReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email zorunlu")
		}
		if body.ReportID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "reportId zorunlu")
		}
		if body.Frequency == "" || body.Time == "" {
			return fiber.NewError(fiber.StatusBadRequest, "frequency ve time zorunlu")
		}

		kind, ok := models.ParseReportKind(body.ReportID)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz reportId")
		}
		format, ok := models.ParseOutputFormat(body.Format)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "format 'pdf', 'xlsx' veya 'csv' olmalı")
		}

		jobID := body.ID
		if jobID == "" {
			jobID = body.ReportID + ":" + body.Email
		}
		if body.Department == "" {
			body.Department = "All"
		}
		if body.Region == "" {
			body.Region = "All"
		}

		job := models.ScheduledReport{
			ID:           jobID,
			ReportKind:   kind,
			DateFrom:     body.DateFrom,
			DateTo:       body.DateTo,
			Department:   body.Department,
			Region:       body.Region,
			Email:        body.Email,
			Frequency:    models.Frequency(body.Frequency),
			TimeOfDay:    body.Time,
			OutputFormat: format,
		}

		job, err := reg.Schedule(job)
		if err != nil {
			return err
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "scheduled_report",
				EntityID:    job.ID,
				Action:      models.AuditActionSchedule,
				Description: "Zamanlanmış rapor kuruldu: " + string(job.ReportKind) + " / " + string(job.Frequency) + " " + job.TimeOfDay,
				Data:        job,
			})
		}

		return c.JSON(fiber.Map{
			"ok": true,
			"job": fiber.Map{
				"id":   job.ID,
				"cron": job.CronExpr,
			},
		})
	}
}

// GET /api/schedule-report
// Kalıcı zamanlanmış işleri listeler
func ListSchedulesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.ScheduledReport
		if err := database.DB.Order("created_at ASC").Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Zamanlanmış işler listelenemedi")
		}
		return c.JSON(jobs)
	}
}

// DELETE /api/schedule-report?id=...
// İşi iptal eder; bilinmeyen id'de ok:false döner
func CancelScheduleHandler(reg *Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "id zorunlu")
		}

		found := reg.Cancel(id)

		if found {
			if user, uerr := auth.CurrentUser(c); uerr == nil {
				_ = audit.WriteLog(audit.LogOptions{
					UserID:      user.ID,
					UserName:    user.Name,
					EntityType:  "scheduled_report",
					EntityID:    id,
					Action:      models.AuditActionCancel,
					Description: "Zamanlanmış rapor iptal edildi",
				})
			}
		}

		return c.JSON(fiber.Map{"ok": found})
	}
}
