package report

import (
	"errors"

	"bi-backend/internal/audit"
	"bi-backend/internal/auth"
	"bi-backend/internal/inventory"
	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmailReportRequest struct {
	ReportID   string   `json:"reportId"`
	DateFrom   string   `json:"dateFrom"`
	DateTo     string   `json:"dateTo"`
	Department string   `json:"department"`
	Region     string   `json:"region"`
	Email      string   `json:"email"`
	Subject    string   `json:"subject"`
	Format     string   `json:"format"`
	Columns    []string `json:"columns"`
}

// parseRunParams: reportId/format/filtre alanlarını doğrulayıp isteğe çevirir
func parseRunParams(reportID, format, dateFrom, dateTo, department, region string, columns []string) (models.ReportRequest, models.OutputFormat, error) {
	if reportID == "" {
		reportID = string(models.ReportInventoryStock)
	}
	kind, ok := models.ParseReportKind(reportID)
	if !ok {
		return models.ReportRequest{}, "", fiber.NewError(fiber.StatusBadRequest, "Geçersiz reportId")
	}

	outFormat, ok := models.ParseOutputFormat(format)
	if !ok {
		return models.ReportRequest{}, "", fiber.NewError(fiber.StatusBadRequest, "format 'pdf', 'xlsx' veya 'csv' olmalı")
	}

	if department == "" {
		department = "All"
	}
	if region == "" {
		region = "All"
	}

	req := models.ReportRequest{
		Kind:       kind,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Department: department,
		Region:     region,
		DateFilter: models.DateFilterTransaction,
		Columns:    columns,
	}
	return req, outFormat, nil
}

// runError: Orkestrasyon hatasını HTTP yanıtına çevirir.
// Sorgu hataları detay/hint ile, diğerleri orijinal mesajla döner.
func runError(c *fiber.Ctx, err error) error {
	var dsErr *inventory.DataSourceError
	if errors.As(err, &dsErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   dsErr.Message,
			"details": dsErr.Details,
			"hint":    dsErr.Hint,
		})
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// POST /api/report-email
// Raporu hemen üretip alıcıya e-posta ile gönderir
func EmailReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body EmailReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email zorunlu")
		}

		req, format, err := parseRunParams(body.ReportID, body.Format, body.DateFrom, body.DateTo, body.Department, body.Region, body.Columns)
		if err != nil {
			return err
		}

		if _, err := svc.Run(req, format, body.Email, body.Subject); err != nil {
			return runError(c, err)
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "report_email",
				EntityID:    body.Email,
				Action:      models.AuditActionEmail,
				Description: "Rapor e-posta ile gönderildi: " + string(req.Kind),
				Data:        body,
			})
		}

		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /api/reports/export
// Raporu üretip dosya olarak indirir (e-posta adımı yok)
func ExportReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, format, err := parseRunParams(
			c.Query("reportId"),
			c.Query("format"),
			c.Query("dateFrom"),
			c.Query("dateTo"),
			c.Query("department"),
			c.Query("region"),
			nil,
		)
		if err != nil {
			return err
		}

		dateFilter := c.Query("dateFilter", string(models.DateFilterTransaction))
		if dateFilter != string(models.DateFilterTransaction) && dateFilter != string(models.DateFilterCreated) {
			return fiber.NewError(fiber.StatusBadRequest, "dateFilter 'transaction' veya 'created' olmalı")
		}
		req.DateFilter = models.DateFilter(dateFilter)

		rendered, err := svc.Run(req, format, "", "")
		if err != nil {
			return runError(c, err)
		}

		c.Set(fiber.HeaderContentType, rendered.MimeType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rendered.Filename+`"`)
		return c.Send(rendered.Bytes)
	}
}
