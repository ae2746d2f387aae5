package report

import (
	"strings"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Render: Satır kümesini istenen formatta byte buffer'a çevirir.
// generatedAt ve dosya adındaki tarih dışında çıktı deterministiktir.
func Render(format models.OutputFormat, req models.ReportRequest, rows []inventory.StockRow, generatedAt time.Time) (*Rendered, error) {
	var (
		content  []byte
		ext      string
		mimeType string
		err      error
	)

	switch format {
	case models.FormatPDF:
		content, err = renderPDF(req, rows, generatedAt)
		ext, mimeType = "pdf", "application/pdf"
	case models.FormatXLSX:
		content, err = renderXLSX(req, rows, generatedAt)
		ext, mimeType = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case models.FormatCSV:
		content = renderCSV(req, rows, generatedAt)
		ext, mimeType = "csv", "text/csv"
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "format 'pdf', 'xlsx' veya 'csv' olmalı")
	}
	if err != nil {
		return nil, err
	}

	filename := strings.ReplaceAll(req.Kind.Title(), " ", "_") + "_" + generatedAt.Format("2006-01-02") + "." + ext

	return &Rendered{
		Bytes:    content,
		Filename: filename,
		MimeType: mimeType,
	}, nil
}
