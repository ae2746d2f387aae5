package report

import (
	"strconv"
	"strings"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"
)

// Rendered: Tek bir orkestrasyon içinde üretilip tüketilen rapor çıktısı.
// Hiçbir yerde cache'lenmez.
type Rendered struct {
	Bytes    []byte
	Filename string
	MimeType string
}

// Sabit kolon seti; üç formatta da aynı sırayla kullanılır
var columnHeaders = []string{"Item Name", "Category", "Quantity", "Unit", "Branch", "Warehouse"}

const (
	noDataMessage      = "No data available for this report."
	noSourceNote       = "This report type is not yet connected to a data source. Please configure backend queries to include dataset rows."
	placeholderNote    = "This is a placeholder report. Data will be populated when backend is implemented."
	defaultMailSubject = "Automated Report"
)

func formatDate(s string) string {
	if s == "" {
		return "Not set"
	}
	return s
}

func dateRangeLabel(req models.ReportRequest) string {
	return formatDate(req.DateFrom) + " - " + formatDate(req.DateTo)
}

func columnsLabel(req models.ReportRequest) string {
	if len(req.Columns) > 0 {
		return strings.Join(req.Columns, ", ")
	}
	return strings.Join(columnHeaders, ", ")
}

// metaLines: Başlığın altındaki dört üstbilgi satırı
func metaLines(req models.ReportRequest, generatedAt time.Time) []string {
	return []string{
		"Generated: " + generatedAt.Format(time.RFC3339),
		"Date Range: " + dateRangeLabel(req),
		"Department: " + req.Department,
		"Region: " + req.Region,
	}
}

func formatQty(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// rowValues: Satır değerleri columnHeaders sırasıyla
func rowValues(r inventory.StockRow) []string {
	return []string{
		orDash(r.InventoryItem.Name),
		orDash(r.InventoryItem.Category),
		formatQty(r.Qty),
		orDash(r.InventoryItem.UnitMeasurement),
		orDash(r.Branch.Name),
		orDash(r.Warehouse.Name),
	}
}
