package report

import (
	"strings"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"
)

// csvQuote: Her alan çift tırnaklanır, içerideki tırnaklar "" ile kaçırılır
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// renderCSV: Virgülle ayrılmış metin çıktısı. Veri yoksa tablo yerine
// XLSX ile aynı üstbilgi bloğu yazılır.
func renderCSV(req models.ReportRequest, rows []inventory.StockRow, generatedAt time.Time) []byte {
	var b strings.Builder

	if req.Kind.HasDataSource() && len(rows) > 0 {
		b.WriteString(strings.Join(columnHeaders, ",") + "\n")
		for _, r := range rows {
			vals := rowValues(r)
			quoted := make([]string, len(vals))
			for i, v := range vals {
				quoted[i] = csvQuote(v)
			}
			b.WriteString(strings.Join(quoted, ",") + "\n")
		}
		return []byte(b.String())
	}

	b.WriteString("Report Information,Value\n")
	b.WriteString("Report Type," + csvQuote(req.Kind.Title()) + "\n")
	b.WriteString("Date Range," + csvQuote(dateRangeLabel(req)) + "\n")
	b.WriteString("Department," + csvQuote(req.Department) + "\n")
	b.WriteString("Region," + csvQuote(req.Region) + "\n")
	b.WriteString("Generated At," + csvQuote(generatedAt.Format(time.RFC3339)) + "\n")
	b.WriteString("Columns," + csvQuote(columnsLabel(req)) + "\n")
	b.WriteString("\n")
	if req.Kind.HasDataSource() {
		b.WriteString("Status," + csvQuote(noDataMessage) + "\n")
	} else {
		b.WriteString("Note," + csvQuote(placeholderNote) + "\n")
	}
	return []byte(b.String())
}
