package report

import (
	"bytes"
	"fmt"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 14.0
	pdfRowHeight = 6.0
)

var pdfColWidths = []float64{52, 28, 20, 18, 32, 32} // toplam 182 = A4 genişliği - 2*margin

// renderPDF: Sayfalı doküman çıktısı. Satır yüksekliği yazdırılabilir alanı
// aşacaksa yeni sayfa açılır ve başlık satırı tekrar basılır; hiçbir satır
// sayfa sınırında bölünmez.
func renderPDF(req models.ReportRequest, rows []inventory.StockRow, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Başlık (ortalanmış)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, req.Kind.Title(), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Üstbilgi satırları
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range metaLines(req, generatedAt) {
		pdf.CellFormat(0, 5.5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if !req.Kind.HasDataSource() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, noSourceNote, "", "L", false)
		return pdfBytes(pdf)
	}

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, noDataMessage, "", 1, "L", false, 0, "")
		return pdfBytes(pdf)
	}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 11)
		for i, h := range columnHeaders {
			pdf.CellFormat(pdfColWidths[i], pdfRowHeight, h, "", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
		pdf.SetDrawColor(230, 230, 230)
		pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
	}

	writeHeader()
	for _, r := range rows {
		if pdf.GetY()+pdfRowHeight > pageH-pdfMargin {
			pdf.AddPage()
			writeHeader()
		}
		for i, v := range rowValues(r) {
			pdf.CellFormat(pdfColWidths[i], pdfRowHeight, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(pdfRowHeight)
	}

	return pdfBytes(pdf)
}

func pdfBytes(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
