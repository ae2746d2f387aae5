package report

import (
	"fmt"
	"time"

	"bi-backend/internal/inventory"
	"bi-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// renderXLSX: Tek sayfalık workbook. Veri yoksa (veya rapor türünün veri
// kaynağı yoksa) tablo yerine rapor üstbilgi bloğu yazılır.
func renderXLSX(req models.ReportRequest, rows []inventory.StockRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := req.Kind.Title()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if req.Kind.HasDataSource() && len(rows) > 0 {
		// Başlık satırı
		for i, h := range columnHeaders {
			f.SetCellValue(sheet, cellRef(i, 1), h)
		}

		// Veri satırları
		for rowNo, r := range rows {
			vals := rowValues(r)
			for i, v := range vals {
				if i == 2 {
					// Quantity sayısal yazılır
					f.SetCellValue(sheet, cellRef(i, rowNo+2), r.Qty)
					continue
				}
				f.SetCellValue(sheet, cellRef(i, rowNo+2), v)
			}
		}

		widths := []float64{25, 15, 10, 10, 20, 20}
		for i, w := range widths {
			col := string(rune('A' + i))
			f.SetColWidth(sheet, col, col, w)
		}
	} else {
		writeInfoBlock(f, sheet, req, generatedAt)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeInfoBlock: Rapor üstbilgi bloğu (Report Type / Date Range / ... / durum satırı)
func writeInfoBlock(f *excelize.File, sheet string, req models.ReportRequest, generatedAt time.Time) {
	lines := [][2]string{
		{"Report Information", ""},
		{"Report Type", req.Kind.Title()},
		{"Date Range", dateRangeLabel(req)},
		{"Department", req.Department},
		{"Region", req.Region},
		{"Generated At", generatedAt.Format(time.RFC3339)},
		{"Columns", columnsLabel(req)},
		{"", ""},
	}
	if req.Kind.HasDataSource() {
		lines = append(lines, [2]string{"Status", noDataMessage})
	} else {
		lines = append(lines, [2]string{"Note", placeholderNote})
	}

	for rowNo, line := range lines {
		f.SetCellValue(sheet, cellRef(0, rowNo+1), line[0])
		f.SetCellValue(sheet, cellRef(1, rowNo+1), line[1])
	}
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 30)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%c%d", rune('A'+col), row)
}
