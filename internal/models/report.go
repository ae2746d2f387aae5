package models

// ReportKind: Hangi rapor şablonunun ve veri kaynağının kullanılacağını seçer.
// Kapalı bir küme; string karşılaştırmaları tek noktada (ParseReportKind) yapılır.
type ReportKind string

const (
	ReportInventoryStock ReportKind = "inventory-stock"
	ReportSalesSummary   ReportKind = "sales-summary"
	ReportProfitLoss     ReportKind = "profit-loss"
)

func ParseReportKind(s string) (ReportKind, bool) {
	switch ReportKind(s) {
	case ReportInventoryStock, ReportSalesSummary, ReportProfitLoss:
		return ReportKind(s), true
	}
	return "", false
}

func (k ReportKind) Title() string {
	switch k {
	case ReportInventoryStock:
		return "Inventory Stock Report"
	case ReportSalesSummary:
		return "Sales Summary Report"
	case ReportProfitLoss:
		return "Profit & Loss Report"
	}
	return "Custom Report"
}

// HasDataSource: Sadece envanter raporunun bağlı bir veri kaynağı var.
// Diğer türler metadata-only çıktı üretir.
func (k ReportKind) HasDataSource() bool {
	return k == ReportInventoryStock
}

// OutputFormat: Render edilecek dosya biçimi
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatXLSX OutputFormat = "xlsx"
	FormatCSV  OutputFormat = "csv"
)

func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case FormatPDF, FormatXLSX, FormatCSV:
		return OutputFormat(s), true
	case "":
		return FormatPDF, true // varsayılan
	}
	return "", false
}

// DateFilter: Tarih aralığının hangi alana uygulanacağı
type DateFilter string

const (
	DateFilterTransaction DateFilter = "transaction" // stok hareket tarihine göre
	DateFilterCreated     DateFilter = "created"     // envanter oluşturulma tarihine göre
)

// ReportRequest: Tek bir rapor çalıştırmasının parametreleri.
// İstek veya zamanlanmış iş başına oluşturulur, sonradan değiştirilmez.
type ReportRequest struct {
	Kind       ReportKind
	DateFrom   string // "2006-01-02", boş = sınırsız
	DateTo     string // "2006-01-02", boş = sınırsız
	Department string
	Region     string
	DateFilter DateFilter
	Columns    []string // rapor üstbilgisinde gösterilen kolon seçimi (boşsa varsayılan set)
}
