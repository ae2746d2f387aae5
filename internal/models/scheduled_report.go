package models

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ScheduledReport: Zamanlanmış rapor işi. Kayıtlar kalıcıdır; süreç yeniden
// başladığında scheduler.RestoreAll ile cron tetikleyicileri yeniden kurulur.
type ScheduledReport struct {
	ID           string       `gorm:"primaryKey;size:150" json:"id"` // çağıran verir ya da reportId:email türetilir
	ReportKind   ReportKind   `gorm:"size:40;not null" json:"report_kind"`
	DateFrom     string       `gorm:"size:10" json:"date_from"`
	DateTo       string       `gorm:"size:10" json:"date_to"`
	Department   string       `gorm:"size:100" json:"department"`
	Region       string       `gorm:"size:100" json:"region"`
	Email        string       `gorm:"size:150;not null" json:"email"`
	Frequency    Frequency    `gorm:"size:10;not null" json:"frequency"`
	TimeOfDay    string       `gorm:"size:5;not null" json:"time_of_day"` // "HH:MM" (24 saat)
	OutputFormat OutputFormat `gorm:"size:10;not null;default:pdf" json:"output_format"`
	CronExpr     string       `gorm:"size:40" json:"cron_expr"`
	LastRunAt    *time.Time   `json:"last_run_at"`
	LastError    string       `gorm:"size:500" json:"last_error"` // son tetiklemede hata olduysa mesajı
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Request: İşin sakladığı parametrelerden rapor isteği üretir
func (j ScheduledReport) Request() ReportRequest {
	return ReportRequest{
		Kind:       j.ReportKind,
		DateFrom:   j.DateFrom,
		DateTo:     j.DateTo,
		Department: j.Department,
		Region:     j.Region,
		DateFilter: DateFilterTransaction,
	}
}
