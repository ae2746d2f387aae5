package scheduler

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"bi-backend/internal/models"
	"bi-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry: Aktif cron tetikleyicilerinin kaydı. İş tanımları scheduled_reports
// tablosunda kalıcıdır; süreç açılışında RestoreAll ile tetikleyiciler yeniden
// kurulur. Aynı id için asla iki tetikleyici yaşamaz: eskisi durdurulmadan
// yenisi kurulmaz (tek mutex alanı).
type Registry struct {
	mu   sync.Mutex
	cron *cron.Cron
	jobs map[string]cron.EntryID
	db   *gorm.DB
	svc  *report.Service
}

func NewRegistry(db *gorm.DB, svc *report.Service) *Registry {
	r := &Registry{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
		db:   db,
		svc:  svc,
	}
	r.cron.Start()
	return r
}

// toCronSpec: frequency + "HH:MM" → 5 alanlı cron ifadesi.
// daily her gün, weekly pazartesi, monthly ayın 1'i.
func toCronSpec(frequency models.Frequency, timeOfDay string) (string, error) {
	parts := strings.Split(timeOfDay, ":")
	if len(parts) != 2 {
		return "", fiber.NewError(fiber.StatusBadRequest, "time formatı 'HH:MM' olmalı")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "time formatı 'HH:MM' olmalı")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "time formatı 'HH:MM' olmalı")
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fiber.NewError(fiber.StatusBadRequest, "time 00:00-23:59 aralığında olmalı")
	}

	switch frequency {
	case models.FrequencyDaily:
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case models.FrequencyWeekly:
		// varsayılan: pazartesi
		return fmt.Sprintf("%d %d * * 1", minute, hour), nil
	case models.FrequencyMonthly:
		// ayın ilk günü
		return fmt.Sprintf("%d %d 1 * *", minute, hour), nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "frequency 'daily', 'weekly' veya 'monthly' olmalı")
}

// Schedule: İşi kaydeder ve tetikleyicisini kurar. Aynı id ile tekrar
// çağrılırsa eski tetikleyici durdurulup yenisi kurulur (üst üste binmez).
func (r *Registry) Schedule(job models.ScheduledReport) (models.ScheduledReport, error) {
	spec, err := toCronSpec(job.Frequency, job.TimeOfDay)
	if err != nil {
		return job, err
	}
	job.CronExpr = spec

	r.mu.Lock()
	defer r.mu.Unlock()

	if oldID, ok := r.jobs[job.ID]; ok {
		r.cron.Remove(oldID)
		delete(r.jobs, job.ID)
	}

	if r.db != nil {
		if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&job).Error; err != nil {
			return job, fiber.NewError(fiber.StatusInternalServerError, "Zamanlanmış iş kaydedilemedi")
		}
	}

	entryID, err := r.cron.AddFunc(spec, func() { r.fire(job) })
	if err != nil {
		return job, fiber.NewError(fiber.StatusBadRequest, "Geçersiz zamanlama: "+err.Error())
	}
	r.jobs[job.ID] = entryID

	return job, nil
}

// Cancel: Tetikleyiciyi durdurur ve kalıcı kaydı siler.
// Bilinmeyen id hata değildir; false döner, kayıt değişmez.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entryID, ok := r.jobs[id]
	if !ok {
		return false
	}

	r.cron.Remove(entryID)
	delete(r.jobs, id)

	if r.db != nil {
		r.db.Delete(&models.ScheduledReport{}, "id = ?", id)
	}

	return true
}

// RestoreAll: Kalıcı işleri açılışta yeniden kurar; kurulan iş sayısını döner
func (r *Registry) RestoreAll() int {
	if r.db == nil {
		return 0
	}

	var jobs []models.ScheduledReport
	if err := r.db.Find(&jobs).Error; err != nil {
		log.Printf("Zamanlanmış işler yüklenemedi: %v", err)
		return 0
	}

	restored := 0
	for _, job := range jobs {
		if _, err := r.Schedule(job); err != nil {
			log.Printf("Zamanlanmış iş yeniden kurulamadı (%s): %v", job.ID, err)
			continue
		}
		restored++
	}
	return restored
}

// ActiveCount: Aktif tetikleyici sayısı
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// Stop: Cron döngüsünü durdurur (testler ve kapanış için)
func (r *Registry) Stop() {
	r.cron.Stop()
}

// fire: Tetikleme anında tam orkestrasyonu çalıştırır. Hata süreci
// düşürmez: loglanır ve iş kaydına yazılır, tetikleyici bir sonraki
// periyot için kurulu kalır.
func (r *Registry) fire(job models.ScheduledReport) {
	log.Printf("Zamanlanmış rapor tetiklendi: %s (%s)", job.ID, job.CronExpr)

	_, err := r.svc.Run(job.Request(), job.OutputFormat, job.Email, "Scheduled Report")

	now := time.Now()
	updates := map[string]any{"last_run_at": &now, "last_error": ""}
	if err != nil {
		log.Printf("Zamanlanmış rapor başarısız (%s): %v", job.ID, err)
		updates["last_error"] = err.Error()
	}
	if r.db != nil {
		r.db.Model(&models.ScheduledReport{}).Where("id = ?", job.ID).Updates(updates)
	}
}
