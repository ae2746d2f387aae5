package scheduler

import (
	"fmt"
	"strings"
	"testing"

	"bi-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSchedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ScheduledReport{}))
	return db
}

func testJob(id string) models.ScheduledReport {
	return models.ScheduledReport{
		ID:           id,
		ReportKind:   models.ReportInventoryStock,
		DateFrom:     "2025-01-01",
		DateTo:       "2025-01-31",
		Department:   "All",
		Region:       "All",
		Email:        "ops@example.com",
		Frequency:    models.FrequencyDaily,
		TimeOfDay:    "09:30",
		OutputFormat: models.FormatPDF,
	}
}

func TestToCronSpec(t *testing.T) {
	cases := []struct {
		frequency models.Frequency
		timeOfDay string
		want      string
	}{
		{models.FrequencyDaily, "09:30", "30 9 * * *"},
		{models.FrequencyDaily, "00:00", "0 0 * * *"},
		{models.FrequencyDaily, "23:59", "59 23 * * *"},
		{models.FrequencyWeekly, "09:30", "30 9 * * 1"}, // pazartesi
		{models.FrequencyMonthly, "08:00", "0 8 1 * *"}, // ayin 1'i
	}
	for _, tc := range cases {
		got, err := toCronSpec(tc.frequency, tc.timeOfDay)
		require.NoError(t, err, "%s %s", tc.frequency, tc.timeOfDay)
		assert.Equal(t, tc.want, got)
	}
}

func TestToCronSpecRejectsInvalid(t *testing.T) {
	cases := []struct {
		frequency models.Frequency
		timeOfDay string
	}{
		{models.FrequencyDaily, "930"},
		{models.FrequencyDaily, "9:3:0"},
		{models.FrequencyDaily, "aa:30"},
		{models.FrequencyDaily, "09:bb"},
		{models.FrequencyDaily, "24:00"},
		{models.FrequencyDaily, "12:60"},
		{models.FrequencyDaily, "-1:30"},
		{models.Frequency("hourly"), "09:30"},
	}
	for _, tc := range cases {
		_, err := toCronSpec(tc.frequency, tc.timeOfDay)
		require.Error(t, err, "%s %s", tc.frequency, tc.timeOfDay)
		var fiberErr *fiber.Error
		require.ErrorAs(t, err, &fiberErr)
		assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	}
}

func TestScheduleInstallsAndPersists(t *testing.T) {
	db := openSchedulerTestDB(t)
	reg := NewRegistry(db, nil)
	defer reg.Stop()

	job, err := reg.Schedule(testJob("inventory-stock:ops@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "30 9 * * *", job.CronExpr)
	assert.Equal(t, 1, reg.ActiveCount())

	var saved models.ScheduledReport
	require.NoError(t, db.First(&saved, "id = ?", job.ID).Error)
	assert.Equal(t, "30 9 * * *", saved.CronExpr)
	assert.Equal(t, models.FrequencyDaily, saved.Frequency)
}

func TestScheduleSameIDReplaces(t *testing.T) {
	db := openSchedulerTestDB(t)
	reg := NewRegistry(db, nil)
	defer reg.Stop()

	_, err := reg.Schedule(testJob("job-1"))
	require.NoError(t, err)

	// Ayni id ile yeniden kurulursa eski tetikleyici kaldirilir, ust uste binmez
	updated := testJob("job-1")
	updated.TimeOfDay = "08:00"
	job, err := reg.Schedule(updated)
	require.NoError(t, err)

	assert.Equal(t, "0 8 * * *", job.CronExpr)
	assert.Equal(t, 1, reg.ActiveCount())

	var count int64
	require.NoError(t, db.Model(&models.ScheduledReport{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var saved models.ScheduledReport
	require.NoError(t, db.First(&saved, "id = ?", "job-1").Error)
	assert.Equal(t, "0 8 * * *", saved.CronExpr)
	assert.Equal(t, "08:00", saved.TimeOfDay)
}

func TestScheduleInvalidTimeInstallsNothing(t *testing.T) {
	db := openSchedulerTestDB(t)
	reg := NewRegistry(db, nil)
	defer reg.Stop()

	bad := testJob("job-bad")
	bad.TimeOfDay = "25:00"
	_, err := reg.Schedule(bad)
	require.Error(t, err)

	assert.Equal(t, 0, reg.ActiveCount())
	var count int64
	require.NoError(t, db.Model(&models.ScheduledReport{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCancel(t *testing.T) {
	db := openSchedulerTestDB(t)
	reg := NewRegistry(db, nil)
	defer reg.Stop()

	_, err := reg.Schedule(testJob("job-1"))
	require.NoError(t, err)

	assert.True(t, reg.Cancel("job-1"))
	assert.Equal(t, 0, reg.ActiveCount())

	var count int64
	require.NoError(t, db.Model(&models.ScheduledReport{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Bilinmeyen id hata degil: false doner, kayit degismez
	assert.False(t, reg.Cancel("job-1"))
	assert.False(t, reg.Cancel("hic-olmadi"))
}

func TestRestoreAllReinstallsPersistedJobs(t *testing.T) {
	db := openSchedulerTestDB(t)

	first := NewRegistry(db, nil)
	_, err := first.Schedule(testJob("job-1"))
	require.NoError(t, err)
	weekly := testJob("job-2")
	weekly.Frequency = models.FrequencyWeekly
	_, err = first.Schedule(weekly)
	require.NoError(t, err)
	first.Stop()

	// Yeni surec: tetikleyiciler bos, kayitlar kalici
	second := NewRegistry(db, nil)
	defer second.Stop()
	assert.Equal(t, 0, second.ActiveCount())

	restored := second.RestoreAll()
	assert.Equal(t, 2, restored)
	assert.Equal(t, 2, second.ActiveCount())
}
