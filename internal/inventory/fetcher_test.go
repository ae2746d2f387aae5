package inventory

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"bi-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Branch{},
		&models.Warehouse{},
		&models.InventoryItem{},
		&models.Inventory{},
		&models.InventoryTransaction{},
	))
	return db
}

func seedStocks(t *testing.T, db *gorm.DB) {
	t.Helper()

	branches := []models.Branch{
		{ID: 1, Name: "Merkez", Location: "Istanbul", Department: "Operations", Region: "Marmara"},
		{ID: 2, Name: "Ege Depo", Location: "Izmir", Department: "Logistics", Region: "Ege"},
	}
	require.NoError(t, db.Create(&branches).Error)

	warehouses := []models.Warehouse{
		{ID: 1, Name: "Ana Depo", Location: "Istanbul", Status: "active"},
		{ID: 2, Name: "Soguk Hava", Location: "Izmir", Status: "active"},
	}
	require.NoError(t, db.Create(&warehouses).Error)

	items := []models.InventoryItem{
		{ID: 1, SKUID: "SKU-001", Name: "Un", Category: "Kuru Gida", UnitMeasurement: "kg", Cost: 12.5},
		{ID: 2, SKUID: "SKU-002", Name: "Seker", Category: "Kuru Gida", UnitMeasurement: "kg", Cost: 18},
		{ID: 3, SKUID: "SKU-003", Name: "Aycicek Yagi", Category: "Yag", UnitMeasurement: "lt", Cost: 45},
	}
	require.NoError(t, db.Create(&items).Error)

	created := time.Date(2024, 12, 15, 10, 0, 0, 0, time.Local)
	inventories := []models.Inventory{
		{ID: 1, Qty: 10, InventoryItemID: 1, BranchID: 1, WarehouseID: 1, CreatedAt: created},
		{ID: 2, Qty: 2.5, InventoryItemID: 2, BranchID: 1, WarehouseID: 1, CreatedAt: created.AddDate(0, 1, 0)},
		{ID: 3, Qty: 7, InventoryItemID: 3, BranchID: 2, WarehouseID: 2, CreatedAt: created},
		{ID: 4, Qty: 99, IsDeleted: true, InventoryItemID: 1, BranchID: 1, WarehouseID: 1, CreatedAt: created},
	}
	require.NoError(t, db.Create(&inventories).Error)

	jan := func(day, hour int) time.Time {
		return time.Date(2025, 1, day, hour, 0, 0, 0, time.Local)
	}
	txs := []models.InventoryTransaction{
		{ID: 1, InventoryID: 1, Type: "in", ChangedQuantity: "5", Source: "purchase", CreatedAt: jan(5, 9)},
		{ID: 2, InventoryID: 1, Type: "out", ChangedQuantity: "-2", Source: "sale", CreatedAt: jan(20, 14)},
		{ID: 3, InventoryID: 2, Type: "adjustment", ChangedQuantity: "1.5", Source: "count", CreatedAt: jan(12, 11)},
		// Ocak araligi disinda: satir 3 bu pencerede gorunmemeli
		{ID: 4, InventoryID: 3, Type: "in", ChangedQuantity: "4", Source: "purchase", CreatedAt: time.Date(2025, 2, 3, 10, 0, 0, 0, time.Local)},
	}
	require.NoError(t, db.Create(&txs).Error)
}

func TestFetchStocksTransactionWindow(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	rows, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		DateFrom:   "2025-01-01",
		DateTo:     "2025-01-31",
		Department: "All",
		Region:     "All",
		DateFilter: models.DateFilterTransaction,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, uint(1), rows[0].ID)
	assert.Equal(t, "Un", rows[0].InventoryItem.Name)
	assert.Equal(t, "Merkez", rows[0].Branch.Name)
	assert.Equal(t, "Ana Depo", rows[0].Warehouse.Name)
	assert.Equal(t, 2, rows[0].TransactionCount)
	assert.InDelta(t, 3, rows[0].TotalQuantityChange, 1e-9)
	require.NotNil(t, rows[0].LatestTransaction)
	assert.Equal(t, "out", rows[0].LatestTransaction.Type)
	assert.Equal(t, "-2", rows[0].LatestTransaction.ChangedQuantity)

	assert.Equal(t, uint(2), rows[1].ID)
	assert.Equal(t, 1, rows[1].TransactionCount)
	assert.InDelta(t, 1.5, rows[1].TotalQuantityChange, 1e-9)
}

func TestFetchStocksEmptyWindowShortCircuit(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	queries := 0
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("count_queries", func(*gorm.DB) {
		queries++
	}))

	rows, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		DateFrom:   "2023-01-01",
		DateTo:     "2023-01-31",
		DateFilter: models.DateFilterTransaction,
	})
	require.NoError(t, err)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
	// Sadece hareket id sorgusu calismali; ana sorgu ve zenginlestirme atlanir
	assert.Equal(t, 1, queries)
}

func TestFetchStocksInvalidDateRange(t *testing.T) {
	db := openTestDB(t)

	_, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		DateFrom:   "2025-02-01",
		DateTo:     "2025-01-01",
		DateFilter: models.DateFilterTransaction,
	})
	require.Error(t, err)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestFetchStocksMalformedDate(t *testing.T) {
	db := openTestDB(t)

	_, err := FetchStocks(db, models.ReportRequest{
		Kind:     models.ReportInventoryStock,
		DateFrom: "01-01-2025",
	})
	require.Error(t, err)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestFetchStocksCreatedDateFilter(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	// Sadece 2025-01-15'te olusturulan envanter kaydi (id 2) girer
	rows, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		DateFrom:   "2025-01-01",
		DateTo:     "2025-01-31",
		DateFilter: models.DateFilterCreated,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(2), rows[0].ID)
	// created filtresinde hareket zenginlestirmesi yapilmaz
	assert.Equal(t, 0, rows[0].TransactionCount)
	assert.Nil(t, rows[0].LatestTransaction)
}

func TestFetchStocksNonNumericQuantityCountsButNotSums(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	require.NoError(t, db.Create(&models.InventoryTransaction{
		ID: 5, InventoryID: 2, Type: "adjustment", ChangedQuantity: "hasarli", Source: "count",
		CreatedAt: time.Date(2025, 1, 25, 9, 0, 0, 0, time.Local),
	}).Error)

	rows, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		DateFrom:   "2025-01-01",
		DateTo:     "2025-01-31",
		DateFilter: models.DateFilterTransaction,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[1].TransactionCount)
	assert.InDelta(t, 1.5, rows[1].TotalQuantityChange, 1e-9) // "hasarli" sifir sayilir
	require.NotNil(t, rows[1].LatestTransaction)
	assert.Equal(t, "hasarli", rows[1].LatestTransaction.ChangedQuantity)
}

func TestFetchStocksDepartmentRegionFilter(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	rows, err := FetchStocks(db, models.ReportRequest{
		Kind:       models.ReportInventoryStock,
		Department: "Logistics",
		Region:     "All",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(3), rows[0].ID)

	rows, err = FetchStocks(db, models.ReportRequest{
		Kind:   models.ReportInventoryStock,
		Region: "Marmara",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestFetchStocksSkipsDeleted(t *testing.T) {
	db := openTestDB(t)
	seedStocks(t, db)

	rows, err := FetchStocks(db, models.ReportRequest{Kind: models.ReportInventoryStock})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.NotEqual(t, uint(4), r.ID)
	}
}
