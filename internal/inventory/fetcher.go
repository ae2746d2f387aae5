package inventory

import (
	"errors"
	"strconv"
	"time"

	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DataSourceError: Sorgu hatasını message/details/hint ile taşır.
// Postgres hatalarında detay ve hint sürücüden aynen geçirilir.
type DataSourceError struct {
	Message string
	Details string
	Hint    string
}

func (e *DataSourceError) Error() string { return e.Message }

func newDataSourceError(err error) *DataSourceError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &DataSourceError{Message: pgErr.Message, Details: pgErr.Detail, Hint: pgErr.Hint}
	}
	return &DataSourceError{Message: err.Error()}
}

type StockItemInfo struct {
	SKUID           string  `json:"skuid"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	UnitMeasurement string  `json:"unit_measurement"`
	Cost            float64 `json:"cost"`
}

type StockBranchInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type StockWarehouseInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type TransactionInfo struct {
	InventoryID     uint      `json:"inventory_id"`
	CreatedAt       time.Time `json:"created_at"`
	Type            string    `json:"type"`
	ChangedQuantity string    `json:"changed_quantity"`
	Source          string    `json:"source"`
}

// StockRow: Tek bir envanter kaydının rapor satırı.
// transaction_count / latest_transaction / total_quantity_change alanları
// hareket tarihine göre filtrelenmiş sorgularda doldurulur.
type StockRow struct {
	ID                  uint               `json:"id"`
	Qty                 float64            `json:"qty"`
	CreatedAt           time.Time          `json:"created_at"`
	InventoryItem       StockItemInfo      `json:"inventory_item"`
	Branch              StockBranchInfo    `json:"branch"`
	Warehouse           StockWarehouseInfo `json:"warehouse"`
	TransactionCount    int                `json:"transaction_count"`
	LatestTransaction   *TransactionInfo   `json:"latest_transaction"`
	TotalQuantityChange float64            `json:"total_quantity_change"`
}

// parseDateBounds: "YYYY-MM-DD" sınırlarını gün başı/gün sonu zamanlarına çevirir.
// dateFrom > dateTo ise sorgu çalıştırmadan hata döner.
func parseDateBounds(dateFrom, dateTo string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if dateFrom != "" {
		d, err := time.ParseInLocation("2006-01-02", dateFrom, time.Local)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "dateFrom formatı 'YYYY-MM-DD' olmalı")
		}
		t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.Local)
		from = &t
	}
	if dateTo != "" {
		d, err := time.ParseInLocation("2006-01-02", dateTo, time.Local)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "dateTo formatı 'YYYY-MM-DD' olmalı")
		}
		t := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.Local)
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "dateFrom, dateTo'dan sonra olamaz")
	}
	return from, to, nil
}

// FetchStocks: Envanter kayıtlarını tarih/şube filtreleriyle çeker.
// dateFilter=transaction ise önce hareket tablosundan envanter id'leri toplanır;
// boş küme çıkarsa ana sorgu hiç çalıştırılmadan boş sonuç döner. Hareket
// filtresi uygulandıysa satırlar hareket özetiyle zenginleştirilir.
func FetchStocks(db *gorm.DB, req models.ReportRequest) ([]StockRow, error) {
	from, to, err := parseDateBounds(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	byTransaction := req.DateFilter != models.DateFilterCreated
	hasDateRange := from != nil || to != nil

	var inventoryIDs []uint
	if hasDateRange && byTransaction {
		tq := db.Model(&models.InventoryTransaction{}).Distinct("inventory_id")
		if from != nil {
			tq = tq.Where("created_at >= ?", *from)
		}
		if to != nil {
			tq = tq.Where("created_at <= ?", *to)
		}
		if err := tq.Pluck("inventory_id", &inventoryIDs).Error; err != nil {
			return nil, newDataSourceError(err)
		}
		// Aralıkta hiç hareket yoksa ana sorguya gerek yok
		if len(inventoryIDs) == 0 {
			return []StockRow{}, nil
		}
	}

	q := db.Model(&models.Inventory{}).
		Where("inventories.is_deleted = ?", false).
		Preload("InventoryItem").
		Preload("Branch").
		Preload("Warehouse").
		Order("inventories.id ASC")

	if len(inventoryIDs) > 0 {
		q = q.Where("inventories.id IN ?", inventoryIDs)
	}
	if hasDateRange && !byTransaction {
		if from != nil {
			q = q.Where("inventories.created_at >= ?", *from)
		}
		if to != nil {
			q = q.Where("inventories.created_at <= ?", *to)
		}
	}
	if (req.Department != "" && req.Department != "All") || (req.Region != "" && req.Region != "All") {
		q = q.Joins("JOIN branches ON branches.id = inventories.branch_id")
		if req.Department != "" && req.Department != "All" {
			q = q.Where("branches.department = ?", req.Department)
		}
		if req.Region != "" && req.Region != "All" {
			q = q.Where("branches.region = ?", req.Region)
		}
	}

	var records []models.Inventory
	if err := q.Find(&records).Error; err != nil {
		return nil, newDataSourceError(err)
	}

	rows := make([]StockRow, 0, len(records))
	for _, inv := range records {
		rows = append(rows, StockRow{
			ID:        inv.ID,
			Qty:       inv.Qty,
			CreatedAt: inv.CreatedAt,
			InventoryItem: StockItemInfo{
				SKUID:           inv.InventoryItem.SKUID,
				Name:            inv.InventoryItem.Name,
				Category:        inv.InventoryItem.Category,
				UnitMeasurement: inv.InventoryItem.UnitMeasurement,
				Cost:            inv.InventoryItem.Cost,
			},
			Branch: StockBranchInfo{
				Name:     inv.Branch.Name,
				Location: inv.Branch.Location,
			},
			Warehouse: StockWarehouseInfo{
				Name:     inv.Warehouse.Name,
				Location: inv.Warehouse.Location,
				Status:   inv.Warehouse.Status,
			},
		})
	}

	if hasDateRange && byTransaction {
		if err := enrichWithTransactions(db, rows, from, to); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// enrichWithTransactions: Satırları aynı tarih aralığındaki hareketlerle zenginleştirir.
func enrichWithTransactions(db *gorm.DB, rows []StockRow, from, to *time.Time) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	tq := db.Where("inventory_id IN ?", ids)
	if from != nil {
		tq = tq.Where("created_at >= ?", *from)
	}
	if to != nil {
		tq = tq.Where("created_at <= ?", *to)
	}

	// created_at eşitliğinde id'ye göre sıralama deterministik "en son hareket" verir
	var txs []models.InventoryTransaction
	if err := tq.Order("created_at DESC, id DESC").Find(&txs).Error; err != nil {
		return newDataSourceError(err)
	}

	byInventory := make(map[uint][]models.InventoryTransaction, len(rows))
	for _, t := range txs {
		byInventory[t.InventoryID] = append(byInventory[t.InventoryID], t)
	}

	for i := range rows {
		related := byInventory[rows[i].ID]
		rows[i].TransactionCount = len(related)

		var total float64
		for _, t := range related {
			// Sayısal olmayan changed_quantity sıfır sayılır
			if v, err := strconv.ParseFloat(t.ChangedQuantity, 64); err == nil {
				total += v
			}
		}
		rows[i].TotalQuantityChange = total

		if len(related) > 0 {
			latest := related[0] // sıralama DESC, ilk eleman en yeni
			rows[i].LatestTransaction = &TransactionInfo{
				InventoryID:     latest.InventoryID,
				CreatedAt:       latest.CreatedAt,
				Type:            latest.Type,
				ChangedQuantity: latest.ChangedQuantity,
				Source:          latest.Source,
			}
		}
	}

	return nil
}
