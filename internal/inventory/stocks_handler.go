package inventory

import (
	"errors"

	"bi-backend/internal/database"
	"bi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/inventory-stocks
// Envanter stok raporu verisi: tarih/şube filtreleri ve hareket özeti ile
func StocksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dateFilter := c.Query("dateFilter", string(models.DateFilterTransaction))
		if dateFilter != string(models.DateFilterTransaction) && dateFilter != string(models.DateFilterCreated) {
			return fiber.NewError(fiber.StatusBadRequest, "dateFilter 'transaction' veya 'created' olmalı")
		}

		req := models.ReportRequest{
			Kind:       models.ReportInventoryStock,
			DateFrom:   c.Query("dateFrom"),
			DateTo:     c.Query("dateTo"),
			Department: c.Query("department", "All"),
			Region:     c.Query("region", "All"),
			DateFilter: models.DateFilter(dateFilter),
		}

		rows, err := FetchStocks(database.DB, req)
		if err != nil {
			var dsErr *DataSourceError
			if errors.As(err, &dsErr) {
				// Sorgu hatası: mesaj/detay/hint aynen geçirilir
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   dsErr.Message,
					"details": dsErr.Details,
					"hint":    dsErr.Hint,
				})
			}
			return err
		}

		return c.JSON(rows)
	}
}
