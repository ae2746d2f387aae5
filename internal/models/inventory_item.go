package models

import "time"

// InventoryItem: Stok kalemi tanımı (envanter kayıtları bu tanıma bağlanır)
type InventoryItem struct {
	ID              uint    `gorm:"primaryKey"`
	SKUID           string  `gorm:"size:50;index;column:skuid"`
	Name            string  `gorm:"size:150;not null"`
	Category        string  `gorm:"size:100;index"`
	UnitMeasurement string  `gorm:"size:20"` // kg, adet, koli vs.
	Cost            float64 `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
