package models

import "time"

// Inventory: Bir şube/depodaki stok kaydı
type Inventory struct {
	ID              uint    `gorm:"primaryKey"`
	Qty             float64 `gorm:"not null;default:0"`
	IsDeleted       bool    `gorm:"not null;default:false;index"`
	InventoryItemID uint    `gorm:"index;not null"`
	InventoryItem   InventoryItem
	BranchID        uint `gorm:"index;not null"`
	Branch          Branch
	WarehouseID     uint `gorm:"index;not null"`
	Warehouse       Warehouse
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}
