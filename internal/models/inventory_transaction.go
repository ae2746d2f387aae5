package models

import "time"

// InventoryTransaction: Stok hareket kaydı (giriş/çıkış/düzeltme)
// ChangedQuantity text tutulur; kaynak sistem sayısal olmayan değer yazabiliyor,
// toplama sırasında parse edilemeyenler sıfır sayılır.
type InventoryTransaction struct {
	ID              uint `gorm:"primaryKey"`
	InventoryID     uint `gorm:"index;not null"`
	Type            string `gorm:"size:30"` // in, out, adjustment vs.
	ChangedQuantity string `gorm:"size:50"`
	Source          string `gorm:"size:100"`
	CreatedAt       time.Time `gorm:"index"` // hareket tarihi
}
