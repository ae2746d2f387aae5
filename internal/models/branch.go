package models

import "time"

type Branch struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null;unique"`
	Location   string `gorm:"size:255"`
	Department string `gorm:"size:100;index"` // raporlarda filtre için (ör: "Operations")
	Region     string `gorm:"size:100;index"` // raporlarda filtre için (ör: "Marmara")
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
