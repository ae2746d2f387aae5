package models

import "time"

type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Location  string `gorm:"size:255"`
	Status    string `gorm:"size:30"` // active, maintenance, closed vs.
	CreatedAt time.Time
	UpdatedAt time.Time
}
