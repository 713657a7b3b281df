package model

import "time"

type MetalPrice struct {
	MetalSymbol string    `gorm:"type:varchar(20);primaryKey"`
	Price       float64   `gorm:"type:decimal(12,4);not null"`
	Currency    string    `gorm:"type:varchar(10);not null;default:'USD'"`
	LastUpdated time.Time `gorm:"not null"`
}

func (MetalPrice) TableName() string {
	return "metal_prices"
}
