package entity

import (
	"time"

	"pharaohvault-be/pkg/metal"
)

// MetalPrice is the latest spot price per troy ounce, one row per metal.
type MetalPrice struct {
	MetalSymbol metal.Metal
	Price       float64
	Currency    string
	LastUpdated time.Time
}
