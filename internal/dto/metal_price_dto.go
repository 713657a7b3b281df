package dto

import "time"

type MetalPriceResponse struct {
	MetalSymbol string    `json:"metal_symbol"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"last_updated"`
}
