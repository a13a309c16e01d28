package models

import "encoding/json"

// BookLevel represents a single price level in the order book.
type BookLevel struct {
	Price  float64 `json:"price"`
	Amount float64 `json:"amount"`
}

// OrderBook is a normalized depth snapshot. Bids are sorted descending
// by price, asks ascending, regardless of the upstream ordering.
type OrderBook struct {
	Symbol string          `json:"symbol"`
	Bids   []BookLevel     `json:"bids"`
	Asks   []BookLevel     `json:"asks"`
	Info   json.RawMessage `json:"info"`
}
