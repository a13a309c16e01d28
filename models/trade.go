package models

import "encoding/json"

// Trade is a normalized public trade. The exchange does not expose the
// originating order id or the maker/taker role, so neither is carried.
type Trade struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Datetime  string          `json:"datetime"`
	Symbol    string          `json:"symbol"`
	Side      string          `json:"side"` // "buy" or "sell", as reported
	Price     float64         `json:"price"`
	Amount    float64         `json:"amount"`
	Info      json.RawMessage `json:"info"`
}
