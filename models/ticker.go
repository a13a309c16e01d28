package models

import "encoding/json"

// Ticker is a normalized 24h market summary. Timestamp is in
// milliseconds. The exchange does not report open, close, vwap,
// change or percentage, so those fields are intentionally absent.
type Ticker struct {
	Symbol      string          `json:"symbol"`
	Timestamp   int64           `json:"timestamp"`
	Datetime    string          `json:"datetime"`
	High        float64         `json:"high"`
	Low         float64         `json:"low"`
	Bid         float64         `json:"bid"`
	Ask         float64         `json:"ask"`
	Last        float64         `json:"last"`
	Average     float64         `json:"average"`
	BaseVolume  float64         `json:"base_volume"`
	QuoteVolume float64         `json:"quote_volume"`
	Info        json.RawMessage `json:"info"`
}
