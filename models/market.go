package models

import "encoding/json"

// MinMax bounds a numeric order parameter.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarketLimits groups the exchange-imposed bounds for orders on a market.
type MarketLimits struct {
	Amount MinMax `json:"amount"`
	Price  MinMax `json:"price"`
	Cost   MinMax `json:"cost"`
}

// MarketPrecision holds the number of decimal digits accepted for
// amount and price fields.
type MarketPrecision struct {
	Amount int `json:"amount"`
	Price  int `json:"price"`
}

// Market describes a trading pair in normalized form. ID is the
// exchange-native identifier ("BTC_USD"), Symbol the cross-exchange
// convention ("BTC/USD"). Info retains the raw pair settings payload.
type Market struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Base      string          `json:"base"`
	Quote     string          `json:"quote"`
	Limits    MarketLimits    `json:"limits"`
	Precision MarketPrecision `json:"precision"`
	Maker     float64         `json:"maker"`
	Taker     float64         `json:"taker"`
	Info      json.RawMessage `json:"info"`
}
