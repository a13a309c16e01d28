package models

import "encoding/json"

// Balance holds the per-currency funds split. Total is always the sum
// of Free and Used.
type Balance struct {
	Free  float64 `json:"free"`
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
}

// Balances maps every currency known to the market catalog to its
// balance, including currencies absent from the account response.
type Balances struct {
	Currencies map[string]Balance `json:"currencies"`
	Info       json.RawMessage    `json:"info"`
}
