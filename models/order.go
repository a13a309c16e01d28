package models

import "encoding/json"

// OrderResult is the minimal acknowledgement returned by order
// placement. The exchange reports no status, fills or remaining
// amount synchronously.
type OrderResult struct {
	ID   string          `json:"id"`
	Info json.RawMessage `json:"info"`
}

// WithdrawResult carries the withdrawal task id assigned by the
// exchange.
type WithdrawResult struct {
	ID   string          `json:"id"`
	Info json.RawMessage `json:"info"`
}

// DepositAddress is the funding address for a single currency.
type DepositAddress struct {
	Currency string          `json:"currency"`
	Address  string          `json:"address"`
	Info     json.RawMessage `json:"info"`
}
