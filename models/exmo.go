package models

import "encoding/json"

// Raw payload schemas for the EXMO v1 REST API. Numeric values arrive
// as strings; they are parsed centrally by the normalizer.

// ExmoPairSetting is one entry of the pair_settings response, keyed by
// native pair id.
type ExmoPairSetting struct {
	MinQuantity string `json:"min_quantity"`
	MaxQuantity string `json:"max_quantity"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	MinAmount   string `json:"min_amount"`
	MaxAmount   string `json:"max_amount"`
}

// ExmoTicker is one entry of the ticker response, keyed by native pair
// id. BuyPrice and SellPrice follow the exchange's own labelling: they
// map to bid and ask respectively.
type ExmoTicker struct {
	High      string `json:"high"`
	Low       string `json:"low"`
	Avg       string `json:"avg"`
	Vol       string `json:"vol"`
	VolCurr   string `json:"vol_curr"`
	BuyPrice  string `json:"buy_price"`
	SellPrice string `json:"sell_price"`
	LastTrade string `json:"last_trade"`
	Updated   int64  `json:"updated"` // seconds epoch
}

// ExmoOrderBook is one entry of the order_book response, keyed by
// native pair id. Bid and Ask levels are [price, quantity, amount]
// string triples.
type ExmoOrderBook struct {
	AskQuantity string     `json:"ask_quantity"`
	AskAmount   string     `json:"ask_amount"`
	AskTop      string     `json:"ask_top"`
	BidQuantity string     `json:"bid_quantity"`
	BidAmount   string     `json:"bid_amount"`
	BidTop      string     `json:"bid_top"`
	Bid         [][]string `json:"bid"`
	Ask         [][]string `json:"ask"`
}

// ExmoTrade is one entry of the trades response arrays.
type ExmoTrade struct {
	TradeID  json.Number `json:"trade_id"`
	Type     string      `json:"type"`
	Price    string      `json:"price"`
	Quantity string      `json:"quantity"`
	Amount   string      `json:"amount"`
	Date     int64       `json:"date"` // seconds epoch
}

// ExmoUserInfo is the user_info response. Balances holds available
// funds, Reserved funds locked in open orders.
type ExmoUserInfo struct {
	UID        json.Number       `json:"uid"`
	ServerDate int64             `json:"server_date"`
	Balances   map[string]string `json:"balances"`
	Reserved   map[string]string `json:"reserved"`
}

// ExmoOrderCreated is the order_create response.
type ExmoOrderCreated struct {
	Result  bool        `json:"result"`
	Error   string      `json:"error"`
	OrderID json.Number `json:"order_id"`
}

// ExmoWithdrawCreated is the withdraw_crypt response.
type ExmoWithdrawCreated struct {
	Result bool        `json:"result"`
	Error  string      `json:"error"`
	TaskID json.Number `json:"task_id"`
}
