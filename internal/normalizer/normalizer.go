// Package normalizer maps raw EXMO payloads into the normalized
// entities of the models package. Every function is pure: typed input
// in, normalized entity out, no I/O.
package normalizer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"exmoflow/models"
)

// EXMO charges a flat 0.2% on both sides.
const (
	makerFee = 0.002
	takerFee = 0.002
)

// Market maps one pair_settings entry. The native id ("BTC_USD")
// becomes the normalized symbol ("BTC/USD"); base and quote are the
// split halves. Precision is fixed at 8/8 on this exchange.
func Market(id string, raw json.RawMessage) (models.Market, error) {
	var setting models.ExmoPairSetting
	if err := json.Unmarshal(raw, &setting); err != nil {
		return models.Market{}, fmt.Errorf("pair settings for %s: %w", id, err)
	}

	symbol := strings.Replace(id, "_", "/", 1)
	parts := strings.SplitN(symbol, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return models.Market{}, fmt.Errorf("malformed pair id %q", id)
	}

	limits := models.MarketLimits{}
	var err error
	if limits.Amount.Min, err = parseNumber(setting.MinQuantity); err != nil {
		return models.Market{}, err
	}
	if limits.Amount.Max, err = parseNumber(setting.MaxQuantity); err != nil {
		return models.Market{}, err
	}
	if limits.Price.Min, err = parseNumber(setting.MinPrice); err != nil {
		return models.Market{}, err
	}
	if limits.Price.Max, err = parseNumber(setting.MaxPrice); err != nil {
		return models.Market{}, err
	}
	if limits.Cost.Min, err = parseNumber(setting.MinAmount); err != nil {
		return models.Market{}, err
	}
	if limits.Cost.Max, err = parseNumber(setting.MaxAmount); err != nil {
		return models.Market{}, err
	}

	return models.Market{
		ID:     id,
		Symbol: symbol,
		Base:   parts[0],
		Quote:  parts[1],
		Limits: limits,
		Precision: models.MarketPrecision{
			Amount: precisionDigits,
			Price:  precisionDigits,
		},
		Maker: makerFee,
		Taker: takerFee,
		Info:  raw,
	}, nil
}

// Markets maps the whole pair_settings response, sorted by native id
// for deterministic output.
func Markets(raw map[string]json.RawMessage) ([]models.Market, error) {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]models.Market, 0, len(ids))
	for _, id := range ids {
		market, err := Market(id, raw[id])
		if err != nil {
			return nil, err
		}
		result = append(result, market)
	}
	return result, nil
}

// Ticker maps one ticker entry. The exchange reports the epoch in
// seconds; normalized timestamps are milliseconds. buy_price and
// sell_price map to bid and ask following the exchange's own field
// semantics, not the common naming convention.
func Ticker(symbol string, raw json.RawMessage) (models.Ticker, error) {
	var tick models.ExmoTicker
	if err := json.Unmarshal(raw, &tick); err != nil {
		return models.Ticker{}, fmt.Errorf("ticker for %s: %w", symbol, err)
	}

	timestamp := tick.Updated * 1000

	ticker := models.Ticker{
		Symbol:    symbol,
		Timestamp: timestamp,
		Datetime:  iso8601(timestamp),
		Info:      raw,
	}

	var err error
	if ticker.High, err = parseNumber(tick.High); err != nil {
		return models.Ticker{}, err
	}
	if ticker.Low, err = parseNumber(tick.Low); err != nil {
		return models.Ticker{}, err
	}
	if ticker.Bid, err = parseNumber(tick.BuyPrice); err != nil {
		return models.Ticker{}, err
	}
	if ticker.Ask, err = parseNumber(tick.SellPrice); err != nil {
		return models.Ticker{}, err
	}
	if ticker.Last, err = parseNumber(tick.LastTrade); err != nil {
		return models.Ticker{}, err
	}
	if ticker.Average, err = parseNumber(tick.Avg); err != nil {
		return models.Ticker{}, err
	}
	if ticker.BaseVolume, err = parseNumber(tick.Vol); err != nil {
		return models.Ticker{}, err
	}
	if ticker.QuoteVolume, err = parseNumber(tick.VolCurr); err != nil {
		return models.Ticker{}, err
	}
	return ticker, nil
}

// OrderBook maps one order_book entry and re-sorts both sides, bids
// descending and asks ascending by price, regardless of the upstream
// ordering.
func OrderBook(symbol string, raw json.RawMessage) (models.OrderBook, error) {
	var book models.ExmoOrderBook
	if err := json.Unmarshal(raw, &book); err != nil {
		return models.OrderBook{}, fmt.Errorf("order book for %s: %w", symbol, err)
	}

	bids, err := bookLevels(book.Bid)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("order book bids for %s: %w", symbol, err)
	}
	asks, err := bookLevels(book.Ask)
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("order book asks for %s: %w", symbol, err)
	}

	sort.Slice(bids, func(i, j int) bool { return bids[i].Price > bids[j].Price })
	sort.Slice(asks, func(i, j int) bool { return asks[i].Price < asks[j].Price })

	return models.OrderBook{
		Symbol: symbol,
		Bids:   bids,
		Asks:   asks,
		Info:   raw,
	}, nil
}

func bookLevels(raw [][]string) ([]models.BookLevel, error) {
	levels := make([]models.BookLevel, 0, len(raw))
	for _, entry := range raw {
		if len(entry) < 2 {
			return nil, fmt.Errorf("level %v has fewer than 2 fields", entry)
		}
		price, err := parseNumber(entry[0])
		if err != nil {
			return nil, err
		}
		amount, err := parseNumber(entry[1])
		if err != nil {
			return nil, err
		}
		levels = append(levels, models.BookLevel{Price: price, Amount: amount})
	}
	return levels, nil
}

// Trade maps one public trade. The trade id is stringified; side is
// the raw type field unchanged.
func Trade(symbol string, raw json.RawMessage) (models.Trade, error) {
	var trade models.ExmoTrade
	if err := json.Unmarshal(raw, &trade); err != nil {
		return models.Trade{}, fmt.Errorf("trade for %s: %w", symbol, err)
	}

	price, err := parseNumber(trade.Price)
	if err != nil {
		return models.Trade{}, err
	}
	amount, err := parseNumber(trade.Quantity)
	if err != nil {
		return models.Trade{}, err
	}

	timestamp := trade.Date * 1000

	return models.Trade{
		ID:        trade.TradeID.String(),
		Timestamp: timestamp,
		Datetime:  iso8601(timestamp),
		Symbol:    symbol,
		Side:      trade.Type,
		Price:     price,
		Amount:    amount,
		Info:      raw,
	}, nil
}

// Trades maps one trades response entry (an array of raw trades).
func Trades(symbol string, raw []json.RawMessage) ([]models.Trade, error) {
	result := make([]models.Trade, 0, len(raw))
	for _, entry := range raw {
		trade, err := Trade(symbol, entry)
		if err != nil {
			return nil, err
		}
		result = append(result, trade)
	}
	return result, nil
}

// Balances maps the user_info response over the full currency catalog.
// Currencies absent from the balances or reserved maps default to
// zero; total is always free plus used.
func Balances(currencies []string, raw []byte) (models.Balances, error) {
	var info models.ExmoUserInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return models.Balances{}, fmt.Errorf("user info: %w", err)
	}

	result := models.Balances{
		Currencies: make(map[string]models.Balance, len(currencies)),
		Info:       raw,
	}

	for _, currency := range currencies {
		var balance models.Balance
		if v, ok := info.Balances[currency]; ok {
			free, err := parseNumber(v)
			if err != nil {
				return models.Balances{}, fmt.Errorf("balance for %s: %w", currency, err)
			}
			balance.Free = free
		}
		if v, ok := info.Reserved[currency]; ok {
			used, err := parseNumber(v)
			if err != nil {
				return models.Balances{}, fmt.Errorf("reserved balance for %s: %w", currency, err)
			}
			balance.Used = used
		}
		balance.Total = balance.Free + balance.Used
		result.Currencies[currency] = balance
	}

	return result, nil
}
