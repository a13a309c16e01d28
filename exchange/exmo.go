// Package exchange exposes the EXMO v1 REST API through a normalized
// trading interface. Every operation is a single request/response
// round trip; the only state kept across calls is the lazily loaded
// market catalog.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"sync"
	"time"

	"exmoflow/config"
	"exmoflow/internal/normalizer"
	"exmoflow/internal/request"
	"exmoflow/internal/transport"
	"exmoflow/logger"
	"exmoflow/models"
)

// Exmo is the exchange adapter. Construct it with New; the zero value
// is not usable.
type Exmo struct {
	builder *request.Builder
	client  *transport.Client
	log     *logger.Log

	mu              sync.Mutex
	loaded          bool
	marketsBySymbol map[string]models.Market
	marketsByID     map[string]models.Market
	currencies      []string
}

func New(cfg config.ExchangeConfig, creds config.Credentials) *Exmo {
	return &Exmo{
		builder: request.NewBuilder(cfg, creds),
		client:  transport.NewClient(cfg),
		log:     logger.GetLogger(),
	}
}

// publicGet performs one unsigned round trip and applies the envelope
// check.
func (e *Exmo) publicGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	body, err := e.client.Do(ctx, e.builder.Public(path, params))
	if err != nil {
		return nil, err
	}
	if err := checkEnvelope(body); err != nil {
		return nil, err
	}
	return body, nil
}

// privatePost performs one signed round trip and applies the envelope
// check. Credentials are validated before any network I/O.
func (e *Exmo) privatePost(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := e.builder.Private(path, params)
	if err != nil {
		return nil, err
	}
	body, err := e.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkEnvelope(body); err != nil {
		return nil, err
	}
	return body, nil
}

// mergeParams overlays caller-supplied overrides onto the base
// parameter set. Overrides win on key collisions.
func mergeParams(base, overrides url.Values) url.Values {
	if len(overrides) == 0 {
		return base
	}
	if base == nil {
		base = url.Values{}
	}
	for key, values := range overrides {
		base.Del(key)
		for _, v := range values {
			base.Add(key, v)
		}
	}
	return base
}

// FetchMarkets retrieves and normalizes the full pair catalog.
func (e *Exmo) FetchMarkets(ctx context.Context) ([]models.Market, error) {
	body, err := e.publicGet(ctx, "pair_settings", nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("pair_settings response: %w", err)
	}

	markets, err := normalizer.Markets(raw)
	if err != nil {
		return nil, err
	}

	e.log.WithComponent("exchange").WithFields(logger.Fields{
		"operation": "fetch_markets",
		"markets":   len(markets),
	}).Debug("markets fetched")
	return markets, nil
}

// loadMarkets populates the memoized market catalog on first use.
// Once loaded the catalog is treated as read-only and never
// re-fetched for the lifetime of the adapter.
func (e *Exmo) loadMarkets(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return nil
	}

	start := time.Now()
	markets, err := e.FetchMarkets(ctx)
	if err != nil {
		return err
	}

	bySymbol := make(map[string]models.Market, len(markets))
	byID := make(map[string]models.Market, len(markets))
	currencySet := make(map[string]struct{})
	for _, market := range markets {
		bySymbol[market.Symbol] = market
		byID[market.ID] = market
		currencySet[market.Base] = struct{}{}
		currencySet[market.Quote] = struct{}{}
	}

	currencies := make([]string, 0, len(currencySet))
	for currency := range currencySet {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	e.marketsBySymbol = bySymbol
	e.marketsByID = byID
	e.currencies = currencies
	e.loaded = true

	e.log.WithComponent("exchange").WithFields(logger.Fields{
		"markets":    len(markets),
		"currencies": len(currencies),
	}).Info("market catalog loaded")
	logger.LogPerformanceEntry(e.log.WithComponent("exchange"), "exchange", "load_markets", time.Since(start), nil)
	return nil
}

// market resolves a normalized symbol or a native pair id against the
// loaded catalog.
func (e *Exmo) market(symbol string) (models.Market, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if market, ok := e.marketsBySymbol[symbol]; ok {
		return market, nil
	}
	if market, ok := e.marketsByID[symbol]; ok {
		return market, nil
	}
	return models.Market{}, fmt.Errorf("unknown market %q", symbol)
}

// FetchCurrencies lists the currency codes the exchange supports.
func (e *Exmo) FetchCurrencies(ctx context.Context) ([]string, error) {
	body, err := e.publicGet(ctx, "currency", nil)
	if err != nil {
		return nil, err
	}

	var currencies []string
	if err := json.Unmarshal(body, &currencies); err != nil {
		return nil, fmt.Errorf("currency response: %w", err)
	}
	return currencies, nil
}

// FetchOrderBook retrieves the depth snapshot for one symbol. Params
// may override or extend the request parameters.
func (e *Exmo) FetchOrderBook(ctx context.Context, symbol string, params url.Values) (models.OrderBook, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return models.OrderBook{}, err
	}
	market, err := e.market(symbol)
	if err != nil {
		return models.OrderBook{}, err
	}

	query := url.Values{}
	query.Set("pair", market.ID)
	body, err := e.publicGet(ctx, "order_book", mergeParams(query, params))
	if err != nil {
		return models.OrderBook{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.OrderBook{}, fmt.Errorf("order_book response: %w", err)
	}
	entry, ok := raw[market.ID]
	if !ok {
		return models.OrderBook{}, fmt.Errorf("order_book response missing pair %s", market.ID)
	}
	return normalizer.OrderBook(market.Symbol, entry)
}

// fetchRawTickers performs the single ticker round trip. The endpoint
// always returns all pairs.
func (e *Exmo) fetchRawTickers(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	body, err := e.publicGet(ctx, "ticker", params)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("ticker response: %w", err)
	}
	return raw, nil
}

// FetchTickers retrieves tickers for every listed pair, keyed by
// normalized symbol.
func (e *Exmo) FetchTickers(ctx context.Context, params url.Values) (map[string]models.Ticker, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return nil, err
	}
	raw, err := e.fetchRawTickers(ctx, params)
	if err != nil {
		return nil, err
	}

	result := make(map[string]models.Ticker, len(raw))
	for id, entry := range raw {
		market, err := e.market(id)
		if err != nil {
			e.log.WithComponent("exchange").WithFields(logger.Fields{
				"pair": id,
			}).Warn("ticker for unlisted pair skipped")
			continue
		}
		ticker, err := normalizer.Ticker(market.Symbol, entry)
		if err != nil {
			return nil, err
		}
		result[market.Symbol] = ticker
	}
	return result, nil
}

// FetchTicker retrieves the ticker for one symbol.
func (e *Exmo) FetchTicker(ctx context.Context, symbol string) (models.Ticker, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return models.Ticker{}, err
	}
	market, err := e.market(symbol)
	if err != nil {
		return models.Ticker{}, err
	}
	raw, err := e.fetchRawTickers(ctx, nil)
	if err != nil {
		return models.Ticker{}, err
	}
	entry, ok := raw[market.ID]
	if !ok {
		return models.Ticker{}, fmt.Errorf("ticker response missing pair %s", market.ID)
	}
	return normalizer.Ticker(market.Symbol, entry)
}

// FetchTrades retrieves recent public trades for one symbol.
func (e *Exmo) FetchTrades(ctx context.Context, symbol string, params url.Values) ([]models.Trade, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return nil, err
	}
	market, err := e.market(symbol)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("pair", market.ID)
	body, err := e.publicGet(ctx, "trades", mergeParams(query, params))
	if err != nil {
		return nil, err
	}

	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("trades response: %w", err)
	}
	entries, ok := raw[market.ID]
	if !ok {
		return nil, fmt.Errorf("trades response missing pair %s", market.ID)
	}
	return normalizer.Trades(market.Symbol, entries)
}

// FetchBalance retrieves account balances over the full currency
// catalog; currencies absent from the response are reported as zero.
func (e *Exmo) FetchBalance(ctx context.Context) (models.Balances, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return models.Balances{}, err
	}

	body, err := e.privatePost(ctx, "user_info", nil)
	if err != nil {
		return models.Balances{}, err
	}

	e.mu.Lock()
	currencies := e.currencies
	e.mu.Unlock()

	return normalizer.Balances(currencies, body)
}

// CreateOrder places an order. For market orders the exchange expects
// the side prefixed with "market_" and still requires a price field,
// which defaults to zero.
func (e *Exmo) CreateOrder(ctx context.Context, symbol, orderType, side string, amount, price float64, params url.Values) (models.OrderResult, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return models.OrderResult{}, err
	}
	market, err := e.market(symbol)
	if err != nil {
		return models.OrderResult{}, err
	}

	action := side
	if orderType == "market" {
		action = "market_" + side
	}

	form := url.Values{}
	form.Set("pair", market.ID)
	form.Set("quantity", normalizer.FormatNumber(amount))
	form.Set("price", normalizer.FormatNumber(price))
	form.Set("type", action)

	body, err := e.privatePost(ctx, "order_create", mergeParams(form, params))
	if err != nil {
		return models.OrderResult{}, err
	}

	var created models.ExmoOrderCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return models.OrderResult{}, fmt.Errorf("order_create response: %w", err)
	}

	e.log.WithComponent("exchange").WithFields(logger.Fields{
		"operation": "create_order",
		"pair":      market.ID,
		"type":      action,
		"order_id":  created.OrderID.String(),
	}).Info("order placed")

	return models.OrderResult{ID: created.OrderID.String(), Info: body}, nil
}

// CancelOrder cancels an open order by id. The exchange gives no
// structured confirmation beyond the success flag, so the raw
// response is returned as-is.
func (e *Exmo) CancelOrder(ctx context.Context, id string) (json.RawMessage, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("order_id", id)
	body, err := e.privatePost(ctx, "order_cancel", form)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Withdraw requests a crypto withdrawal and returns the task id the
// exchange assigns to it.
func (e *Exmo) Withdraw(ctx context.Context, currency string, amount float64, address string, params url.Values) (models.WithdrawResult, error) {
	if err := e.loadMarkets(ctx); err != nil {
		return models.WithdrawResult{}, err
	}

	form := url.Values{}
	form.Set("amount", normalizer.FormatNumber(amount))
	form.Set("currency", currency)
	form.Set("address", address)

	body, err := e.privatePost(ctx, "withdraw_crypt", mergeParams(form, params))
	if err != nil {
		return models.WithdrawResult{}, err
	}

	var created models.ExmoWithdrawCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return models.WithdrawResult{}, fmt.Errorf("withdraw_crypt response: %w", err)
	}
	return models.WithdrawResult{ID: created.TaskID.String(), Info: body}, nil
}

// FetchDepositAddress retrieves the funding address for one currency.
func (e *Exmo) FetchDepositAddress(ctx context.Context, currency string) (models.DepositAddress, error) {
	body, err := e.privatePost(ctx, "deposit_address", nil)
	if err != nil {
		return models.DepositAddress{}, err
	}

	var addresses map[string]interface{}
	if err := json.Unmarshal(body, &addresses); err != nil {
		return models.DepositAddress{}, fmt.Errorf("deposit_address response: %w", err)
	}
	address, ok := addresses[currency].(string)
	if !ok || address == "" {
		return models.DepositAddress{}, fmt.Errorf("no deposit address for %s", currency)
	}
	return models.DepositAddress{Currency: currency, Address: address, Info: body}, nil
}
