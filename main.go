package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"exmoflow/config"
	"exmoflow/exchange"
	"exmoflow/logger"
)

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/config.yml", "Path to configuration file")
	symbol := flag.String("symbol", "BTC/USD", "Symbol to query")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	log.WithFields(logger.Fields{
		"service": cfg.Exmoflow.Name,
		"version": cfg.Exmoflow.Version,
	}).Info("starting exmoflow")

	creds := config.CredentialsFromEnv()
	env := config.AppEnvironment()
	if config.IsProductionLike(env) && !creds.Configured() {
		log.WithFields(logger.Fields{"environment": env}).Warn("running without API credentials, private endpoints unavailable")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	adapter := exchange.New(cfg.Exchange, creds)

	markets, err := adapter.FetchMarkets(ctx)
	if err != nil {
		log.WithError(err).Error("failed to fetch markets")
		os.Exit(1)
	}
	log.WithFields(logger.Fields{"markets": len(markets)}).Info("markets fetched")

	ticker, err := adapter.FetchTicker(ctx, *symbol)
	if err != nil {
		log.WithError(err).WithFields(logger.Fields{"symbol": *symbol}).Error("failed to fetch ticker")
		os.Exit(1)
	}
	log.WithFields(logger.Fields{
		"symbol": ticker.Symbol,
		"bid":    ticker.Bid,
		"ask":    ticker.Ask,
		"last":   ticker.Last,
	}).Info("ticker fetched")

	book, err := adapter.FetchOrderBook(ctx, *symbol, nil)
	if err != nil {
		log.WithError(err).WithFields(logger.Fields{"symbol": *symbol}).Error("failed to fetch order book")
		os.Exit(1)
	}
	log.WithFields(logger.Fields{
		"symbol": book.Symbol,
		"bids":   len(book.Bids),
		"asks":   len(book.Asks),
	}).Info("order book fetched")

	if creds.Configured() {
		balances, err := adapter.FetchBalance(ctx)
		if err != nil {
			log.WithError(err).Error("failed to fetch balances")
			os.Exit(1)
		}
		log.WithFields(logger.Fields{"currencies": len(balances.Currencies)}).Info("balances fetched")
	}
}
