// Package transport executes request descriptors against the exchange
// over HTTP. It owns pacing and timeouts; callers get the raw response
// body or an error, never a partially consumed response.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"exmoflow/config"
	"exmoflow/internal/request"
	"exmoflow/logger"
)

// Client is a rate-limited HTTP executor for builder-produced requests.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	log     *logger.Log
}

func NewClient(cfg config.ExchangeConfig) *Client {
	rps := cfg.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	burst := cfg.RateLimit.BurstSize
	if burst <= 0 {
		burst = 1
	}

	httpClient := resty.New()
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout.Std())
	}

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     logger.GetLogger(),
	}
}

// Do executes one request and returns the raw response body. HTTP and
// network failures are surfaced unchanged apart from wrapping; no
// retries are attempted.
func (c *Client) Do(ctx context.Context, req request.Request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	requestID := uuid.NewString()
	log := c.log.WithComponent("transport").WithFields(logger.Fields{
		"request_id": requestID,
		"method":     req.Method,
		"url":        req.URL,
	})

	r := c.http.R().SetContext(ctx).SetHeaders(req.Headers)
	if req.Body != "" {
		r.SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		log.WithError(err).Error("request failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}

	log.WithFields(logger.Fields{
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s %s: http status %d: %s", req.Method, req.URL, resp.StatusCode(), resp.Body())
	}

	return resp.Body(), nil
}
