package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"exmoflow/config"
	"exmoflow/internal/request"
)

func testConfig(baseURL string) config.ExchangeConfig {
	return config.ExchangeConfig{
		BaseURL:    baseURL,
		APIVersion: "v1",
		Timeout:    config.Duration(2 * time.Second),
		RateLimit:  config.RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10},
	}
}

func TestDoGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	body, err := c.Do(context.Background(), request.Request{Method: http.MethodGet, URL: server.URL + "/v1/ticker"})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %s", body)
	}
}

func TestDoPostForwardsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Key") != "K-1" {
			t.Errorf("key header = %q", r.Header.Get("Key"))
		}
		if r.Header.Get("Sign") == "" {
			t.Errorf("sign header missing")
		}
		buf, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(buf), "nonce=") {
			t.Errorf("form body missing nonce: %s", buf)
		}
		w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	req := request.Request{
		Method: http.MethodPost,
		URL:    server.URL + "/v1/user_info",
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Key":          "K-1",
			"Sign":         "abc",
		},
		Body: "nonce=1600000000000",
	}
	if _, err := c.Do(context.Background(), req); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestDoHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	if _, err := c.Do(context.Background(), request.Request{Method: http.MethodGet, URL: server.URL}); err == nil {
		t.Fatalf("expected error for HTTP 503")
	} else if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestDoContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Do(ctx, request.Request{Method: http.MethodGet, URL: server.URL}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
