package request

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"exmoflow/config"
	"exmoflow/internal/signer"
)

func testExchangeConfig() config.ExchangeConfig {
	return config.ExchangeConfig{
		BaseURL:    "https://api.exmo.com",
		APIVersion: "v1",
	}
}

func TestPublicWithoutParams(t *testing.T) {
	b := NewBuilder(testExchangeConfig(), config.Credentials{})

	req := b.Public("ticker", nil)
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if req.URL != "https://api.exmo.com/v1/ticker" {
		t.Errorf("url = %s", req.URL)
	}
	if req.Body != "" {
		t.Errorf("public request must carry no body")
	}
	if len(req.Headers) != 0 {
		t.Errorf("public request must carry no auth headers: %v", req.Headers)
	}
}

func TestPublicWithParams(t *testing.T) {
	b := NewBuilder(testExchangeConfig(), config.Credentials{})

	params := url.Values{}
	params.Set("pair", "BTC_USD")
	req := b.Public("order_book", params)
	if req.URL != "https://api.exmo.com/v1/order_book?pair=BTC_USD" {
		t.Errorf("url = %s", req.URL)
	}
}

func TestPrivateRequiresCredentials(t *testing.T) {
	b := NewBuilder(testExchangeConfig(), config.Credentials{APIKey: "only-key"})

	if _, err := b.Private("user_info", nil); !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("err = %v, want ErrCredentialsMissing", err)
	}
}

func TestPrivateSignedForm(t *testing.T) {
	creds := config.Credentials{APIKey: "K-1", APISecret: "S-1"}
	b := NewBuilder(testExchangeConfig(), creds)

	params := url.Values{}
	params.Set("pair", "BTC_USD")
	params.Set("quantity", "0.01")

	req, err := b.Private("order_create", params)
	if err != nil {
		t.Fatalf("Private: %v", err)
	}
	if req.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if req.URL != "https://api.exmo.com/v1/order_create" {
		t.Errorf("url = %s", req.URL)
	}
	if req.Headers["Content-Type"] != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %s", req.Headers["Content-Type"])
	}
	if req.Headers["Key"] != "K-1" {
		t.Errorf("key header = %s", req.Headers["Key"])
	}

	form, err := url.ParseQuery(req.Body)
	if err != nil {
		t.Fatalf("body is not a url-encoded form: %v", err)
	}
	if form.Get("pair") != "BTC_USD" || form.Get("quantity") != "0.01" {
		t.Errorf("form params missing: %s", req.Body)
	}
	nonce, err := strconv.ParseInt(form.Get("nonce"), 10, 64)
	if err != nil || nonce <= 0 {
		t.Errorf("nonce missing or invalid: %q", form.Get("nonce"))
	}

	// Signature is computed over the exact body.
	if want := signer.Sign(req.Body, creds.APISecret); req.Headers["Sign"] != want {
		t.Errorf("sign header does not match body signature")
	}
}

func TestPrivateNonceAdvances(t *testing.T) {
	b := NewBuilder(testExchangeConfig(), config.Credentials{APIKey: "K", APISecret: "S"})

	first, err := b.Private("user_info", nil)
	if err != nil {
		t.Fatalf("Private: %v", err)
	}
	second, err := b.Private("user_info", nil)
	if err != nil {
		t.Fatalf("Private: %v", err)
	}

	if first.Body == second.Body {
		t.Fatalf("bodies with distinct nonces must differ: %s", first.Body)
	}
	if first.Headers["Sign"] == second.Headers["Sign"] {
		t.Fatalf("signatures must change when the nonce changes")
	}

	n1, _ := strconv.ParseInt(url.Values(mustParseQuery(t, first.Body)).Get("nonce"), 10, 64)
	n2, _ := strconv.ParseInt(url.Values(mustParseQuery(t, second.Body)).Get("nonce"), 10, 64)
	if n2 <= n1 {
		t.Fatalf("nonce not strictly increasing: %d then %d", n1, n2)
	}
}

func TestPrivateDoesNotMutateCallerParams(t *testing.T) {
	b := NewBuilder(testExchangeConfig(), config.Credentials{APIKey: "K", APISecret: "S"})

	params := url.Values{}
	params.Set("pair", "BTC_USD")
	if _, err := b.Private("order_create", params); err != nil {
		t.Fatalf("Private: %v", err)
	}
	if params.Get("nonce") != "" {
		t.Fatalf("caller params were mutated: %v", params)
	}
	if !strings.Contains(params.Encode(), "pair=BTC_USD") {
		t.Fatalf("caller params lost: %v", params)
	}
}

func mustParseQuery(t *testing.T, body string) url.Values {
	t.Helper()
	form, err := url.ParseQuery(body)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return form
}
