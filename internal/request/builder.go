// Package request assembles HTTP request descriptors for the EXMO v1
// API. It performs no network I/O; the transport executes what the
// builder produces.
package request

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"exmoflow/config"
	"exmoflow/internal/signer"
)

// ErrCredentialsMissing is returned when a private endpoint is called
// without a configured API key and secret. It fails before any
// network I/O.
var ErrCredentialsMissing = errors.New("api key and secret required for private endpoint")

// Request describes one HTTP call to the exchange.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Builder constructs public and private request descriptors.
type Builder struct {
	baseURL    string
	apiVersion string
	creds      config.Credentials
	nonces     *signer.NonceSource
}

func NewBuilder(cfg config.ExchangeConfig, creds config.Credentials) *Builder {
	return &Builder{
		baseURL:    cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		creds:      creds,
		nonces:     signer.NewNonceSource(),
	}
}

func (b *Builder) endpoint(path string) string {
	return b.baseURL + "/" + b.apiVersion + "/" + path
}

// Public builds an unsigned GET request. Parameters, when present, are
// appended as a URL-encoded query string.
func (b *Builder) Public(path string, params url.Values) Request {
	u := b.endpoint(path)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return Request{
		Method:  http.MethodGet,
		URL:     u,
		Headers: map[string]string{},
	}
}

// Private builds a signed POST request. All parameters plus a fresh
// nonce are serialized as a URL-encoded form body; the signature is
// computed over that exact body and transmitted via the Key and Sign
// headers.
func (b *Builder) Private(path string, params url.Values) (Request, error) {
	if !b.creds.Configured() {
		return Request{}, ErrCredentialsMissing
	}

	form := url.Values{}
	for key, values := range params {
		for _, v := range values {
			form.Add(key, v)
		}
	}
	form.Set("nonce", strconv.FormatInt(b.nonces.Next(), 10))

	body := form.Encode()

	return Request{
		Method: http.MethodPost,
		URL:    b.endpoint(path),
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
			"Key":          b.creds.APIKey,
			"Sign":         signer.Sign(body, b.creds.APISecret),
		},
		Body: body,
	}, nil
}
