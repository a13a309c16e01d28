// Package signer computes the message authentication code EXMO
// requires on private API calls.
package signer

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Sign returns the hex-encoded SHA-512 HMAC of body under secret.
// Deterministic for a fixed (body, secret) pair.
func Sign(body, secret string) string {
	key := []byte(secret)
	h := hmac.New(sha512.New, key)
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}
