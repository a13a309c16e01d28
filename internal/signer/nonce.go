package signer

import (
	"sync"
	"time"
)

// NonceSource produces the strictly increasing integer every private
// request must carry. Values are seeded from the wall clock in
// milliseconds and advance monotonically even when calls land within
// the same millisecond.
type NonceSource struct {
	mu   sync.Mutex
	last int64
}

func NewNonceSource() *NonceSource {
	return &NonceSource{last: time.Now().UnixMilli() - 1}
}

// Next returns the next nonce.
func (n *NonceSource) Next() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= n.last {
		now = n.last + 1
	}
	n.last = now
	return now
}

// Reset re-seeds the source from the wall clock.
func (n *NonceSource) Reset() {
	n.mu.Lock()
	n.last = time.Now().UnixMilli() - 1
	n.mu.Unlock()
}
