// Package kvstore implements the persistent record store consumed by the
// repositories: a synchronous key/value store where each key holds one whole
// collection document, read in full, mutated in memory and written back in
// full. Writes follow last-write-wins semantics; there is no multi-key
// transaction. Counters are the exception: Increment is a single atomic
// operation because the read/increment/write pattern is not safe across
// concurrent callers.
package kvstore

import "context"

// Store is the persistent record store interface
type Store interface {
	// Read returns the raw document stored under key, or nil when absent
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the document stored under key
	Write(ctx context.Context, key string, data []byte) error

	// Increment atomically increments the counter stored under key and
	// returns the new value. A missing counter starts at zero.
	Increment(ctx context.Context, key string) (int64, error)
}

// Collection keys used by the repositories
const (
	KeyDeals            = "deals"
	KeyCommissions      = "commissions"
	KeyReceiptsMetadata = "receipts-metadata"

	// ReceiptCounterKeyPrefix prefixes per-year receipt counter keys
	ReceiptCounterKeyPrefix = "receipt-counter:"
)
