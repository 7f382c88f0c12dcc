package receipt

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for receipt metadata persistence.
// Records are keyed by payment ID: Save replaces any existing record for the
// same payment rather than appending.
type Repository interface {
	// FindByPaymentID finds the metadata record for a payment
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*Metadata, error)

	// FindByDeal finds every receipt issued for a deal
	FindByDeal(ctx context.Context, dealID uuid.UUID) ([]Metadata, error)

	// Save upserts the metadata record for its payment
	Save(ctx context.Context, m *Metadata) error
}

// CounterStore issues strictly increasing per-year receipt counters.
// Next must be a single atomic increment-and-return; the read/increment/write
// pattern is not safe across concurrent callers.
type CounterStore interface {
	// Next increments and returns the counter for the given calendar year
	Next(ctx context.Context, year int) (int64, error)
}
