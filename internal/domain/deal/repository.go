package deal

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for deal persistence
type Repository interface {
	// FindByID finds a deal by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Deal, error)

	// FindByNumber finds a deal by its human-readable number
	FindByNumber(ctx context.Context, dealNumber string) (*Deal, error)

	// FindAll returns every stored deal
	FindAll(ctx context.Context) ([]Deal, error)

	// Save creates or updates a deal
	Save(ctx context.Context, d *Deal) error
}
