package commission

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for commission persistence
type Repository interface {
	// FindByID finds a commission by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Commission, error)

	// FindByDeal finds every commission created for a deal
	FindByDeal(ctx context.Context, dealID uuid.UUID) ([]Commission, error)

	// FindByAgent finds every commission owed to an agent
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]Commission, error)

	// FindPendingWithDueDate finds pending commissions carrying a due date,
	// the candidate set for the overdue sweep
	FindPendingWithDueDate(ctx context.Context) ([]Commission, error)

	// Save creates or updates a commission
	Save(ctx context.Context, c *Commission) error

	// SaveAll creates or updates several commissions in one write
	SaveAll(ctx context.Context, commissions []*Commission) error
}
