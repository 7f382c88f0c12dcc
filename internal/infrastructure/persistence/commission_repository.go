package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/commission"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/infrastructure/kvstore"
)

// KVCommissionRepository implements commission.Repository over the kvstore
type KVCommissionRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewKVCommissionRepository creates a new KVCommissionRepository
func NewKVCommissionRepository(store kvstore.Store, logger *zap.Logger) *KVCommissionRepository {
	return &KVCommissionRepository{store: store, logger: logger}
}

func (r *KVCommissionRepository) readAll(ctx context.Context) []commission.Commission {
	data, err := r.store.Read(ctx, kvstore.KeyCommissions)
	if err != nil {
		r.logger.Warn("failed to read commissions collection, treating as empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var commissions []commission.Commission
	if err := json.Unmarshal(data, &commissions); err != nil {
		r.logger.Warn("failed to decode commissions collection, treating as empty", zap.Error(err))
		return nil
	}
	return commissions
}

func (r *KVCommissionRepository) writeAll(ctx context.Context, commissions []commission.Commission) error {
	data, err := json.Marshal(commissions)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, kvstore.KeyCommissions, data)
}

// FindByID finds a commission by ID
func (r *KVCommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	for _, c := range r.readAll(ctx) {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByDeal finds every commission created for a deal
func (r *KVCommissionRepository) FindByDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range r.readAll(ctx) {
		if c.DealID == dealID {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindByAgent finds every commission owed to an agent
func (r *KVCommissionRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range r.readAll(ctx) {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out, nil
}

// FindPendingWithDueDate finds pending commissions carrying a due date
func (r *KVCommissionRepository) FindPendingWithDueDate(ctx context.Context) ([]commission.Commission, error) {
	var out []commission.Commission
	for _, c := range r.readAll(ctx) {
		if c.Status == commission.StatusPending && c.DueDate != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// Save creates or updates a commission
func (r *KVCommissionRepository) Save(ctx context.Context, c *commission.Commission) error {
	return r.SaveAll(ctx, []*commission.Commission{c})
}

// SaveAll creates or updates several commissions in one collection write
func (r *KVCommissionRepository) SaveAll(ctx context.Context, toSave []*commission.Commission) error {
	commissions := r.readAll(ctx)
	for _, c := range toSave {
		replaced := false
		for i := range commissions {
			if commissions[i].ID == c.ID {
				commissions[i] = *c
				replaced = true
				break
			}
		}
		if !replaced {
			commissions = append(commissions, *c)
		}
	}
	return r.writeAll(ctx, commissions)
}

// Ensure KVCommissionRepository implements commission.Repository
var _ commission.Repository = (*KVCommissionRepository)(nil)
