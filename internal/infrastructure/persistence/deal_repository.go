// Package persistence implements the domain repository interfaces over the
// whole-collection kvstore. Every mutation follows the same pattern: read the
// entire collection, replace or append the record in memory, write the entire
// collection back. Unreadable collections degrade to empty ones; callers treat
// "no data" and "error reading data" identically.
package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/infrastructure/kvstore"
)

// KVDealRepository implements deal.Repository over the kvstore
type KVDealRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewKVDealRepository creates a new KVDealRepository
func NewKVDealRepository(store kvstore.Store, logger *zap.Logger) *KVDealRepository {
	return &KVDealRepository{store: store, logger: logger}
}

func (r *KVDealRepository) readAll(ctx context.Context) []deal.Deal {
	data, err := r.store.Read(ctx, kvstore.KeyDeals)
	if err != nil {
		r.logger.Warn("failed to read deals collection, treating as empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var deals []deal.Deal
	if err := json.Unmarshal(data, &deals); err != nil {
		r.logger.Warn("failed to decode deals collection, treating as empty", zap.Error(err))
		return nil
	}
	return deals
}

func (r *KVDealRepository) writeAll(ctx context.Context, deals []deal.Deal) error {
	data, err := json.Marshal(deals)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, kvstore.KeyDeals, data)
}

// FindByID finds a deal by ID
func (r *KVDealRepository) FindByID(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	for _, d := range r.readAll(ctx) {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByNumber finds a deal by its human-readable number
func (r *KVDealRepository) FindByNumber(ctx context.Context, dealNumber string) (*deal.Deal, error) {
	for _, d := range r.readAll(ctx) {
		if d.DealNumber == dealNumber {
			found := d
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindAll returns every stored deal
func (r *KVDealRepository) FindAll(ctx context.Context) ([]deal.Deal, error) {
	return r.readAll(ctx), nil
}

// Save creates or updates a deal
func (r *KVDealRepository) Save(ctx context.Context, d *deal.Deal) error {
	deals := r.readAll(ctx)
	replaced := false
	for i := range deals {
		if deals[i].ID == d.ID {
			deals[i] = *d
			replaced = true
			break
		}
	}
	if !replaced {
		deals = append(deals, *d)
	}
	return r.writeAll(ctx, deals)
}

// Ensure KVDealRepository implements deal.Repository
var _ deal.Repository = (*KVDealRepository)(nil)
