package persistence

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/receipt"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/infrastructure/kvstore"
)

// KVReceiptRepository implements receipt.Repository over the kvstore.
// The collection holds exactly one record per payment ID.
type KVReceiptRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewKVReceiptRepository creates a new KVReceiptRepository
func NewKVReceiptRepository(store kvstore.Store, logger *zap.Logger) *KVReceiptRepository {
	return &KVReceiptRepository{store: store, logger: logger}
}

func (r *KVReceiptRepository) readAll(ctx context.Context) []receipt.Metadata {
	data, err := r.store.Read(ctx, kvstore.KeyReceiptsMetadata)
	if err != nil {
		r.logger.Warn("failed to read receipts collection, treating as empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var records []receipt.Metadata
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("failed to decode receipts collection, treating as empty", zap.Error(err))
		return nil
	}
	return records
}

func (r *KVReceiptRepository) writeAll(ctx context.Context, records []receipt.Metadata) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.store.Write(ctx, kvstore.KeyReceiptsMetadata, data)
}

// FindByPaymentID finds the metadata record for a payment
func (r *KVReceiptRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) (*receipt.Metadata, error) {
	for _, m := range r.readAll(ctx) {
		if m.PaymentID == paymentID {
			found := m
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByDeal finds every receipt issued for a deal
func (r *KVReceiptRepository) FindByDeal(ctx context.Context, dealID uuid.UUID) ([]receipt.Metadata, error) {
	var out []receipt.Metadata
	for _, m := range r.readAll(ctx) {
		if m.DealID == dealID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Save upserts the metadata record for its payment
func (r *KVReceiptRepository) Save(ctx context.Context, m *receipt.Metadata) error {
	records := r.readAll(ctx)
	replaced := false
	for i := range records {
		if records[i].PaymentID == m.PaymentID {
			records[i] = *m
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, *m)
	}
	return r.writeAll(ctx, records)
}

// Ensure KVReceiptRepository implements receipt.Repository
var _ receipt.Repository = (*KVReceiptRepository)(nil)

// KVCounterStore implements receipt.CounterStore on the kvstore's atomic
// counters, one independent counter per calendar year
type KVCounterStore struct {
	store kvstore.Store
}

// NewKVCounterStore creates a new KVCounterStore
func NewKVCounterStore(store kvstore.Store) *KVCounterStore {
	return &KVCounterStore{store: store}
}

// Next increments and returns the counter for the given calendar year
func (s *KVCounterStore) Next(ctx context.Context, year int) (int64, error) {
	return s.store.Increment(ctx, kvstore.ReceiptCounterKeyPrefix+strconv.Itoa(year))
}

// Ensure KVCounterStore implements receipt.CounterStore
var _ receipt.CounterStore = (*KVCounterStore)(nil)
