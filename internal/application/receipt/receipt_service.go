package receipt

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/receipt"
	"github.com/dealdesk/backend/internal/domain/shared"
)

// ReceiptService issues receipt numbers and maintains the per-payment
// metadata records behind printable receipts
type ReceiptService struct {
	receiptRepo    receipt.Repository
	counters       receipt.CounterStore
	dealRepo       deal.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// ReceiptServiceOption configures a ReceiptService
type ReceiptServiceOption func(*ReceiptService)

// WithClock overrides the wall clock, used to pin the receipt year in tests
func WithClock(now func() time.Time) ReceiptServiceOption {
	return func(s *ReceiptService) {
		s.now = now
	}
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(receiptRepo receipt.Repository, counters receipt.CounterStore, dealRepo deal.Repository, logger *zap.Logger, opts ...ReceiptServiceOption) *ReceiptService {
	s := &ReceiptService{
		receiptRepo: receiptRepo,
		counters:    counters,
		dealRepo:    dealRepo,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher for downstream integration
func (s *ReceiptService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GenerateReceiptNumber draws the next number from the current year's counter
func (s *ReceiptService) GenerateReceiptNumber(ctx context.Context) (string, error) {
	year := s.now().Year()
	counter, err := s.counters.Next(ctx, year)
	if err != nil {
		return "", err
	}
	return receipt.FormatReceiptNumber(year, counter), nil
}

// AutoGenerate issues a receipt for a completed payment. A payment that
// already has a receipt gets a reprint: the version bumps, the number and
// the stored record's identity stay put.
func (s *ReceiptService) AutoGenerate(ctx context.Context, dealID, paymentID uuid.UUID, generatedBy string) (*receipt.Metadata, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	payment := d.FindPayment(paymentID)
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	if !payment.IsCompleted() {
		return nil, shared.NewDomainError("PAYMENT_NOT_COMPLETED", "Receipts are only issued for completed payments")
	}

	if existing, err := s.receiptRepo.FindByPaymentID(ctx, paymentID); err == nil && existing != nil {
		if err := existing.Reprint(generatedBy); err != nil {
			return nil, err
		}
		if err := s.receiptRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("receipt reprinted",
			zap.String("receipt_number", existing.ReceiptNumber),
			zap.Int("version", existing.Version),
		)
		return existing, nil
	}

	number, err := s.GenerateReceiptNumber(ctx)
	if err != nil {
		return nil, err
	}

	metadata, err := receipt.NewMetadata(number, paymentID, dealID, generatedBy)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, metadata); err != nil {
		return nil, err
	}

	s.publishIssued(ctx, metadata)
	return metadata, nil
}

// Regenerate reprints an existing receipt. Unlike AutoGenerate it refuses to
// create a first version, so a typo'd payment ID cannot mint a new number.
func (s *ReceiptService) Regenerate(ctx context.Context, paymentID uuid.UUID, regeneratedBy string) (*receipt.Metadata, error) {
	existing, err := s.receiptRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := existing.Reprint(regeneratedBy); err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByPayment retrieves the receipt metadata for a payment
func (s *ReceiptService) GetByPayment(ctx context.Context, paymentID uuid.UUID) (*receipt.Metadata, error) {
	return s.receiptRepo.FindByPaymentID(ctx, paymentID)
}

// ListByDeal returns every receipt issued for a deal
func (s *ReceiptService) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]receipt.Metadata, error) {
	return s.receiptRepo.FindByDeal(ctx, dealID)
}

func (s *ReceiptService) publishIssued(ctx context.Context, m *receipt.Metadata) {
	if s.eventPublisher == nil {
		return
	}
	event := receipt.NewReceiptIssuedEvent(m)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish receipt event",
			zap.String("receipt_number", m.ReceiptNumber),
			zap.Error(err),
		)
	}
}
