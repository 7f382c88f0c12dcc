package receipt

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
)

// PaymentRecordedHandler issues a receipt whenever a payment completes.
// Partial payments are skipped; the receipt appears once the payment reaches
// its full scheduled amount.
type PaymentRecordedHandler struct {
	receipts *ReceiptService
	logger   *zap.Logger
}

// NewPaymentRecordedHandler creates a new handler for payment recorded events
func NewPaymentRecordedHandler(receipts *ReceiptService, logger *zap.Logger) *PaymentRecordedHandler {
	return &PaymentRecordedHandler{
		receipts: receipts,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PaymentRecordedHandler) EventTypes() []string {
	return []string{"DealPaymentRecorded"}
}

// Handle issues or reprints the receipt for a completed payment
func (h *PaymentRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*deal.DealPaymentRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected DealPaymentRecorded, got %s", event.EventType())
	}

	metadata, err := h.receipts.AutoGenerate(ctx, recorded.DealID, recorded.PaymentID, "system")
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "PAYMENT_NOT_COMPLETED" {
			h.logger.Debug("payment not yet completed, no receipt issued",
				zap.String("payment_id", recorded.PaymentID.String()),
			)
			return nil
		}
		return err
	}

	h.logger.Info("receipt issued for completed payment",
		zap.String("receipt_number", metadata.ReceiptNumber),
		zap.String("deal_number", recorded.DealNumber),
	)
	return nil
}

var _ shared.EventHandler = (*PaymentRecordedHandler)(nil)
