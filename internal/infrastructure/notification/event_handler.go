package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/commission"
	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/receipt"
	"github.com/dealdesk/backend/internal/domain/shared"
)

// EventNotificationHandler turns domain events into rendered notifications.
// It subscribes to the lifecycle events that carry user-facing meaning and
// forwards them to the configured sink; delivery failures are logged, never
// propagated back to the publishing operation.
type EventNotificationHandler struct {
	notifier Notifier
	logger   *zap.Logger
}

// NewEventNotificationHandler creates a new handler over the given sink
func NewEventNotificationHandler(notifier Notifier, logger *zap.Logger) *EventNotificationHandler {
	return &EventNotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *EventNotificationHandler) EventTypes() []string {
	return []string{
		"DealPaymentRecorded",
		"DealStageAdvanced",
		"DealCompleted",
		"DealCancelled",
		"CommissionCreated",
		"ReceiptIssued",
	}
}

// Handle maps the event onto a template and sends it through the sink
func (h *EventNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	id, fields := h.translate(event)
	if id == "" {
		return nil
	}

	if err := h.notifier.Notify(ctx, id, fields); err != nil {
		h.logger.Warn("notification delivery failed",
			zap.String("template", string(id)),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
	return nil
}

func (h *EventNotificationHandler) translate(event shared.DomainEvent) (TemplateID, Fields) {
	switch e := event.(type) {
	case *deal.DealPaymentRecordedEvent:
		return TemplatePaymentReceived, Fields{
			"amount":       e.AmountReceived.String(),
			"deal_number":  e.DealNumber,
			"payment_type": string(e.PaymentType),
		}
	case *deal.DealStageAdvancedEvent:
		return TemplateStageAdvanced, Fields{
			"deal_number": e.DealNumber,
			"from_stage":  string(e.FromStage),
			"to_stage":    string(e.ToStage),
		}
	case *deal.DealCompletedEvent:
		return TemplateDealCompleted, Fields{
			"deal_number": e.DealNumber,
			"total_paid":  e.TotalPaid.String(),
		}
	case *deal.DealCancelledEvent:
		return TemplateDealCancelled, Fields{
			"deal_number": e.DealNumber,
			"reason":      e.Reason,
		}
	case *commission.CommissionCreatedEvent:
		dueDate := ""
		if e.DueDate != nil {
			dueDate = e.DueDate.Format("2006-01-02")
		}
		return TemplateCommissionDue, Fields{
			"amount":   e.Amount.String(),
			"agent_id": e.AgentID.String(),
			"due_date": dueDate,
		}
	case *receipt.ReceiptIssuedEvent:
		return TemplateReceiptGenerated, Fields{
			"receipt_number": e.ReceiptNumber,
			"deal_number":    e.DealID.String(),
		}
	}
	return "", nil
}

var _ shared.EventHandler = (*EventNotificationHandler)(nil)
