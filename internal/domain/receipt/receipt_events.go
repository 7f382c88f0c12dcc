package receipt

import (
	"github.com/google/uuid"

	"github.com/dealdesk/backend/internal/domain/shared"
)

// ReceiptIssuedEvent is raised when receipt metadata is generated or reprinted
type ReceiptIssuedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber string    `json:"receipt_number"`
	PaymentID     uuid.UUID `json:"payment_id"`
	DealID        uuid.UUID `json:"deal_id"`
	ReceiptVersion int      `json:"receipt_version"`
	GeneratedBy   string    `json:"generated_by"`
}

// EventType returns the event type name
func (e *ReceiptIssuedEvent) EventType() string {
	return "ReceiptIssued"
}

// NewReceiptIssuedEvent creates a new ReceiptIssuedEvent
func NewReceiptIssuedEvent(m *Metadata) *ReceiptIssuedEvent {
	return &ReceiptIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceiptIssued", "Receipt", m.PaymentID),
		ReceiptNumber:   m.ReceiptNumber,
		PaymentID:       m.PaymentID,
		DealID:          m.DealID,
		ReceiptVersion:  m.Version,
		GeneratedBy:     m.GeneratedBy,
	}
}
