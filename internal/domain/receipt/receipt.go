package receipt

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dealdesk/backend/internal/domain/shared"
)

// Metadata is the uniqueness and audit record backing a printable payment
// receipt, decoupled from the receipt's rendered presentation. Exactly one
// record exists per payment; reprints bump the version but never change the
// receipt number.
type Metadata struct {
	ReceiptNumber string    `json:"receipt_number"`
	PaymentID     uuid.UUID `json:"payment_id"`
	DealID        uuid.UUID `json:"deal_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	GeneratedBy   string    `json:"generated_by"`
	Version       int       `json:"version"`
}

// NewMetadata creates first-version receipt metadata for a payment
func NewMetadata(receiptNumber string, paymentID, dealID uuid.UUID, generatedBy string) (*Metadata, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if paymentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment ID cannot be empty")
	}
	if dealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	if generatedBy == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Generating actor is required")
	}

	return &Metadata{
		ReceiptNumber: receiptNumber,
		PaymentID:     paymentID,
		DealID:        dealID,
		GeneratedAt:   time.Now(),
		GeneratedBy:   generatedBy,
		Version:       1,
	}, nil
}

// Reprint increments the version and refreshes the audit fields. The receipt
// number stays the canonical identifier across any number of reprints.
func (m *Metadata) Reprint(regeneratedBy string) error {
	if regeneratedBy == "" {
		return shared.NewDomainError("INVALID_ACTOR", "Regenerating actor is required")
	}
	m.Version++
	m.GeneratedAt = time.Now()
	m.GeneratedBy = regeneratedBy
	return nil
}

// FormatReceiptNumber renders the canonical receipt number for a year and
// counter value: RCP-<year>-<counter padded to at least 3 digits>
func FormatReceiptNumber(year int, counter int64) string {
	return fmt.Sprintf("RCP-%d-%03d", year, counter)
}
