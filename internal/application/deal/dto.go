package deal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
)

// CreateDealRequest represents a request to open a new deal
type CreateDealRequest struct {
	DealNumber       string          `json:"deal_number" validate:"required,min=1,max=50"`
	PropertyID       uuid.UUID       `json:"property_id" validate:"required"`
	AgreedPrice      decimal.Decimal `json:"agreed_price" validate:"required"`
	BuyerID          uuid.UUID       `json:"buyer_id" validate:"required"`
	SellerID         uuid.UUID       `json:"seller_id" validate:"required"`
	PrimaryAgentID   uuid.UUID       `json:"primary_agent_id" validate:"required"`
	SecondaryAgentID *uuid.UUID      `json:"secondary_agent_id,omitempty"`
}

// SchedulePaymentRequest represents a request to add a planned payment
type SchedulePaymentRequest struct {
	PaymentType deal.PaymentType `json:"payment_type" validate:"required"`
	Amount      decimal.Decimal  `json:"amount" validate:"required"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
}

// RecordPaymentRequest represents money actually received against a
// scheduled payment
type RecordPaymentRequest struct {
	PaymentID       uuid.UUID          `json:"payment_id" validate:"required"`
	PaidAmount      decimal.Decimal    `json:"paid_amount" validate:"required"`
	Method          deal.PaymentMethod `json:"method" validate:"required"`
	ReferenceNumber string             `json:"reference_number,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	RecordedBy      string             `json:"recorded_by" validate:"required"`
}

// PaymentOutcome carries the validation verdict of a payment recording
// alongside the deal state after any applied mutation. When Validation holds
// errors nothing was mutated.
type PaymentOutcome struct {
	Validation *shared.ValidationResult `json:"validation"`
	Deal       *deal.Deal               `json:"deal,omitempty"`
}

// StageOutcome carries the gate verdict for a stage transition together with
// the deal state after any applied advance
type StageOutcome struct {
	Validation *shared.ValidationResult `json:"validation"`
	Deal       *deal.Deal               `json:"deal,omitempty"`
}

// CompletionOutcome carries the completion verdict together with the deal
// state after any applied completion
type CompletionOutcome struct {
	Validation *shared.ValidationResult `json:"validation"`
	Deal       *deal.Deal               `json:"deal,omitempty"`
}
