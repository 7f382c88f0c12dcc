package deal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
)

// DealCreatedEvent is raised when a new deal is created
type DealCreatedEvent struct {
	shared.BaseDomainEvent
	DealID      uuid.UUID       `json:"deal_id"`
	DealNumber  string          `json:"deal_number"`
	PropertyID  uuid.UUID       `json:"property_id"`
	AgreedPrice decimal.Decimal `json:"agreed_price"`
}

// EventType returns the event type name
func (e *DealCreatedEvent) EventType() string {
	return "DealCreated"
}

// NewDealCreatedEvent creates a new DealCreatedEvent
func NewDealCreatedEvent(d *Deal) *DealCreatedEvent {
	return &DealCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DealCreated", "Deal", d.ID),
		DealID:          d.ID,
		DealNumber:      d.DealNumber,
		PropertyID:      d.PropertyID,
		AgreedPrice:     d.Financial.AgreedPrice,
	}
}

// DealPaymentRecordedEvent is raised when money is recorded against a payment
type DealPaymentRecordedEvent struct {
	shared.BaseDomainEvent
	DealID         uuid.UUID       `json:"deal_id"`
	DealNumber     string          `json:"deal_number"`
	PaymentID      uuid.UUID       `json:"payment_id"`
	PaymentType    PaymentType     `json:"payment_type"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Balance        decimal.Decimal `json:"balance_remaining"`
}

// EventType returns the event type name
func (e *DealPaymentRecordedEvent) EventType() string {
	return "DealPaymentRecorded"
}

// NewDealPaymentRecordedEvent creates a new DealPaymentRecordedEvent
func NewDealPaymentRecordedEvent(d *Deal, p *DealPayment, received decimal.Decimal) *DealPaymentRecordedEvent {
	return &DealPaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DealPaymentRecorded", "Deal", d.ID),
		DealID:          d.ID,
		DealNumber:      d.DealNumber,
		PaymentID:       p.ID,
		PaymentType:     p.Type,
		AmountReceived:  received,
		TotalPaid:       d.Financial.TotalPaid,
		Balance:         d.Financial.BalanceRemaining,
	}
}

// DealStageAdvancedEvent is raised when a deal moves to the next stage
type DealStageAdvancedEvent struct {
	shared.BaseDomainEvent
	DealID     uuid.UUID `json:"deal_id"`
	DealNumber string    `json:"deal_number"`
	FromStage  Stage     `json:"from_stage"`
	ToStage    Stage     `json:"to_stage"`
}

// EventType returns the event type name
func (e *DealStageAdvancedEvent) EventType() string {
	return "DealStageAdvanced"
}

// NewDealStageAdvancedEvent creates a new DealStageAdvancedEvent
func NewDealStageAdvancedEvent(d *Deal, from, to Stage) *DealStageAdvancedEvent {
	return &DealStageAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DealStageAdvanced", "Deal", d.ID),
		DealID:          d.ID,
		DealNumber:      d.DealNumber,
		FromStage:       from,
		ToStage:         to,
	}
}

// DealCompletedEvent is raised when a deal reaches the completed status
type DealCompletedEvent struct {
	shared.BaseDomainEvent
	DealID     uuid.UUID       `json:"deal_id"`
	DealNumber string          `json:"deal_number"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
}

// EventType returns the event type name
func (e *DealCompletedEvent) EventType() string {
	return "DealCompleted"
}

// NewDealCompletedEvent creates a new DealCompletedEvent
func NewDealCompletedEvent(d *Deal) *DealCompletedEvent {
	return &DealCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DealCompleted", "Deal", d.ID),
		DealID:          d.ID,
		DealNumber:      d.DealNumber,
		TotalPaid:       d.Financial.TotalPaid,
	}
}

// DealCancelledEvent is raised when a deal is cancelled
type DealCancelledEvent struct {
	shared.BaseDomainEvent
	DealID     uuid.UUID `json:"deal_id"`
	DealNumber string    `json:"deal_number"`
	Stage      Stage     `json:"stage"`
	Reason     string    `json:"reason"`
}

// EventType returns the event type name
func (e *DealCancelledEvent) EventType() string {
	return "DealCancelled"
}

// NewDealCancelledEvent creates a new DealCancelledEvent
func NewDealCancelledEvent(d *Deal, reason string) *DealCancelledEvent {
	return &DealCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("DealCancelled", "Deal", d.ID),
		DealID:          d.ID,
		DealNumber:      d.DealNumber,
		Stage:           d.Lifecycle.Stage,
		Reason:          reason,
	}
}
