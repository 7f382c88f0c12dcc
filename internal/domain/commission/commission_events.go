package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
)

// CommissionCreatedEvent is raised when a commission record is created
type CommissionCreatedEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID       `json:"commission_id"`
	AgentID      uuid.UUID       `json:"agent_id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	DealID       uuid.UUID       `json:"deal_id"`
	Amount       decimal.Decimal `json:"amount"`
	Rate         decimal.Decimal `json:"rate"`
	IsSplit      bool            `json:"is_split"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

// EventType returns the event type name
func (e *CommissionCreatedEvent) EventType() string {
	return "CommissionCreated"
}

// NewCommissionCreatedEvent creates a new CommissionCreatedEvent
func NewCommissionCreatedEvent(c *Commission) *CommissionCreatedEvent {
	return &CommissionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionCreated", "Commission", c.ID),
		CommissionID:    c.ID,
		AgentID:         c.AgentID,
		PropertyID:      c.PropertyID,
		DealID:          c.DealID,
		Amount:          c.Amount,
		Rate:            c.Rate,
		IsSplit:         c.IsSplit,
		DueDate:         c.DueDate,
	}
}

// CommissionApprovedEvent is raised when a commission is approved
type CommissionApprovedEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID       `json:"commission_id"`
	AgentID      uuid.UUID       `json:"agent_id"`
	Amount       decimal.Decimal `json:"amount"`
	ApprovedBy   string          `json:"approved_by"`
	ApprovedAt   time.Time       `json:"approved_at"`
}

// EventType returns the event type name
func (e *CommissionApprovedEvent) EventType() string {
	return "CommissionApproved"
}

// NewCommissionApprovedEvent creates a new CommissionApprovedEvent
func NewCommissionApprovedEvent(c *Commission) *CommissionApprovedEvent {
	approvedAt := time.Now()
	if c.ApprovedAt != nil {
		approvedAt = *c.ApprovedAt
	}
	return &CommissionApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionApproved", "Commission", c.ID),
		CommissionID:    c.ID,
		AgentID:         c.AgentID,
		Amount:          c.Amount,
		ApprovedBy:      c.ApprovedBy,
		ApprovedAt:      approvedAt,
	}
}

// CommissionRejectedEvent is raised when a commission is rejected
type CommissionRejectedEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID `json:"commission_id"`
	AgentID      uuid.UUID `json:"agent_id"`
	Reason       string    `json:"reason"`
}

// EventType returns the event type name
func (e *CommissionRejectedEvent) EventType() string {
	return "CommissionRejected"
}

// NewCommissionRejectedEvent creates a new CommissionRejectedEvent
func NewCommissionRejectedEvent(c *Commission) *CommissionRejectedEvent {
	return &CommissionRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionRejected", "Commission", c.ID),
		CommissionID:    c.ID,
		AgentID:         c.AgentID,
		Reason:          c.RejectionReason,
	}
}

// CommissionOverriddenEvent is raised when a commission's amount is overridden
type CommissionOverriddenEvent struct {
	shared.BaseDomainEvent
	CommissionID   uuid.UUID       `json:"commission_id"`
	AgentID        uuid.UUID       `json:"agent_id"`
	PreviousAmount decimal.Decimal `json:"previous_amount"`
	NewAmount      decimal.Decimal `json:"new_amount"`
	Reason         string          `json:"reason"`
	OverriddenBy   string          `json:"overridden_by"`
}

// EventType returns the event type name
func (e *CommissionOverriddenEvent) EventType() string {
	return "CommissionOverridden"
}

// NewCommissionOverriddenEvent creates a new CommissionOverriddenEvent
func NewCommissionOverriddenEvent(c *Commission, previousAmount decimal.Decimal) *CommissionOverriddenEvent {
	return &CommissionOverriddenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionOverridden", "Commission", c.ID),
		CommissionID:    c.ID,
		AgentID:         c.AgentID,
		PreviousAmount:  previousAmount,
		NewAmount:       c.Amount,
		Reason:          c.OverrideReason,
		OverriddenBy:    c.OverriddenBy,
	}
}
