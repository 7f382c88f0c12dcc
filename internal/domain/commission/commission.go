package commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// Status represents the payout status of a commission
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPaid
}

// ApprovalStatus represents where a commission sits in the approval workflow
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending-approval"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid checks if the approval status is valid
func (s ApprovalStatus) IsValid() bool {
	return s == ApprovalStatusPending || s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// IsDecided returns true once the approval workflow has reached a terminal state
func (s ApprovalStatus) IsDecided() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

// PayoutTrigger is the policy key determining a commission's due date
type PayoutTrigger string

const (
	TriggerBooking     PayoutTrigger = "booking"
	TriggerHalfPayment PayoutTrigger = "50-percent"
	TriggerPossession  PayoutTrigger = "possession"
	TriggerFullPayment PayoutTrigger = "full-payment"
)

// IsValid checks if the payout trigger is one of the known policies
func (t PayoutTrigger) IsValid() bool {
	switch t {
	case TriggerBooking, TriggerHalfPayment, TriggerPossession, TriggerFullPayment:
		return true
	}
	return false
}

// Commission represents money owed to an agent for one sale. Created at sale
// time, mutated by approve/reject/override, never deleted.
type Commission struct {
	shared.BaseAggregateRoot
	AgentID        uuid.UUID        `json:"agent_id"`
	PropertyID     uuid.UUID        `json:"property_id"`
	DealID         uuid.UUID        `json:"deal_id"`
	Amount         decimal.Decimal  `json:"amount"`
	Rate           decimal.Decimal  `json:"rate"`
	Status         Status           `json:"status"`
	PayoutTrigger  PayoutTrigger    `json:"payout_trigger"`
	ApprovalStatus ApprovalStatus   `json:"approval_status"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
	IsSplit        bool             `json:"is_split"`
	TotalAmount    *decimal.Decimal `json:"total_amount,omitempty"`
	OverrideAmount *decimal.Decimal `json:"override_amount,omitempty"`
	OverrideReason string           `json:"override_reason,omitempty"`
	OverriddenBy   string           `json:"overridden_by,omitempty"`
	OverriddenAt   *time.Time       `json:"overridden_at,omitempty"`
	IsOverdue      bool             `json:"is_overdue"`
	ApprovedBy     string           `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time       `json:"approved_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	PaidAt         *time.Time       `json:"paid_at,omitempty"`
}

// Approve moves the commission from pending-approval to approved.
// Re-deciding an already-decided commission is an error.
func (c *Commission) Approve(approvedBy string) error {
	if c.ApprovalStatus.IsDecided() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Commission is already %s", c.ApprovalStatus))
	}
	if approvedBy == "" {
		return shared.NewDomainError("INVALID_APPROVER", "Approver is required")
	}

	now := time.Now()
	c.ApprovalStatus = ApprovalStatusApproved
	c.ApprovedBy = approvedBy
	c.ApprovedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionApprovedEvent(c))

	return nil
}

// Reject moves the commission from pending-approval to rejected
func (c *Commission) Reject(reason string) error {
	if c.ApprovalStatus.IsDecided() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Commission is already %s", c.ApprovalStatus))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}

	now := time.Now()
	c.ApprovalStatus = ApprovalStatusRejected
	c.RejectionReason = reason
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionRejectedEvent(c))

	return nil
}

// Override replaces the live amount with an audited override. Subsequent reads
// see the overridden value in Amount; the override fields exist for audit only.
func (c *Commission) Override(amount valueobject.Money, reason, overriddenBy string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Override reason is required")
	}
	if overriddenBy == "" {
		return shared.NewDomainError("INVALID_ACTOR", "Overriding actor is required")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Override amount must be positive")
	}

	now := time.Now()
	overrideAmount := amount.Amount()
	previous := c.Amount
	c.Amount = overrideAmount
	c.OverrideAmount = &overrideAmount
	c.OverrideReason = reason
	c.OverriddenBy = overriddenBy
	c.OverriddenAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewCommissionOverriddenEvent(c, previous))

	return nil
}

// MarkPaid records the payout of an approved commission
func (c *Commission) MarkPaid() error {
	if c.Status == StatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Commission is already paid")
	}
	if c.ApprovalStatus != ApprovalStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only approved commissions can be paid")
	}

	now := time.Now()
	c.Status = StatusPaid
	c.PaidAt = &now
	c.IsOverdue = false
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// RefreshOverdue updates the overdue flag against the given time and reports
// whether the commission newly became overdue
func (c *Commission) RefreshOverdue(now time.Time) bool {
	if c.Status != StatusPending || c.DueDate == nil {
		return false
	}
	overdue := now.After(*c.DueDate)
	transitioned := overdue && !c.IsOverdue
	c.IsOverdue = overdue
	return transitioned
}

// GetAmountMoney returns the commission amount as Money
func (c *Commission) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyAED(c.Amount)
}
