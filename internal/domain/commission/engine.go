package commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// Due-date offsets in days per payout trigger
const (
	dueDaysBooking     = 7
	dueDaysHalfPayment = 14
	dueDaysPossession  = 30
	dueDaysFullPayment = 7
	dueDaysDefault     = 30
)

// AgentSplit is one agent's percentage share of a sale commission
type AgentSplit struct {
	AgentID    uuid.UUID       `json:"agent_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateSplitsInput carries everything needed to create split commissions for
// one sale. DealTotalPaid comes from the payment ledger and is used only to
// flag anomalies.
type CreateSplitsInput struct {
	PropertyID    uuid.UUID
	DealID        uuid.UUID
	TotalAmount   valueobject.Money
	Splits        []AgentSplit
	PayoutTrigger PayoutTrigger
	DealTotalPaid decimal.Decimal
}

// CreateResult holds the commissions produced for one sale plus any advisory
// warnings raised during creation
type CreateResult struct {
	Commissions []*Commission
	Warnings    []string
}

// Engine computes commission records from sale amounts and agent splits, and
// runs the overdue sweep
type Engine struct {
	dueDays map[PayoutTrigger]int
}

// EngineOption is a functional option for configuring the Engine
type EngineOption func(*Engine)

// WithDueDays overrides the due-date offset for a payout trigger
func WithDueDays(trigger PayoutTrigger, days int) EngineOption {
	return func(e *Engine) {
		e.dueDays[trigger] = days
	}
}

// NewEngine creates a commission engine with the default payout policy
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		dueDays: map[PayoutTrigger]int{
			TriggerBooking:     dueDaysBooking,
			TriggerHalfPayment: dueDaysHalfPayment,
			TriggerPossession:  dueDaysPossession,
			TriggerFullPayment: dueDaysFullPayment,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DueDateFor derives a commission due date from the payout trigger and the
// creation timestamp. Unknown triggers fall back to the default offset.
func (e *Engine) DueDateFor(trigger PayoutTrigger, createdAt time.Time) time.Time {
	days, ok := e.dueDays[trigger]
	if !ok {
		days = dueDaysDefault
	}
	return createdAt.AddDate(0, 0, days)
}

// CreateWithSplits produces one commission per split. Each commission's amount
// is totalAmount * percentage / 100. Split percentages are deliberately not
// required to sum to 100; a deviating sum is reported as a warning so the
// caller can surface it without being blocked.
func (e *Engine) CreateWithSplits(input CreateSplitsInput) (*CreateResult, error) {
	if input.PropertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if input.DealID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DEAL", "Deal ID cannot be empty")
	}
	if !input.TotalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total commission amount must be positive")
	}
	if len(input.Splits) == 0 {
		return nil, shared.NewDomainError("INVALID_SPLITS", "At least one agent split is required")
	}

	result := &CreateResult{}

	percentageSum := decimal.Zero
	for _, split := range input.Splits {
		if split.AgentID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_AGENT", "Agent ID cannot be empty in a split")
		}
		if !split.Percentage.IsPositive() {
			return nil, shared.NewDomainError("INVALID_PERCENTAGE", "Split percentage must be positive")
		}
		percentageSum = percentageSum.Add(split.Percentage)
	}
	if !percentageSum.Equal(decimal.NewFromInt(100)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("split percentages sum to %s, not 100", percentageSum.String()))
	}
	if input.DealTotalPaid.LessThanOrEqual(decimal.Zero) {
		result.Warnings = append(result.Warnings,
			"commission requested before any payment was recorded on the deal")
	}

	now := time.Now()
	dueDate := e.DueDateFor(input.PayoutTrigger, now)
	total := input.TotalAmount.Amount()

	for _, split := range input.Splits {
		totalAmount := total
		c := &Commission{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			AgentID:           split.AgentID,
			PropertyID:        input.PropertyID,
			DealID:            input.DealID,
			Amount:            input.TotalAmount.CalculatePercentage(split.Percentage).Amount(),
			Rate:              split.Percentage,
			Status:            StatusPending,
			PayoutTrigger:     input.PayoutTrigger,
			ApprovalStatus:    ApprovalStatusPending,
			DueDate:           &dueDate,
			IsSplit:           true,
			TotalAmount:       &totalAmount,
		}
		c.AddDomainEvent(NewCommissionCreatedEvent(c))
		result.Commissions = append(result.Commissions, c)
	}

	return result, nil
}

// SweepOverdue refreshes the overdue flag on every pending commission with a
// due date and returns how many newly became overdue. The count is
// transition-only, not a total of everything overdue.
func (e *Engine) SweepOverdue(commissions []*Commission, now time.Time) int {
	transitions := 0
	for _, c := range commissions {
		if c.RefreshOverdue(now) {
			transitions++
		}
	}
	return transitions
}
