package commission

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/commission"
)

// SplitInput is one agent's share of a commission split
type SplitInput struct {
	AgentID    uuid.UUID       `json:"agent_id" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" validate:"required"`
}

// CreateSplitsRequest represents a request to create commissions for a sale
type CreateSplitsRequest struct {
	PropertyID    uuid.UUID                `json:"property_id" validate:"required"`
	DealID        uuid.UUID                `json:"deal_id" validate:"required"`
	TotalAmount   decimal.Decimal          `json:"total_amount" validate:"required"`
	Splits        []SplitInput             `json:"splits" validate:"required,min=1,dive"`
	PayoutTrigger commission.PayoutTrigger `json:"payout_trigger" validate:"required"`
}

// CreateSplitsResponse carries the created commissions plus any advisory
// warnings raised during creation
type CreateSplitsResponse struct {
	Commissions []*commission.Commission `json:"commissions"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// OverrideRequest represents an audited manual amount correction
type OverrideRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Reason       string          `json:"reason" validate:"required"`
	OverriddenBy string          `json:"overridden_by" validate:"required"`
}
