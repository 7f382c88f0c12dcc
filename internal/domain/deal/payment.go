package deal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// PaymentType classifies a scheduled payment within a deal
type PaymentType string

const (
	PaymentTypeToken        PaymentType = "token"
	PaymentTypeDownPayment  PaymentType = "down-payment"
	PaymentTypeInstallment1 PaymentType = "installment-1"
	PaymentTypeInstallment2 PaymentType = "installment-2"
	PaymentTypeInstallment3 PaymentType = "installment-3"
	PaymentTypeHandover     PaymentType = "handover"
	PaymentTypeOther        PaymentType = "other"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeToken, PaymentTypeDownPayment, PaymentTypeInstallment1,
		PaymentTypeInstallment2, PaymentTypeInstallment3, PaymentTypeHandover, PaymentTypeOther:
		return true
	}
	return false
}

// PaymentStatus represents the status of a single deal payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusCompleted
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// DealPayment represents a scheduled or recorded payment within a deal.
// Payments are never deleted, only status-transitioned.
type DealPayment struct {
	ID              uuid.UUID       `json:"id"`
	Type            PaymentType     `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Status          PaymentStatus   `json:"status"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
	Method          PaymentMethod   `json:"payment_method,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	RecordedBy      string          `json:"recorded_by,omitempty"`
}

// NewDealPayment creates a pending payment for the schedule
func NewDealPayment(paymentType PaymentType, amount valueobject.Money, dueDate *time.Time) DealPayment {
	return DealPayment{
		ID:         uuid.New(),
		Type:       paymentType,
		Amount:     amount.Amount(),
		PaidAmount: decimal.Zero,
		Status:     PaymentStatusPending,
		DueDate:    dueDate,
	}
}

// IsCompleted returns true if the payment has been fully paid
func (p *DealPayment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// IsPending returns true if nothing has been paid against this payment yet
func (p *DealPayment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// IsOverdue returns true if the payment is unpaid past its due date
func (p *DealPayment) IsOverdue(now time.Time) bool {
	if p.Status == PaymentStatusCompleted || p.DueDate == nil {
		return false
	}
	return now.After(*p.DueDate)
}

// EffectivePaid returns the amount counted toward the deal total: the full
// scheduled amount once completed, otherwise whatever was partially paid
func (p *DealPayment) EffectivePaid() decimal.Decimal {
	if p.Status == PaymentStatusCompleted {
		if p.PaidAmount.GreaterThan(p.Amount) {
			return p.PaidAmount
		}
		return p.Amount
	}
	return p.PaidAmount
}

// GetAmountMoney returns the scheduled amount as Money
func (p *DealPayment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyAED(p.Amount)
}

// GetPaidAmountMoney returns the paid amount as Money
func (p *DealPayment) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyAED(p.PaidAmount)
}
