package deal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// PaymentLedger validates individual payment recordings against a deal's
// financial snapshot and gates deal completion. It holds no state and never
// mutates the deal.
type PaymentLedger struct{}

// NewPaymentLedger creates a new payment ledger
func NewPaymentLedger() *PaymentLedger {
	return &PaymentLedger{}
}

// ValidatePaymentRecording checks whether the given amount may be recorded
// against the payment. Overpayment is always a warning, never an error;
// downstream displays assume a negative balance is representable.
func (l *PaymentLedger) ValidatePaymentRecording(p *DealPayment, d *Deal, paidAmount valueobject.Money) *shared.ValidationResult {
	result := shared.NewValidationResult()

	if p.IsCompleted() {
		result.AddError(fmt.Sprintf("payment %s is already completed and cannot be recorded again", p.Type))
		return result
	}
	if !paidAmount.IsPositive() {
		result.AddError("paid amount must be positive")
		return result
	}

	newPaid := p.PaidAmount.Add(paidAmount.Amount())
	if newPaid.GreaterThan(p.Amount) {
		result.AddError(fmt.Sprintf("paid amount %s exceeds the scheduled amount %s for payment %s",
			newPaid.StringFixed(2), p.Amount.StringFixed(2), p.Type))
	}

	projectedTotal := d.Financial.TotalPaid.Add(paidAmount.Amount())
	if projectedTotal.GreaterThan(d.Financial.AgreedPrice) {
		result.AddWarning(fmt.Sprintf("recording %s would bring total paid to %s, above the agreed price %s",
			paidAmount.Amount().StringFixed(2), projectedTotal.StringFixed(2), d.Financial.AgreedPrice.StringFixed(2)))
	}

	if p.Status == PaymentStatusPending && p.IsOverdue(time.Now()) {
		result.AddWarning(fmt.Sprintf("payment %s was due on %s and is overdue", p.Type, p.DueDate.Format("2006-01-02")))
	}

	return result
}

// ValidateDealCompletion gates marking a deal fully completed
func (l *PaymentLedger) ValidateDealCompletion(d *Deal) *shared.ValidationResult {
	result := shared.NewValidationResult()

	if !d.Lifecycle.Stage.IsFinal() {
		result.AddError(fmt.Sprintf("deal is at stage %s; completion requires %s", d.Lifecycle.Stage, StageFinalHandover))
	}

	if pending := d.PendingPaymentCount(); pending > 0 {
		result.AddError(fmt.Sprintf("%d payment(s) still pending", pending))
	}

	if d.Financial.BalanceRemaining.GreaterThan(decimal.Zero) {
		result.AddError(fmt.Sprintf("balance of %s remains unpaid", d.Financial.BalanceRemaining.StringFixed(2)))
	}

	for i := range d.Documents {
		doc := &d.Documents[i]
		if doc.Type.IsAgreement() && !doc.IsVerified() {
			result.AddError(fmt.Sprintf("agreement document %q is not verified", doc.Name))
		}
	}

	for i := range d.Tasks {
		task := &d.Tasks[i]
		if task.Priority == TaskPriorityHigh && !task.IsCompleted() {
			result.AddWarning(fmt.Sprintf("high-priority task %q is incomplete", task.Title))
		}
	}

	return result
}

// RecalculateTotals is the pure recomputation behind Deal.Recalculate, exposed
// for callers that reconcile payment lists outside an aggregate
func RecalculateTotals(agreedPrice decimal.Decimal, payments []DealPayment) (totalPaid, balanceRemaining decimal.Decimal) {
	totalPaid = decimal.Zero
	for i := range payments {
		totalPaid = totalPaid.Add(payments[i].EffectivePaid())
	}
	return totalPaid, agreedPrice.Sub(totalPaid)
}
