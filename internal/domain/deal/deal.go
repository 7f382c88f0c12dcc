package deal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// Status represents the overall status of a deal
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusCompleted || s == StatusCancelled
}

// IsTerminal returns true if the deal is in a terminal state
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Lifecycle tracks where the deal sits in its fixed stage sequence
type Lifecycle struct {
	Stage  Stage  `json:"stage"`
	Status Status `json:"status"`
}

// Financial is the deal's money snapshot. TotalPaid and BalanceRemaining are
// always recomputed from Payments, never patched incrementally.
type Financial struct {
	AgreedPrice      decimal.Decimal `json:"agreed_price"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	BalanceRemaining decimal.Decimal `json:"balance_remaining"`
	Payments         []DealPayment   `json:"payments"`
}

// Parties identifies the buyer and seller contacts by foreign key
type Parties struct {
	BuyerID  uuid.UUID `json:"buyer_id"`
	SellerID uuid.UUID `json:"seller_id"`
}

// Agents identifies the agents working the deal
type Agents struct {
	PrimaryID   uuid.UUID  `json:"primary_id"`
	SecondaryID *uuid.UUID `json:"secondary_id,omitempty"`
}

// Deal is the aggregate representing one property transaction from accepted
// offer to handover
type Deal struct {
	shared.BaseAggregateRoot
	DealNumber string         `json:"deal_number"`
	PropertyID uuid.UUID      `json:"property_id"`
	Lifecycle  Lifecycle      `json:"lifecycle"`
	Financial  Financial      `json:"financial"`
	Tasks      []DealTask     `json:"tasks"`
	Documents  []DealDocument `json:"documents"`
	Parties    Parties        `json:"parties"`
	Agents     Agents         `json:"agents"`
}

// NewDeal creates a deal at the first lifecycle stage
func NewDeal(dealNumber string, propertyID uuid.UUID, agreedPrice valueobject.Money, parties Parties, agents Agents) (*Deal, error) {
	if dealNumber == "" {
		return nil, shared.NewDomainError("INVALID_DEAL_NUMBER", "Deal number cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if !agreedPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Agreed price must be positive")
	}
	if parties.BuyerID == uuid.Nil || parties.SellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTIES", "Buyer and seller are required")
	}
	if agents.PrimaryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT", "Primary agent is required")
	}

	d := &Deal{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DealNumber:        dealNumber,
		PropertyID:        propertyID,
		Lifecycle: Lifecycle{
			Stage:  StageOfferAccepted,
			Status: StatusActive,
		},
		Financial: Financial{
			AgreedPrice:      agreedPrice.Amount(),
			TotalPaid:        decimal.Zero,
			BalanceRemaining: agreedPrice.Amount(),
			Payments:         []DealPayment{},
		},
		Tasks:     []DealTask{},
		Documents: []DealDocument{},
		Parties:   parties,
		Agents:    agents,
	}

	d.AddDomainEvent(NewDealCreatedEvent(d))

	return d, nil
}

// IsActive returns true if the deal has not reached a terminal state
func (d *Deal) IsActive() bool {
	return d.Lifecycle.Status == StatusActive
}

// FindPayment returns the payment with the given ID, or nil
func (d *Deal) FindPayment(paymentID uuid.UUID) *DealPayment {
	for i := range d.Financial.Payments {
		if d.Financial.Payments[i].ID == paymentID {
			return &d.Financial.Payments[i]
		}
	}
	return nil
}

// SchedulePayment adds a pending payment to the plan
func (d *Deal) SchedulePayment(paymentType PaymentType, amount valueobject.Money, dueDate *time.Time) (*DealPayment, error) {
	if !d.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot schedule payment on %s deal", d.Lifecycle.Status))
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	payment := NewDealPayment(paymentType, amount, dueDate)
	d.Financial.Payments = append(d.Financial.Payments, payment)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return &d.Financial.Payments[len(d.Financial.Payments)-1], nil
}

// ApplyPaymentRecord records money received against a scheduled payment and
// recomputes the financial snapshot. Callers are expected to have run the
// payment ledger validation first; this method only enforces hard invariants.
func (d *Deal) ApplyPaymentRecord(paymentID uuid.UUID, paidAmount valueobject.Money, method PaymentMethod, referenceNumber, notes, recordedBy string) error {
	if !d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on %s deal", d.Lifecycle.Status))
	}
	payment := d.FindPayment(paymentID)
	if payment == nil {
		return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment does not exist on this deal")
	}
	if payment.IsCompleted() {
		return shared.NewDomainError("PAYMENT_ALREADY_COMPLETED", "Payment has already been recorded as completed")
	}
	if !paidAmount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount must be positive")
	}

	now := time.Now()
	payment.PaidAmount = payment.PaidAmount.Add(paidAmount.Amount())
	payment.Method = method
	payment.ReferenceNumber = referenceNumber
	if notes != "" {
		payment.Notes = notes
	}
	payment.RecordedBy = recordedBy
	payment.PaidDate = &now
	if payment.PaidAmount.GreaterThanOrEqual(payment.Amount) {
		payment.Status = PaymentStatusCompleted
	} else {
		payment.Status = PaymentStatusPartial
	}

	d.Recalculate()
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDealPaymentRecordedEvent(d, payment, paidAmount.Amount()))

	return nil
}

// Recalculate recomputes TotalPaid and BalanceRemaining from the payment list.
// A negative balance denotes overpayment and stays representable.
func (d *Deal) Recalculate() {
	total := decimal.Zero
	for i := range d.Financial.Payments {
		total = total.Add(d.Financial.Payments[i].EffectivePaid())
	}
	d.Financial.TotalPaid = total
	d.Financial.BalanceRemaining = d.Financial.AgreedPrice.Sub(total)
}

// AdvanceTo moves the deal forward by exactly one stage. The stage gate
// decides whether the move is allowed; this method enforces the ordering
// invariant regardless of the caller.
func (d *Deal) AdvanceTo(target Stage) error {
	if !d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot advance %s deal", d.Lifecycle.Status))
	}
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Target stage is not a valid lifecycle stage")
	}
	if target.Index() != d.Lifecycle.Stage.Index()+1 {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot move from %s to %s", d.Lifecycle.Stage, target))
	}

	from := d.Lifecycle.Stage
	d.Lifecycle.Stage = target

	// Seed the boilerplate checklist for the stage being entered
	for _, title := range DefaultTasksForStage(target) {
		d.Tasks = append(d.Tasks, NewDealTask(title, target, TaskPriorityMedium))
	}

	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDealStageAdvancedEvent(d, from, target))

	return nil
}

// Complete marks the deal as completed. Only reachable from the last stage;
// the payment ledger's completion gate runs before this is called.
func (d *Deal) Complete() error {
	if !d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete %s deal", d.Lifecycle.Status))
	}
	if !d.Lifecycle.Stage.IsFinal() {
		return shared.NewDomainError("INVALID_STAGE", "Deal can only be completed from the final-handover stage")
	}

	d.Lifecycle.Status = StatusCompleted
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDealCompletedEvent(d))

	return nil
}

// Cancel cancels the deal from any active stage
func (d *Deal) Cancel(reason string) error {
	if !d.IsActive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel %s deal", d.Lifecycle.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	d.Lifecycle.Status = StatusCancelled
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDealCancelledEvent(d, reason))

	return nil
}

// AddTask attaches a task to the deal
func (d *Deal) AddTask(title string, stage Stage, priority TaskPriority) (*DealTask, error) {
	if !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Task stage is not a valid lifecycle stage")
	}
	task := NewDealTask(title, stage, priority)
	d.Tasks = append(d.Tasks, task)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return &d.Tasks[len(d.Tasks)-1], nil
}

// AddDocument attaches a document to the deal
func (d *Deal) AddDocument(name string, docType DocumentType, stage Stage) (*DealDocument, error) {
	if !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Document stage is not a valid lifecycle stage")
	}
	doc := NewDealDocument(name, docType, stage)
	d.Documents = append(d.Documents, doc)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return &d.Documents[len(d.Documents)-1], nil
}

// CompleteTask marks a task as completed
func (d *Deal) CompleteTask(taskID uuid.UUID) error {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			d.Tasks[i].Complete()
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("TASK_NOT_FOUND", "Task does not exist on this deal")
}

// VerifyDocument marks a document as verified
func (d *Deal) VerifyDocument(documentID uuid.UUID, verifiedBy string) error {
	for i := range d.Documents {
		if d.Documents[i].ID == documentID {
			d.Documents[i].Verify(verifiedBy)
			d.UpdatedAt = time.Now()
			d.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("DOCUMENT_NOT_FOUND", "Document does not exist on this deal")
}

// TasksForStage returns the tasks tagged with the given stage
func (d *Deal) TasksForStage(stage Stage) []DealTask {
	var out []DealTask
	for _, t := range d.Tasks {
		if t.Stage == stage {
			out = append(out, t)
		}
	}
	return out
}

// DocumentsForStage returns the documents tagged with the given stage
func (d *Deal) DocumentsForStage(stage Stage) []DealDocument {
	var out []DealDocument
	for _, doc := range d.Documents {
		if doc.Stage == stage {
			out = append(out, doc)
		}
	}
	return out
}

// PendingPaymentCount returns the number of payments still pending
func (d *Deal) PendingPaymentCount() int {
	count := 0
	for i := range d.Financial.Payments {
		if d.Financial.Payments[i].IsPending() {
			count++
		}
	}
	return count
}

// GetAgreedPriceMoney returns the agreed price as Money
func (d *Deal) GetAgreedPriceMoney() valueobject.Money {
	return valueobject.NewMoneyAED(d.Financial.AgreedPrice)
}

// GetTotalPaidMoney returns the total paid as Money
func (d *Deal) GetTotalPaidMoney() valueobject.Money {
	return valueobject.NewMoneyAED(d.Financial.TotalPaid)
}

// GetBalanceRemainingMoney returns the remaining balance as Money
func (d *Deal) GetBalanceRemainingMoney() valueobject.Money {
	return valueobject.NewMoneyAED(d.Financial.BalanceRemaining)
}
