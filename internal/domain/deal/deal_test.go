package deal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// Test helpers

func createTestDeal(t *testing.T) *Deal {
	t.Helper()
	secondary := uuid.New()
	d, err := NewDeal(
		"DL-2026-001",
		uuid.New(),
		valueobject.NewMoneyAEDFromFloat(1000000),
		Parties{BuyerID: uuid.New(), SellerID: uuid.New()},
		Agents{PrimaryID: uuid.New(), SecondaryID: &secondary},
	)
	require.NoError(t, err)
	return d
}

func scheduleTestPayment(t *testing.T, d *Deal, paymentType PaymentType, amount float64) *DealPayment {
	t.Helper()
	p, err := d.SchedulePayment(paymentType, valueobject.NewMoneyAEDFromFloat(amount), nil)
	require.NoError(t, err)
	return p
}

func TestNewDeal(t *testing.T) {
	d := createTestDeal(t)

	assert.Equal(t, StageOfferAccepted, d.Lifecycle.Stage)
	assert.Equal(t, StatusActive, d.Lifecycle.Status)
	assert.True(t, d.Financial.TotalPaid.IsZero())
	assert.True(t, d.Financial.BalanceRemaining.Equal(d.Financial.AgreedPrice))
	assert.Len(t, d.GetDomainEvents(), 1)
	assert.Equal(t, "DealCreated", d.GetDomainEvents()[0].EventType())
}

func TestNewDeal_Validation(t *testing.T) {
	price := valueobject.NewMoneyAEDFromFloat(1000000)
	parties := Parties{BuyerID: uuid.New(), SellerID: uuid.New()}
	agents := Agents{PrimaryID: uuid.New()}

	tests := []struct {
		name    string
		run     func() error
	}{
		{"empty deal number", func() error {
			_, err := NewDeal("", uuid.New(), price, parties, agents)
			return err
		}},
		{"nil property", func() error {
			_, err := NewDeal("DL-1", uuid.Nil, price, parties, agents)
			return err
		}},
		{"zero price", func() error {
			_, err := NewDeal("DL-1", uuid.New(), valueobject.ZeroAED(), parties, agents)
			return err
		}},
		{"missing buyer", func() error {
			_, err := NewDeal("DL-1", uuid.New(), price, Parties{SellerID: uuid.New()}, agents)
			return err
		}},
		{"missing primary agent", func() error {
			_, err := NewDeal("DL-1", uuid.New(), price, parties, Agents{})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.run())
		})
	}
}

func TestDeal_SchedulePayment(t *testing.T) {
	d := createTestDeal(t)

	p := scheduleTestPayment(t, d, PaymentTypeToken, 50000)

	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.True(t, p.PaidAmount.IsZero())
	assert.Equal(t, 1, d.PendingPaymentCount())
	// Scheduling never moves the totals
	assert.True(t, d.Financial.TotalPaid.IsZero())
}

func TestDeal_ApplyPaymentRecord_Full(t *testing.T) {
	d := createTestDeal(t)
	p := scheduleTestPayment(t, d, PaymentTypeToken, 50000)

	err := d.ApplyPaymentRecord(p.ID, valueobject.NewMoneyAEDFromFloat(50000), PaymentMethodBankTransfer, "TXN-1", "", "agent-a")
	require.NoError(t, err)

	recorded := d.FindPayment(p.ID)
	assert.Equal(t, PaymentStatusCompleted, recorded.Status)
	assert.NotNil(t, recorded.PaidDate)
	assert.Equal(t, "agent-a", recorded.RecordedBy)
	assert.True(t, d.Financial.TotalPaid.Equal(decimal.NewFromInt(50000)))
	assert.True(t, d.Financial.BalanceRemaining.Equal(decimal.NewFromInt(950000)))
}

func TestDeal_ApplyPaymentRecord_Partial(t *testing.T) {
	d := createTestDeal(t)
	p := scheduleTestPayment(t, d, PaymentTypeDownPayment, 200000)

	err := d.ApplyPaymentRecord(p.ID, valueobject.NewMoneyAEDFromFloat(120000), PaymentMethodCheque, "CHQ-9", "first tranche", "agent-a")
	require.NoError(t, err)

	recorded := d.FindPayment(p.ID)
	assert.Equal(t, PaymentStatusPartial, recorded.Status)
	assert.True(t, d.Financial.TotalPaid.Equal(decimal.NewFromInt(120000)))
}

func TestDeal_ApplyPaymentRecord_AlreadyCompleted(t *testing.T) {
	d := createTestDeal(t)
	p := scheduleTestPayment(t, d, PaymentTypeToken, 50000)
	require.NoError(t, d.ApplyPaymentRecord(p.ID, valueobject.NewMoneyAEDFromFloat(50000), PaymentMethodCash, "", "", "agent-a"))

	before := d.Financial.TotalPaid
	err := d.ApplyPaymentRecord(p.ID, valueobject.NewMoneyAEDFromFloat(1), PaymentMethodCash, "", "", "agent-a")

	assert.Error(t, err)
	assert.True(t, d.Financial.TotalPaid.Equal(before))
}

func TestDeal_ApplyPaymentRecord_UnknownPayment(t *testing.T) {
	d := createTestDeal(t)
	err := d.ApplyPaymentRecord(uuid.New(), valueobject.NewMoneyAEDFromFloat(10), PaymentMethodCash, "", "", "agent-a")
	assert.Error(t, err)
}

func TestDeal_Recalculate_LedgerIdentity(t *testing.T) {
	d := createTestDeal(t)
	p1 := scheduleTestPayment(t, d, PaymentTypeToken, 50000)
	p2 := scheduleTestPayment(t, d, PaymentTypeDownPayment, 200000)
	scheduleTestPayment(t, d, PaymentTypeInstallment1, 250000)

	require.NoError(t, d.ApplyPaymentRecord(p1.ID, valueobject.NewMoneyAEDFromFloat(50000), PaymentMethodCash, "", "", "a"))
	require.NoError(t, d.ApplyPaymentRecord(p2.ID, valueobject.NewMoneyAEDFromFloat(80000), PaymentMethodCash, "", "", "a"))

	sum := d.Financial.TotalPaid.Add(d.Financial.BalanceRemaining)
	assert.True(t, sum.Equal(d.Financial.AgreedPrice))
}

func TestDeal_AdvanceTo(t *testing.T) {
	d := createTestDeal(t)

	require.NoError(t, d.AdvanceTo(StageAgreementSigning))
	assert.Equal(t, StageAgreementSigning, d.Lifecycle.Stage)

	// Boilerplate tasks for the entered stage are seeded
	assert.NotEmpty(t, d.TasksForStage(StageAgreementSigning))
}

func TestDeal_AdvanceTo_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		target Stage
	}{
		{"skip", StageDocumentation},
		{"repeat", StageOfferAccepted},
		{"invalid", Stage("closing")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := createTestDeal(t)
			err := d.AdvanceTo(tt.target)
			assert.Error(t, err)
			assert.Equal(t, StageOfferAccepted, d.Lifecycle.Stage)
		})
	}
}

func TestDeal_AdvanceTo_Monotonic(t *testing.T) {
	d := createTestDeal(t)

	for _, next := range Stages()[1:] {
		require.NoError(t, d.AdvanceTo(next))
		// After each advance the stage behind is unreachable again
		assert.Error(t, d.AdvanceTo(next))
	}
	assert.Equal(t, StageFinalHandover, d.Lifecycle.Stage)
}

func TestDeal_Complete(t *testing.T) {
	d := createTestDeal(t)
	for _, next := range Stages()[1:] {
		require.NoError(t, d.AdvanceTo(next))
	}

	require.NoError(t, d.Complete())
	assert.Equal(t, StatusCompleted, d.Lifecycle.Status)

	// Terminal: no further mutation
	assert.Error(t, d.AdvanceTo(StageFinalHandover))
	assert.Error(t, d.Cancel("too late"))
}

func TestDeal_Complete_RequiresFinalStage(t *testing.T) {
	d := createTestDeal(t)
	assert.Error(t, d.Complete())
}

func TestDeal_Cancel(t *testing.T) {
	d := createTestDeal(t)
	require.NoError(t, d.AdvanceTo(StageAgreementSigning))

	require.NoError(t, d.Cancel("buyer withdrew"))
	assert.Equal(t, StatusCancelled, d.Lifecycle.Status)

	err := d.Cancel("again")
	assert.Error(t, err)
}

func TestDeal_Cancel_RequiresReason(t *testing.T) {
	d := createTestDeal(t)
	assert.Error(t, d.Cancel(""))
}

func TestDeal_TaskAndDocumentHelpers(t *testing.T) {
	d := createTestDeal(t)

	task, err := d.AddTask("Collect token cheque", StageOfferAccepted, TaskPriorityHigh)
	require.NoError(t, err)
	doc, err := d.AddDocument("MOU", DocumentTypeMOU, StageOfferAccepted)
	require.NoError(t, err)

	require.NoError(t, d.CompleteTask(task.ID))
	require.NoError(t, d.VerifyDocument(doc.ID, "ops-manager"))

	assert.True(t, d.TasksForStage(StageOfferAccepted)[0].IsCompleted())
	assert.True(t, d.DocumentsForStage(StageOfferAccepted)[0].IsVerified())

	assert.Error(t, d.CompleteTask(uuid.New()))
	assert.Error(t, d.VerifyDocument(uuid.New(), "ops"))
}

func TestDealPayment_EffectivePaid(t *testing.T) {
	due := time.Now().Add(24 * time.Hour)
	p := NewDealPayment(PaymentTypeToken, valueobject.NewMoneyAEDFromFloat(100), &due)

	assert.True(t, p.EffectivePaid().IsZero())

	p.PaidAmount = decimal.NewFromInt(40)
	p.Status = PaymentStatusPartial
	assert.True(t, p.EffectivePaid().Equal(decimal.NewFromInt(40)))

	// Completed payments count the full scheduled amount
	p.Status = PaymentStatusCompleted
	assert.True(t, p.EffectivePaid().Equal(decimal.NewFromInt(100)))

	// Unless more than the scheduled amount was actually paid
	p.PaidAmount = decimal.NewFromInt(110)
	assert.True(t, p.EffectivePaid().Equal(decimal.NewFromInt(110)))
}

func TestDealPayment_IsOverdue(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	p := NewDealPayment(PaymentTypeToken, valueobject.NewMoneyAEDFromFloat(100), &past)

	assert.True(t, p.IsOverdue(time.Now()))

	p.Status = PaymentStatusCompleted
	assert.False(t, p.IsOverdue(time.Now()))

	noDue := NewDealPayment(PaymentTypeToken, valueobject.NewMoneyAEDFromFloat(100), nil)
	assert.False(t, noDue.IsOverdue(time.Now()))
}
