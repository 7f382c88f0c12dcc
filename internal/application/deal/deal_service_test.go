package deal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// MockDealRepository is a mock implementation of deal.Repository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByID(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deal.Deal), args.Error(1)
}

func (m *MockDealRepository) FindByNumber(ctx context.Context, dealNumber string) (*deal.Deal, error) {
	args := m.Called(ctx, dealNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deal.Deal), args.Error(1)
}

func (m *MockDealRepository) FindAll(ctx context.Context) ([]deal.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]deal.Deal), args.Error(1)
}

func (m *MockDealRepository) Save(ctx context.Context, d *deal.Deal) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func newService(repo *MockDealRepository) *DealService {
	return NewDealService(repo, deal.NewStageGate(), zap.NewNop())
}

func newStoredDeal(t *testing.T) *deal.Deal {
	t.Helper()
	d, err := deal.NewDeal(
		"DL-2026-010",
		uuid.New(),
		valueobject.NewMoneyAEDFromFloat(500000),
		deal.Parties{BuyerID: uuid.New(), SellerID: uuid.New()},
		deal.Agents{PrimaryID: uuid.New()},
	)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}

func TestDealService_CreateDeal(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)

	repo.On("FindByNumber", mock.Anything, "DL-2026-010").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*deal.Deal")).Return(nil)

	d, err := service.CreateDeal(context.Background(), CreateDealRequest{
		DealNumber:     "DL-2026-010",
		PropertyID:     uuid.New(),
		AgreedPrice:    decimal.NewFromInt(500000),
		BuyerID:        uuid.New(),
		SellerID:       uuid.New(),
		PrimaryAgentID: uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, deal.StageOfferAccepted, d.Lifecycle.Stage)
	repo.AssertExpectations(t)
}

func TestDealService_CreateDeal_DuplicateNumber(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	existing := newStoredDeal(t)

	repo.On("FindByNumber", mock.Anything, "DL-2026-010").Return(existing, nil)

	_, err := service.CreateDeal(context.Background(), CreateDealRequest{
		DealNumber:     "DL-2026-010",
		PropertyID:     uuid.New(),
		AgreedPrice:    decimal.NewFromInt(500000),
		BuyerID:        uuid.New(),
		SellerID:       uuid.New(),
		PrimaryAgentID: uuid.New(),
	})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_CreateDeal_InvalidRequest(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)

	_, err := service.CreateDeal(context.Background(), CreateDealRequest{})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_RecordPayment(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)
	payment, err := d.SchedulePayment(deal.PaymentTypeToken, valueobject.NewMoneyAEDFromFloat(50000), nil)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
	repo.On("Save", mock.Anything, d).Return(nil)

	outcome, err := service.RecordPayment(context.Background(), d.ID, RecordPaymentRequest{
		PaymentID:  payment.ID,
		PaidAmount: decimal.NewFromInt(50000),
		Method:     deal.PaymentMethodBankTransfer,
		RecordedBy: "cashier",
	})

	require.NoError(t, err)
	assert.True(t, outcome.Validation.IsValid)
	require.NotNil(t, outcome.Deal)
	assert.True(t, outcome.Deal.Financial.TotalPaid.Equal(decimal.NewFromInt(50000)))
	repo.AssertExpectations(t)
}

func TestDealService_RecordPayment_ExcessAmountRejected(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)
	payment, err := d.SchedulePayment(deal.PaymentTypeToken, valueobject.NewMoneyAEDFromFloat(50000), nil)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

	outcome, err := service.RecordPayment(context.Background(), d.ID, RecordPaymentRequest{
		PaymentID:  payment.ID,
		PaidAmount: decimal.NewFromInt(60000),
		Method:     deal.PaymentMethodCash,
		RecordedBy: "cashier",
	})

	require.NoError(t, err)
	assert.False(t, outcome.Validation.IsValid)
	assert.Nil(t, outcome.Deal)
	assert.True(t, d.Financial.TotalPaid.IsZero(), "rejected recording must not mutate the deal")
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_RecordPayment_UnknownPayment(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

	_, err := service.RecordPayment(context.Background(), d.ID, RecordPaymentRequest{
		PaymentID:  uuid.New(),
		PaidAmount: decimal.NewFromInt(100),
		Method:     deal.PaymentMethodCash,
		RecordedBy: "cashier",
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDealService_AdvanceStage(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
	repo.On("Save", mock.Anything, d).Return(nil)

	outcome, err := service.AdvanceStage(context.Background(), d.ID, deal.StageAgreementSigning)

	require.NoError(t, err)
	assert.True(t, outcome.Validation.IsValid)
	assert.Equal(t, deal.StageAgreementSigning, outcome.Deal.Lifecycle.Stage)
	repo.AssertExpectations(t)
}

func TestDealService_AdvanceStage_SkipBlocked(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

	outcome, err := service.AdvanceStage(context.Background(), d.ID, deal.StageDocumentation)

	require.NoError(t, err)
	assert.False(t, outcome.Validation.IsValid)
	assert.Equal(t, deal.StageOfferAccepted, d.Lifecycle.Stage)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_CompleteDeal_BlockedBeforeFinalStage(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)

	outcome, err := service.CompleteDeal(context.Background(), d.ID)

	require.NoError(t, err)
	assert.False(t, outcome.Validation.IsValid)
	assert.Equal(t, deal.StatusActive, d.Lifecycle.Status)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDealService_CancelDeal(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
	repo.On("Save", mock.Anything, d).Return(nil)

	cancelled, err := service.CancelDeal(context.Background(), d.ID, "buyer withdrew financing")

	require.NoError(t, err)
	assert.Equal(t, deal.StatusCancelled, cancelled.Lifecycle.Status)
	repo.AssertExpectations(t)
}

func TestDealService_SchedulePayment(t *testing.T) {
	repo := new(MockDealRepository)
	service := newService(repo)
	d := newStoredDeal(t)

	repo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
	repo.On("Save", mock.Anything, d).Return(nil)

	payment, err := service.SchedulePayment(context.Background(), d.ID, SchedulePaymentRequest{
		PaymentType: deal.PaymentTypeDownPayment,
		Amount:      decimal.NewFromInt(100000),
	})

	require.NoError(t, err)
	assert.Equal(t, deal.PaymentStatusPending, payment.Status)
	assert.Len(t, d.Financial.Payments, 1)
}
