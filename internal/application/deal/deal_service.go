package deal

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// DealService handles deal lifecycle business operations
type DealService struct {
	dealRepo       deal.Repository
	gate           *deal.StageGate
	ledger         *deal.PaymentLedger
	eventPublisher shared.EventPublisher
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewDealService creates a new DealService
func NewDealService(dealRepo deal.Repository, gate *deal.StageGate, logger *zap.Logger) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		gate:     gate,
		ledger:   deal.NewPaymentLedger(),
		validate: validator.New(),
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for downstream integration
func (s *DealService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateDeal opens a new deal at the first stage
func (s *DealService) CreateDeal(ctx context.Context, req CreateDealRequest) (*deal.Deal, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	if existing, err := s.dealRepo.FindByNumber(ctx, req.DealNumber); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	d, err := deal.NewDeal(
		req.DealNumber,
		req.PropertyID,
		valueobject.NewMoneyAED(req.AgreedPrice),
		deal.Parties{BuyerID: req.BuyerID, SellerID: req.SellerID},
		deal.Agents{PrimaryID: req.PrimaryAgentID, SecondaryID: req.SecondaryAgentID},
	)
	if err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)
	return d, nil
}

// GetDeal retrieves a deal by ID
func (s *DealService) GetDeal(ctx context.Context, dealID uuid.UUID) (*deal.Deal, error) {
	return s.dealRepo.FindByID(ctx, dealID)
}

// GetDealByNumber retrieves a deal by its human-readable number
func (s *DealService) GetDealByNumber(ctx context.Context, dealNumber string) (*deal.Deal, error) {
	return s.dealRepo.FindByNumber(ctx, dealNumber)
}

// ListDeals returns every stored deal
func (s *DealService) ListDeals(ctx context.Context) ([]deal.Deal, error) {
	return s.dealRepo.FindAll(ctx)
}

// SchedulePayment adds a planned payment to a deal
func (s *DealService) SchedulePayment(ctx context.Context, dealID uuid.UUID, req SchedulePaymentRequest) (*deal.DealPayment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	payment, err := d.SchedulePayment(req.PaymentType, valueobject.NewMoneyAED(req.Amount), req.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return payment, nil
}

// RecordPayment applies received money against a scheduled payment. Business
// rule violations come back as validation errors in the outcome, not as Go
// errors; the deal is only mutated when the validation passes.
func (s *DealService) RecordPayment(ctx context.Context, dealID uuid.UUID, req RecordPaymentRequest) (*PaymentOutcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	payment := d.FindPayment(req.PaymentID)
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	paidAmount := valueobject.NewMoneyAED(req.PaidAmount)
	result := s.ledger.ValidatePaymentRecording(payment, d, paidAmount)
	if !result.IsValid {
		return &PaymentOutcome{Validation: result}, nil
	}

	if err := d.ApplyPaymentRecord(req.PaymentID, paidAmount, req.Method, req.ReferenceNumber, req.Notes, req.RecordedBy); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)
	return &PaymentOutcome{Validation: result, Deal: d}, nil
}

// ValidateStageTransition runs the stage gate without mutating anything
func (s *DealService) ValidateStageTransition(ctx context.Context, dealID uuid.UUID, target deal.Stage) (*shared.ValidationResult, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	return s.gate.Validate(d, target), nil
}

// AdvanceStage moves a deal to the next stage when the gate allows it. A
// failed gate comes back as validation errors in the outcome with the deal
// untouched.
func (s *DealService) AdvanceStage(ctx context.Context, dealID uuid.UUID, target deal.Stage) (*StageOutcome, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	result := s.gate.Validate(d, target)
	if !result.IsValid {
		return &StageOutcome{Validation: result}, nil
	}

	if err := d.AdvanceTo(target); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)
	return &StageOutcome{Validation: result, Deal: d}, nil
}

// CompleteDeal closes a deal that reached the final stage with a settled
// ledger. Unmet completion conditions come back as validation errors.
func (s *DealService) CompleteDeal(ctx context.Context, dealID uuid.UUID) (*CompletionOutcome, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	result := s.ledger.ValidateDealCompletion(d)
	if !result.IsValid {
		return &CompletionOutcome{Validation: result}, nil
	}

	if err := d.Complete(); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)
	return &CompletionOutcome{Validation: result, Deal: d}, nil
}

// CancelDeal cancels an active deal
func (s *DealService) CancelDeal(ctx context.Context, dealID uuid.UUID, reason string) (*deal.Deal, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	if err := d.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)
	return d, nil
}

// AddTask adds a manual task to the deal's current checklist
func (s *DealService) AddTask(ctx context.Context, dealID uuid.UUID, title string, stage deal.Stage, priority deal.TaskPriority) (*deal.DealTask, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	task, err := d.AddTask(title, stage, priority)
	if err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask marks a deal task done
func (s *DealService) CompleteTask(ctx context.Context, dealID, taskID uuid.UUID) error {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return err
	}

	if err := d.CompleteTask(taskID); err != nil {
		return err
	}
	return s.dealRepo.Save(ctx, d)
}

// AddDocument attaches a document record to the deal
func (s *DealService) AddDocument(ctx context.Context, dealID uuid.UUID, name string, docType deal.DocumentType, stage deal.Stage) (*deal.DealDocument, error) {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	doc, err := d.AddDocument(name, docType, stage)
	if err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return doc, nil
}

// VerifyDocument marks a deal document verified
func (s *DealService) VerifyDocument(ctx context.Context, dealID, documentID uuid.UUID, verifiedBy string) error {
	d, err := s.dealRepo.FindByID(ctx, dealID)
	if err != nil {
		return err
	}

	if err := d.VerifyDocument(documentID, verifiedBy); err != nil {
		return err
	}
	return s.dealRepo.Save(ctx, d)
}

// publishEvents drains and publishes the aggregate's pending events
func (s *DealService) publishEvents(ctx context.Context, d *deal.Deal) {
	if s.eventPublisher == nil {
		d.ClearDomainEvents()
		return
	}
	for _, event := range d.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation - event handling is async
			s.logger.Error("failed to publish deal event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	d.ClearDomainEvents()
}
