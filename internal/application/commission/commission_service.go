package commission

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dealdesk/backend/internal/domain/commission"
	"github.com/dealdesk/backend/internal/domain/deal"
	"github.com/dealdesk/backend/internal/domain/shared"
	"github.com/dealdesk/backend/internal/domain/shared/valueobject"
)

// CommissionService handles commission business operations
type CommissionService struct {
	commissionRepo commission.Repository
	dealRepo       deal.Repository
	engine         *commission.Engine
	eventPublisher shared.EventPublisher
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(commissionRepo commission.Repository, dealRepo deal.Repository, engine *commission.Engine, logger *zap.Logger) *CommissionService {
	return &CommissionService{
		commissionRepo: commissionRepo,
		dealRepo:       dealRepo,
		engine:         engine,
		validate:       validator.New(),
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for downstream integration
func (s *CommissionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateWithSplits creates one commission per split for a sale. The deal's
// collected total is read to flag commissions created before any money moved;
// a missing deal degrades to a zero total rather than blocking creation.
func (s *CommissionService) CreateWithSplits(ctx context.Context, req CreateSplitsRequest) (*CreateSplitsResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	dealTotalPaid := valueobject.ZeroAED().Amount()
	if d, err := s.dealRepo.FindByID(ctx, req.DealID); err == nil {
		dealTotalPaid = d.Financial.TotalPaid
	} else {
		s.logger.Warn("deal not found while creating commissions",
			zap.String("deal_id", req.DealID.String()),
		)
	}

	splits := make([]commission.AgentSplit, 0, len(req.Splits))
	for _, split := range req.Splits {
		splits = append(splits, commission.AgentSplit{
			AgentID:    split.AgentID,
			Percentage: split.Percentage,
		})
	}

	result, err := s.engine.CreateWithSplits(commission.CreateSplitsInput{
		PropertyID:    req.PropertyID,
		DealID:        req.DealID,
		TotalAmount:   valueobject.NewMoneyAED(req.TotalAmount),
		Splits:        splits,
		PayoutTrigger: req.PayoutTrigger,
		DealTotalPaid: dealTotalPaid,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commissionRepo.SaveAll(ctx, result.Commissions); err != nil {
		return nil, err
	}

	for _, c := range result.Commissions {
		s.publishEvents(ctx, c)
	}

	return &CreateSplitsResponse{
		Commissions: result.Commissions,
		Warnings:    result.Warnings,
	}, nil
}

// GetCommission retrieves a commission by ID
func (s *CommissionService) GetCommission(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	return s.commissionRepo.FindByID(ctx, id)
}

// ListByDeal returns every commission created for a deal
func (s *CommissionService) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]commission.Commission, error) {
	return s.commissionRepo.FindByDeal(ctx, dealID)
}

// ListByAgent returns every commission owed to an agent
func (s *CommissionService) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]commission.Commission, error) {
	return s.commissionRepo.FindByAgent(ctx, agentID)
}

// Approve approves a pending commission
func (s *CommissionService) Approve(ctx context.Context, id uuid.UUID, approvedBy string) (*commission.Commission, error) {
	c, err := s.commissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Approve(approvedBy); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)
	return c, nil
}

// Reject rejects a pending commission with a reason
func (s *CommissionService) Reject(ctx context.Context, id uuid.UUID, reason string) (*commission.Commission, error) {
	c, err := s.commissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Reject(reason); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)
	return c, nil
}

// Override replaces a commission's amount with an audited manual correction
func (s *CommissionService) Override(ctx context.Context, id uuid.UUID, req OverrideRequest) (*commission.Commission, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	c, err := s.commissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.Override(valueobject.NewMoneyAED(req.Amount), req.Reason, req.OverriddenBy); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, c)
	return c, nil
}

// MarkPaid records payout of an approved commission
func (s *CommissionService) MarkPaid(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	c, err := s.commissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.MarkPaid(); err != nil {
		return nil, err
	}

	if err := s.commissionRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SweepOverdue refreshes the overdue flag on every pending commission with a
// due date and returns how many newly crossed into overdue
func (s *CommissionService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.commissionRepo.FindPendingWithDueDate(ctx)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	commissions := make([]*commission.Commission, 0, len(candidates))
	for i := range candidates {
		commissions = append(commissions, &candidates[i])
	}

	transitioned := s.engine.SweepOverdue(commissions, now)

	if err := s.commissionRepo.SaveAll(ctx, commissions); err != nil {
		return 0, err
	}

	s.logger.Info("overdue sweep finished",
		zap.Int("candidates", len(commissions)),
		zap.Int("newly_overdue", transitioned),
	)
	return transitioned, nil
}

// publishEvents drains and publishes the aggregate's pending events
func (s *CommissionService) publishEvents(ctx context.Context, c *commission.Commission) {
	if s.eventPublisher == nil {
		c.ClearDomainEvents()
		return
	}
	for _, event := range c.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			// Log error but don't fail the operation - event handling is async
			s.logger.Error("failed to publish commission event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	c.ClearDomainEvents()
}
