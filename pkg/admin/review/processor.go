package review

import (
	"context"
	"fmt"
	"time"

	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/lifecycle"

	"github.com/google/uuid"
)

// Request kinds as they appear in events.
const (
	KindCancellation = "cancellation_request"
	KindWithdrawal   = "withdrawal_request"
)

// Decision is an admin status change on a request.
type Decision struct {
	Status string
	// Notes replaces the resolution notes when non-nil.
	Notes *string
}

// Processor applies admin decisions to cancellation and withdrawal requests.
// Only the request row changes; the subscription is left to the billing jobs
// that consume the status events.
type Processor struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
	now       func() time.Time
}

func NewProcessor(logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListCancellations returns cancellation requests, newest first.
func (p *Processor) ListCancellations(ctx context.Context, uow unitofwork.UnitOfWork, specs ...specification.Specification) ([]*entity.CancellationRequest, error) {
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	return uow.CancellationRequestRepository().FindAll(ctx, specs...)
}

// ListWithdrawals returns withdrawal requests, newest first.
func (p *Processor) ListWithdrawals(ctx context.Context, uow unitofwork.UnitOfWork, specs ...specification.Specification) ([]*entity.WithdrawalRequest, error) {
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	return uow.WithdrawalRequestRepository().FindAll(ctx, specs...)
}

func (p *Processor) ReviewCancellation(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, d Decision) (*entity.CancellationRequest, error) {
	to, ok := lifecycle.ParseCancellationStatus(d.Status)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unknown cancellation status '%s'", d.Status))
	}

	req, err := uow.CancellationRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load cancellation request", err)
	}
	if req == nil {
		return nil, apperror.NotFound("Cancellation request not found")
	}

	from := req.Status
	if err := lifecycle.ReviewCancellation(from, to); err != nil {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot move cancellation request from '%s' to '%s'", from, to))
	}

	req.Status = to
	if d.Notes != nil {
		req.ResolutionNotes = *d.Notes
	}
	if from != to {
		now := p.now()
		req.ProcessedAt = &now
	}

	if err := uow.CancellationRequestRepository().Update(ctx, req); err != nil {
		return nil, apperror.Persistence("Failed to update cancellation request", err)
	}

	p.logger.Info("ADMIN", "Cancellation request reviewed", map[string]interface{}{
		"request_id":      req.Id,
		"subscription_id": req.SubscriptionId,
		"from":            from,
		"to":              to,
	})

	if from != to {
		p.publisher.PublishRequestStatusUpdated(ctx, KindCancellation, req.Id, req.SubscriptionId, string(from), string(to))
	}

	return req, nil
}

func (p *Processor) ReviewWithdrawal(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, d Decision) (*entity.WithdrawalRequest, error) {
	to, ok := lifecycle.ParseWithdrawalStatus(d.Status)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unknown withdrawal status '%s'", d.Status))
	}

	req, err := uow.WithdrawalRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperror.Persistence("Failed to load withdrawal request", err)
	}
	if req == nil {
		return nil, apperror.NotFound("Withdrawal request not found")
	}

	from := req.Status
	if err := lifecycle.ReviewWithdrawal(from, to); err != nil {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot move withdrawal request from '%s' to '%s'", from, to))
	}

	req.Status = to
	if d.Notes != nil {
		req.ResolutionNotes = *d.Notes
	}
	if from != to {
		now := p.now()
		req.ProcessedAt = &now
	}

	if err := uow.WithdrawalRequestRepository().Update(ctx, req); err != nil {
		return nil, apperror.Persistence("Failed to update withdrawal request", err)
	}

	p.logger.Info("ADMIN", "Withdrawal request reviewed", map[string]interface{}{
		"request_id":      req.Id,
		"subscription_id": req.SubscriptionId,
		"from":            from,
		"to":              to,
	})

	if from != to {
		p.publisher.PublishRequestStatusUpdated(ctx, KindWithdrawal, req.Id, req.SubscriptionId, string(from), string(to))
	}

	return req, nil
}
