package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/pkg/session"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/admin/mapper"
	"pharaohvault-be/pkg/admin/review"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// weightTolerance absorbs float error from unit conversion.
const weightTolerance = 1e-9

type IRequestService interface {
	CreateCancellation(ctx context.Context, sess *session.Session, req *dto.CreateCancellationRequest) (*dto.CancellationRequestResponse, error)
	CreateWithdrawal(ctx context.Context, sess *session.Session, req *dto.CreateWithdrawalRequest) (*dto.WithdrawalRequestResponse, error)
	ListCancellations(ctx context.Context, sess *session.Session, query dto.RequestListQuery) ([]*dto.CancellationRequestResponse, error)
	ListWithdrawals(ctx context.Context, sess *session.Session, query dto.RequestListQuery) ([]*dto.WithdrawalRequestResponse, error)

	// Admin review. Only the request row changes.
	UpdateCancellation(ctx context.Context, id uuid.UUID, req *dto.UpdateRequestStatusRequest) (*dto.CancellationRequestResponse, error)
	UpdateWithdrawal(ctx context.Context, id uuid.UUID, req *dto.UpdateRequestStatusRequest) (*dto.WithdrawalRequestResponse, error)
}

type requestService struct {
	uowFactory unitofwork.RepositoryFactory
	prices     IMetalPriceService
	reviewer   *review.Processor
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewRequestService(
	uowFactory unitofwork.RepositoryFactory,
	prices IMetalPriceService,
	reviewer *review.Processor,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) IRequestService {
	return &requestService{
		uowFactory: uowFactory,
		prices:     prices,
		reviewer:   reviewer,
		publisher:  publisher,
		logger:     logger,
	}
}

// ownedSubscription loads the subscription and its eligibility for the caller.
// Requests can only be raised by the subscription's owner.
func (s *requestService) ownedSubscription(ctx context.Context, uow unitofwork.UnitOfWork, sess *session.Session, id uuid.UUID) (*entity.Subscription, *outstandingRequests, error) {
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, nil, apperror.Persistence("Failed to load subscription", err)
	}
	if sub == nil || sub.UserId != sess.UserID {
		return nil, nil, apperror.NotFound("Subscription not found")
	}

	outstanding, err := loadOutstanding(ctx, uow, []uuid.UUID{sub.Id})
	if err != nil {
		return nil, nil, apperror.Persistence("Failed to load subscription requests", err)
	}
	return sub, outstanding, nil
}

func (s *requestService) CreateCancellation(ctx context.Context, sess *session.Session, req *dto.CreateCancellationRequest) (*dto.CancellationRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, outstanding, err := s.ownedSubscription(ctx, uow, sess, req.SubscriptionId)
	if err != nil {
		return nil, err
	}

	_, openCancel := outstanding.cancellations[sub.Id]
	_, openWithdraw := outstanding.withdrawals[sub.Id]
	if openCancel {
		return nil, apperror.Conflict("A cancellation request is already open for this subscription")
	}
	if !lifecycle.Evaluate(sub.Snapshot(openCancel, openWithdraw)).Cancel {
		return nil, apperror.Conflict(fmt.Sprintf(
			"Subscription in status '%s' cannot be cancelled", lifecycle.Label(sub.Status)))
	}

	now := time.Now()
	cancellation := &entity.CancellationRequest{
		Id:             uuid.New(),
		SubscriptionId: sub.Id,
		UserId:         sess.UserID,
		Reason:         strings.TrimSpace(req.Reason),
		Details:        strings.TrimSpace(req.Details),
		PreferredDate:  req.PreferredDate,
		Status:         lifecycle.CancellationPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.CancellationRequestRepository().Create(ctx, cancellation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A cancellation request is already open for this subscription")
		}
		return nil, apperror.Persistence("Failed to create cancellation request", err)
	}

	s.logger.Info("REQUESTS", "Cancellation requested", map[string]interface{}{
		"request_id":      cancellation.Id,
		"subscription_id": sub.Id,
		"user_id":         sess.UserID,
	})
	s.publisher.PublishCancellationRequested(ctx, cancellation.Id, sub.Id, sess.UserID, cancellation.Reason)

	return mapper.CancellationToResponse(cancellation), nil
}

func (s *requestService) CreateWithdrawal(ctx context.Context, sess *session.Session, req *dto.CreateWithdrawalRequest) (*dto.WithdrawalRequestResponse, error) {
	unit, ok := metal.ParseUnit(req.RequestedUnit)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported unit '%s'. Must be g or oz.", req.RequestedUnit))
	}
	if req.RequestedWeight <= 0 {
		return nil, apperror.Validation("Requested weight must be greater than zero.")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, outstanding, err := s.ownedSubscription(ctx, uow, sess, req.SubscriptionId)
	if err != nil {
		return nil, err
	}

	_, openCancel := outstanding.cancellations[sub.Id]
	_, openWithdraw := outstanding.withdrawals[sub.Id]
	if openWithdraw {
		return nil, apperror.Conflict("A withdrawal request is already open for this subscription")
	}
	if !lifecycle.Evaluate(sub.Snapshot(openCancel, openWithdraw)).Withdraw {
		minWeight, minUnit := lifecycle.WithdrawalMinimum(sub.Metal)
		return nil, apperror.Conflict(fmt.Sprintf(
			"Subscription is not eligible for withdrawal. At least %g%s must be accumulated on a billing subscription.", minWeight, minUnit))
	}

	available := metal.Convert(sub.AccumulatedWeight, sub.TargetUnit, unit)
	if req.RequestedWeight > available+weightTolerance {
		return nil, apperror.Validation(fmt.Sprintf(
			"Requested weight %g%s exceeds the accumulated %g%s.", req.RequestedWeight, unit, available, unit))
	}

	var estimate float64
	spots, err := s.prices.SpotPrices(ctx)
	if err != nil {
		s.logger.Warn("REQUESTS", "Spot price unavailable, withdrawal recorded without estimate", map[string]interface{}{
			"subscription_id": sub.Id,
			"error":           err.Error(),
		})
	} else {
		estimate = metal.EstimateValue(spots[sub.Metal], req.RequestedWeight, unit)
	}

	now := time.Now()
	withdrawal := &entity.WithdrawalRequest{
		Id:              uuid.New(),
		SubscriptionId:  sub.Id,
		UserId:          sess.UserID,
		Metal:           sub.Metal,
		RequestedWeight: req.RequestedWeight,
		RequestedUnit:   unit,
		EstimatedValue:  estimate,
		Notes:           strings.TrimSpace(req.Notes),
		Status:          lifecycle.WithdrawalPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.WithdrawalRequestRepository().Create(ctx, withdrawal); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("A withdrawal request is already open for this subscription")
		}
		return nil, apperror.Persistence("Failed to create withdrawal request", err)
	}

	s.logger.Info("REQUESTS", "Withdrawal requested", map[string]interface{}{
		"request_id":      withdrawal.Id,
		"subscription_id": sub.Id,
		"weight":          withdrawal.RequestedWeight,
		"unit":            withdrawal.RequestedUnit,
		"estimated_value": withdrawal.EstimatedValue,
	})
	s.publisher.PublishWithdrawalRequested(ctx, withdrawal.Id, sub.Id, sess.UserID,
		withdrawal.RequestedWeight, string(withdrawal.RequestedUnit), withdrawal.EstimatedValue)

	return mapper.WithdrawalToResponse(withdrawal), nil
}

func requestListSpecs(sess *session.Session, query dto.RequestListQuery) ([]specification.Specification, error) {
	var specs []specification.Specification
	if !sess.IsAdmin() {
		specs = append(specs, specification.UserOwnedBy{UserID: sess.UserID})
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.SubscriptionId != "" {
		id, err := uuid.Parse(query.SubscriptionId)
		if err != nil {
			return nil, apperror.Validation("Invalid subscription_id")
		}
		specs = append(specs, specification.BySubscription{SubscriptionID: id})
	}
	return specs, nil
}

func (s *requestService) ListCancellations(ctx context.Context, sess *session.Session, query dto.RequestListQuery) ([]*dto.CancellationRequestResponse, error) {
	if query.Status != "" {
		if _, ok := lifecycle.ParseCancellationStatus(query.Status); !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown cancellation status '%s'", query.Status))
		}
	}
	specs, err := requestListSpecs(sess, query)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := s.reviewer.ListCancellations(ctx, uow, specs...)
	if err != nil {
		return nil, apperror.Persistence("Failed to load cancellation requests", err)
	}

	res := make([]*dto.CancellationRequestResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, mapper.CancellationToResponse(r))
	}
	return res, nil
}

func (s *requestService) ListWithdrawals(ctx context.Context, sess *session.Session, query dto.RequestListQuery) ([]*dto.WithdrawalRequestResponse, error) {
	if query.Status != "" {
		if _, ok := lifecycle.ParseWithdrawalStatus(query.Status); !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown withdrawal status '%s'", query.Status))
		}
	}
	specs, err := requestListSpecs(sess, query)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := s.reviewer.ListWithdrawals(ctx, uow, specs...)
	if err != nil {
		return nil, apperror.Persistence("Failed to load withdrawal requests", err)
	}

	res := make([]*dto.WithdrawalRequestResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, mapper.WithdrawalToResponse(r))
	}
	return res, nil
}

func (s *requestService) UpdateCancellation(ctx context.Context, id uuid.UUID, req *dto.UpdateRequestStatusRequest) (*dto.CancellationRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	updated, err := s.reviewer.ReviewCancellation(ctx, uow, id, review.Decision{Status: req.Status, Notes: req.ResolutionNotes})
	if err != nil {
		return nil, err
	}
	return mapper.CancellationToResponse(updated), nil
}

func (s *requestService) UpdateWithdrawal(ctx context.Context, id uuid.UUID, req *dto.UpdateRequestStatusRequest) (*dto.WithdrawalRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	updated, err := s.reviewer.ReviewWithdrawal(ctx, uow, id, review.Decision{Status: req.Status, Notes: req.ResolutionNotes})
	if err != nil {
		return nil, err
	}
	return mapper.WithdrawalToResponse(updated), nil
}
