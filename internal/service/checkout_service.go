package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/lifecycle"
	"pharaohvault-be/pkg/metal"
	"pharaohvault-be/pkg/payment"

	"github.com/google/uuid"
)

// CheckoutInput is the subscriber's plan choice plus the identity taken from the session.
type CheckoutInput struct {
	UserId           uuid.UUID
	Email            string
	Metal            string
	TargetWeight     float64
	TargetUnit       string
	InvestmentAmount string
	IdempotencyKey   string
}

type ICheckoutService interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*dto.CheckoutSessionResponse, error)
}

type checkoutService struct {
	uowFactory    unitofwork.RepositoryFactory
	gateway       payment.Gateway
	minInvestment int64
	publisher     adminEvents.Publisher
	logger        logger.ILogger
}

func NewCheckoutService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	policy config.InvestmentPolicy,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) ICheckoutService {
	return &checkoutService{
		uowFactory:    uowFactory,
		gateway:       gateway,
		minInvestment: int64(policy.CheckoutMin),
		publisher:     publisher,
		logger:        logger,
	}
}

type checkoutOrder struct {
	metal        metal.Metal
	unit         metal.Unit
	targetWeight float64
	amount       int64
}

var leadingInteger = regexp.MustCompile(`^[+-]?\d+`)

// parseWholeAmount reads the leading integer of raw, truncating any fraction.
func parseWholeAmount(raw string) (int64, bool) {
	digits := leadingInteger.FindString(strings.TrimSpace(raw))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s *checkoutService) validate(in CheckoutInput) (*checkoutOrder, error) {
	var missing []string
	if in.UserId == uuid.Nil {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "user_email")
	}
	if strings.TrimSpace(in.Metal) == "" {
		missing = append(missing, "metal")
	}
	if in.TargetWeight == 0 {
		missing = append(missing, "target_weight")
	}
	if strings.TrimSpace(in.TargetUnit) == "" {
		missing = append(missing, "target_unit")
	}
	if strings.TrimSpace(in.InvestmentAmount) == "" {
		missing = append(missing, "investment_amount")
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("Missing required parameters in the request body.").
			WithDetail("missing", missing)
	}

	m, ok := metal.ParseMetal(in.Metal)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported metal '%s'. Must be gold or silver.", in.Metal))
	}
	unit, ok := metal.ParseUnit(in.TargetUnit)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("Unsupported target unit '%s'. Must be g or oz.", in.TargetUnit))
	}
	if in.TargetWeight < 0 {
		return nil, apperror.Validation("Target weight must be greater than zero.")
	}

	amount, ok := parseWholeAmount(in.InvestmentAmount)
	if !ok || amount < s.minInvestment {
		return nil, apperror.Validation(fmt.Sprintf(
			"Invalid investment amount: '%s'. Must be a whole number >= %d.", in.InvestmentAmount, s.minInvestment))
	}

	return &checkoutOrder{metal: m, unit: unit, targetWeight: in.TargetWeight, amount: amount}, nil
}

// CreateCheckoutSession records a pending subscription and opens a processor
// checkout session for it. The pending row is written before the processor is
// contacted; rows whose session never materialises are expired by the
// reconciliation sweep.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*dto.CheckoutSessionResponse, error) {
	order, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if in.IdempotencyKey != "" {
		existing, err := uow.SubscriptionRepository().FindOne(ctx,
			specification.ByIdempotencyKey{Key: in.IdempotencyKey},
			specification.UserOwnedBy{UserID: in.UserId},
		)
		if err != nil {
			return nil, apperror.Persistence("Failed to look up checkout", err)
		}
		if existing != nil {
			return s.resume(ctx, uow, existing, order, in)
		}
	}

	customerId, err := s.resolveCustomer(ctx, uow, in)
	if err != nil {
		return nil, err
	}

	sub := &entity.Subscription{
		Id:                 uuid.New(),
		UserId:             in.UserId,
		Metal:              order.metal,
		PlanName:           fmt.Sprintf("%s Plan", order.metal.DisplayName()),
		TargetWeight:       order.targetWeight,
		TargetUnit:         order.unit,
		MonthlyInvestment:  float64(order.amount),
		Quantity:           1,
		AccumulatedValue:   0,
		AccumulatedWeight:  0,
		Status:             lifecycle.StatusPendingPayment,
		Provider:           s.gateway.Name(),
		ProviderCustomerId: customerId,
		CheckoutState:      entity.CheckoutStateIntentRecorded,
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		sub.IdempotencyKey = &key
	}

	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, apperror.Persistence("Database connection issue", err)
	}

	s.logger.Info("CHECKOUT", "Pending subscription recorded", map[string]interface{}{
		"subscription_id": sub.Id,
		"user_id":         sub.UserId,
		"metal":           sub.Metal,
		"amount":          order.amount,
	})

	return s.openSession(ctx, uow, sub, order, in)
}

func (s *checkoutService) resume(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, order *checkoutOrder, in CheckoutInput) (*dto.CheckoutSessionResponse, error) {
	if sub.Metal != order.metal || sub.TargetUnit != order.unit ||
		sub.TargetWeight != order.targetWeight || sub.MonthlyInvestment != float64(order.amount) {
		return nil, apperror.Conflict("Idempotency-Key was already used for a different checkout")
	}
	if sub.Status != lifecycle.StatusPendingPayment {
		return nil, apperror.Conflict("Checkout already completed for this Idempotency-Key")
	}

	if sub.CheckoutState == entity.CheckoutStateSessionCreated && sub.CheckoutSessionId != nil {
		s.logger.Info("CHECKOUT", "Replaying checkout session", map[string]interface{}{
			"subscription_id": sub.Id,
		})
		return checkoutResponse(sub, s.gateway.Mode()), nil
	}

	return s.openSession(ctx, uow, sub, order, in)
}

func (s *checkoutService) resolveCustomer(ctx context.Context, uow unitofwork.UnitOfWork, in CheckoutInput) (string, error) {
	repo := uow.BillingCustomerRepository()
	existing, err := repo.FindOne(ctx,
		specification.UserOwnedBy{UserID: in.UserId},
		specification.ByProvider{Provider: s.gateway.Name()},
	)
	if err != nil {
		return "", apperror.Persistence("Database error fetching billing customer", err)
	}
	if existing != nil && existing.CustomerId != "" {
		return existing.CustomerId, nil
	}

	customerId, err := s.gateway.CreateCustomer(ctx, payment.CustomerRequest{
		UserID: in.UserId.String(),
		Email:  in.Email,
	})
	if err != nil {
		return "", gatewayError("Failed to create billing customer", err)
	}

	if err := repo.Upsert(ctx, &entity.BillingCustomer{
		UserId:     in.UserId,
		Provider:   s.gateway.Name(),
		CustomerId: customerId,
	}); err != nil {
		s.logger.Warn("CHECKOUT", "Could not persist billing customer id", map[string]interface{}{
			"user_id":     in.UserId,
			"customer_id": customerId,
			"error":       err.Error(),
		})
	}

	return customerId, nil
}

func (s *checkoutService) openSession(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, order *checkoutOrder, in CheckoutInput) (*dto.CheckoutSessionResponse, error) {
	session, err := s.gateway.CreateCheckoutSession(ctx, payment.SessionRequest{
		CustomerID:     sub.ProviderCustomerId,
		SubscriptionID: sub.Id.String(),
		UserID:         in.UserId.String(),
		Email:          in.Email,
		Metal:          order.metal,
		TargetWeight:   order.targetWeight,
		TargetUnit:     order.unit,
		MonthlyAmount:  order.amount,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err == nil {
		err = checkSessionHandle(session)
	}
	if err != nil {
		s.mark(ctx, uow, sub, entity.CheckoutMarker{State: entity.CheckoutStateSessionFailed})
		s.logger.Error("CHECKOUT", "Checkout session creation failed", map[string]interface{}{
			"subscription_id": sub.Id,
			"provider":        s.gateway.Name(),
			"error":           err.Error(),
		})
		return nil, gatewayError("Failed to create checkout session", err)
	}

	marker := entity.CheckoutMarker{
		State:     entity.CheckoutStateSessionCreated,
		SessionId: &session.ID,
	}
	if session.ClientSecret != "" {
		marker.ClientSecret = &session.ClientSecret
	}
	if session.RedirectURL != "" {
		marker.RedirectURL = &session.RedirectURL
	}
	s.mark(ctx, uow, sub, marker)

	s.publisher.PublishPendingCreated(ctx, sub.Id, sub.UserId, s.gateway.Name(), session.ID)

	return checkoutResponse(sub, session.Mode), nil
}

// mark persists saga progress. A lost marker is not fatal: the processor
// correlates the session by its metadata.
func (s *checkoutService) mark(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, marker entity.CheckoutMarker) {
	sub.CheckoutState = marker.State
	sub.CheckoutSessionId = marker.SessionId
	sub.CheckoutClientSecret = marker.ClientSecret
	sub.CheckoutRedirectURL = marker.RedirectURL

	if err := uow.SubscriptionRepository().UpdateCheckout(ctx, sub.Id, marker); err != nil {
		s.logger.Warn("CHECKOUT", "Could not record checkout progress", map[string]interface{}{
			"subscription_id": sub.Id,
			"state":           marker.State,
			"error":           err.Error(),
		})
	}
}

func checkSessionHandle(session *payment.Session) error {
	switch {
	case session == nil:
		return errors.New("payment processor returned no session")
	case session.Mode == payment.ModeEmbedded && session.ClientSecret == "":
		return errors.New("checkout session was created but client_secret was missing from the response")
	case session.Mode == payment.ModeHosted && session.RedirectURL == "":
		return errors.New("checkout session was created but redirect_url was missing from the response")
	}
	return nil
}

func checkoutResponse(sub *entity.Subscription, mode payment.Mode) *dto.CheckoutSessionResponse {
	res := &dto.CheckoutSessionResponse{
		SubscriptionId: sub.Id,
		Mode:           string(mode),
	}
	if sub.CheckoutSessionId != nil {
		res.SessionId = *sub.CheckoutSessionId
	}
	if sub.CheckoutClientSecret != nil {
		res.ClientSecret = *sub.CheckoutClientSecret
	}
	if sub.CheckoutRedirectURL != nil {
		res.RedirectURL = *sub.CheckoutRedirectURL
	}
	return res
}

func gatewayError(message string, err error) error {
	var pe *payment.ProviderError
	if errors.As(err, &pe) {
		return apperror.Upstream(pe.Type, pe.Message, err)
	}
	return apperror.Upstream("api_error", message, err)
}
