package events

import (
	"context"
	"time"

	"pharaohvault-be/internal/pkg/logger"
	pkgEvents "pharaohvault-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Publisher abstracts domain event publishing. Every method is best-effort:
// failures are logged, never returned.
type Publisher interface {
	PublishPendingCreated(ctx context.Context, subscriptionId, userId uuid.UUID, provider, sessionId string)
	PublishCancellationRequested(ctx context.Context, requestId, subscriptionId, userId uuid.UUID, reason string)
	PublishWithdrawalRequested(ctx context.Context, requestId, subscriptionId, userId uuid.UUID, weight float64, unit string, estimatedValue float64)
	PublishRequestStatusUpdated(ctx context.Context, kind string, requestId, subscriptionId uuid.UUID, from, to string)
	PublishInvestmentChanged(ctx context.Context, subscriptionId, userId uuid.UUID, from, to float64, effectiveFrom *time.Time)
	PublishPendingExpired(ctx context.Context, count int, olderThan time.Time)
}

// BusPublisher writes events onto the in-process watermill bus. The consumer
// service relays them to NATS.
type BusPublisher struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewBusPublisher(publisher message.Publisher, topic string, logger logger.ILogger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (p *BusPublisher) publish(evt pkgEvents.BaseEvent) {
	if p == nil || p.publisher == nil {
		return
	}

	payload, err := pkgEvents.Encode(evt)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to encode "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", evt.Type)
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishPendingCreated is emitted once a checkout session exists for a pending subscription.
func (p *BusPublisher) PublishPendingCreated(ctx context.Context, subscriptionId, userId uuid.UUID, provider, sessionId string) {
	p.publish(pkgEvents.New(pkgEvents.SubscriptionPendingCreated, map[string]interface{}{
		"subscription_id": subscriptionId,
		"user_id":         userId,
		"provider":        provider,
		"session_id":      sessionId,
		"entity_type":     "subscription",
		"entity_id":       subscriptionId.String(),
	}))
}

func (p *BusPublisher) PublishCancellationRequested(ctx context.Context, requestId, subscriptionId, userId uuid.UUID, reason string) {
	p.publish(pkgEvents.New(pkgEvents.CancellationRequested, map[string]interface{}{
		"request_id":      requestId,
		"subscription_id": subscriptionId,
		"user_id":         userId,
		"reason":          reason,
		"entity_type":     "cancellation_request",
		"entity_id":       requestId.String(),
	}))
}

func (p *BusPublisher) PublishWithdrawalRequested(ctx context.Context, requestId, subscriptionId, userId uuid.UUID, weight float64, unit string, estimatedValue float64) {
	p.publish(pkgEvents.New(pkgEvents.WithdrawalRequested, map[string]interface{}{
		"request_id":       requestId,
		"subscription_id":  subscriptionId,
		"user_id":          userId,
		"requested_weight": weight,
		"requested_unit":   unit,
		"estimated_value":  estimatedValue,
		"entity_type":      "withdrawal_request",
		"entity_id":        requestId.String(),
	}))
}

// PublishRequestStatusUpdated feeds the out-of-process job that executes approved requests.
func (p *BusPublisher) PublishRequestStatusUpdated(ctx context.Context, kind string, requestId, subscriptionId uuid.UUID, from, to string) {
	p.publish(pkgEvents.New(pkgEvents.RequestStatusUpdated, map[string]interface{}{
		"request_kind":    kind,
		"request_id":      requestId,
		"subscription_id": subscriptionId,
		"from_status":     from,
		"to_status":       to,
		"entity_type":     kind,
		"entity_id":       requestId.String(),
	}))
}

func (p *BusPublisher) PublishInvestmentChanged(ctx context.Context, subscriptionId, userId uuid.UUID, from, to float64, effectiveFrom *time.Time) {
	data := map[string]interface{}{
		"subscription_id": subscriptionId,
		"user_id":         userId,
		"from_amount":     from,
		"to_amount":       to,
		"entity_type":     "subscription",
		"entity_id":       subscriptionId.String(),
	}
	if effectiveFrom != nil {
		data["effective_from"] = effectiveFrom.UTC()
	}
	p.publish(pkgEvents.New(pkgEvents.SubscriptionInvestmentChanged, data))
}

func (p *BusPublisher) PublishPendingExpired(ctx context.Context, count int, olderThan time.Time) {
	p.publish(pkgEvents.New(pkgEvents.PendingSubscriptionsExpired, map[string]interface{}{
		"count":      count,
		"older_than": olderThan.UTC(),
	}))
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) PublishPendingCreated(context.Context, uuid.UUID, uuid.UUID, string, string) {}
func (NopPublisher) PublishCancellationRequested(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, string) {}
func (NopPublisher) PublishWithdrawalRequested(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, float64, string, float64) {}
func (NopPublisher) PublishRequestStatusUpdated(context.Context, string, uuid.UUID, uuid.UUID, string, string) {}
func (NopPublisher) PublishInvestmentChanged(context.Context, uuid.UUID, uuid.UUID, float64, float64, *time.Time) {}
func (NopPublisher) PublishPendingExpired(context.Context, int, time.Time) {}
