package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Domain event types.
const (
	SubscriptionPendingCreated    = "SUBSCRIPTION_PENDING_CREATED"
	CancellationRequested         = "CANCELLATION_REQUESTED"
	WithdrawalRequested           = "WITHDRAWAL_REQUESTED"
	RequestStatusUpdated          = "REQUEST_STATUS_UPDATED"
	SubscriptionInvestmentChanged = "SUBSCRIPTION_INVESTMENT_CHANGED"
	PendingSubscriptionsExpired   = "PENDING_SUBSCRIPTIONS_EXPIRED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Encode serializes any Event into the bus envelope.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
}

func Decode(raw []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}
