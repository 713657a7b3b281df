package service

import (
	"context"

	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventRelay forwards domain events to an external broker.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relay      EventRelay
	logger     logger.ILogger
}

// NewConsumerService drains the in-process event bus. relay may be nil when
// NATS is unavailable; events are then only written to the audit log.
func NewConsumerService(subscriber message.Subscriber, topicName string, relay EventRelay, logger logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relay:      relay,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	evt, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	cs.logger.Info("EVENTS", evt.Type, map[string]interface{}{
		"message_id":  msg.UUID,
		"occurred_at": evt.OccurredAt,
		"data":        evt.Data,
	})

	if cs.relay != nil {
		if err := cs.relay.Publish(ctx, evt); err != nil {
			// Relay is best-effort; a Nack here would redeliver forever while the broker is down.
			cs.logger.Warn("EVENTS", "Failed to relay event to broker", map[string]interface{}{
				"type":  evt.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
