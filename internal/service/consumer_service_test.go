package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pharaohvault-be/internal/pkg/logger"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRelay struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingRelay) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingRelay) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestConsumerRelaysBusEvents(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	relay := &recordingRelay{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(bus, "domain.events", relay, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	pub := adminEvents.NewBusPublisher(bus, "domain.events", logger.NewNopLogger())
	pub.PublishCancellationRequested(ctx, uuid.New(), uuid.New(), uuid.New(), "moving abroad")

	assert.Eventually(t, func() bool { return relay.count() == 1 }, time.Second, 10*time.Millisecond)
	relay.mu.Lock()
	assert.Equal(t, events.CancellationRequested, relay.events[0].EventType())
	relay.mu.Unlock()
}

func TestConsumerAcksWhenRelayFails(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	relay := &recordingRelay{err: errors.New("nats down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(bus, "domain.events", relay, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	pub := adminEvents.NewBusPublisher(bus, "domain.events", logger.NewNopLogger())
	pub.PublishPendingExpired(ctx, 2, time.Now())

	assert.Eventually(t, func() bool { return relay.count() == 1 }, time.Second, 10*time.Millisecond)
	// No redelivery after a failed relay.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, relay.count())
}
