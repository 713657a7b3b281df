package nats

import (
	"testing"

	"pharaohvault-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "vault.events.CANCELLATION_REQUESTED", Subject(events.CancellationRequested))
}
