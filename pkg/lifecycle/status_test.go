package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{"pending to active", StatusPendingPayment, StatusActive, false},
		{"pending to trialing", StatusPendingPayment, StatusTrialing, false},
		{"pending to expired", StatusPendingPayment, StatusIncompleteExpired, false},
		{"active to canceling", StatusActive, StatusCanceling, false},
		{"canceling back to active", StatusCanceling, StatusActive, false},
		{"trialing to canceling", StatusTrialing, StatusCanceling, false},
		{"canceling to canceled", StatusCanceling, StatusCanceled, false},
		{"active to past due", StatusActive, StatusPastDue, false},
		{"past due recovers", StatusPastDue, StatusActive, false},
		{"past due to unpaid", StatusPastDue, StatusUnpaid, false},
		{"incomplete to active", StatusIncomplete, StatusActive, false},
		{"same status", StatusActive, StatusActive, false},
		{"pending cannot cancel", StatusPendingPayment, StatusCanceled, true},
		{"canceled is terminal", StatusCanceled, StatusActive, true},
		{"expired is terminal", StatusIncompleteExpired, StatusActive, true},
		{"unpaid cannot reactivate", StatusUnpaid, StatusActive, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.from, tt.to)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidTransition))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range Statuses {
		if !IsTerminal(from) {
			continue
		}
		for _, to := range Statuses {
			if from != to && CanTransition(from, to) {
				t.Errorf("terminal status %s allows transition to %s", from, to)
			}
		}
	}
}

func TestLabelCoversEveryStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.NotEqual(t, string(s), Label(s), "status %s has no label", s)
		assert.NotEqual(t, "neutral", Tone(s), "status %s has no tone", s)
	}
	assert.Equal(t, "Expired", Label(StatusIncompleteExpired))
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("past_due")
	assert.True(t, ok)
	assert.Equal(t, StatusPastDue, s)

	_, ok = ParseStatus("paused")
	assert.False(t, ok)
}
