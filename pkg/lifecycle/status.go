package lifecycle

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a metal subscription.
type Status string

const (
	StatusPendingPayment    Status = "pending_payment"
	StatusActive            Status = "active"
	StatusTrialing          Status = "trialing"
	StatusIncomplete        Status = "incomplete"
	StatusIncompleteExpired Status = "incomplete_expired"
	StatusPastDue           Status = "past_due"
	StatusUnpaid            Status = "unpaid"
	StatusCanceling         Status = "canceling"
	StatusCanceled          Status = "canceled"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusPendingPayment,
	StatusActive,
	StatusTrialing,
	StatusIncomplete,
	StatusIncompleteExpired,
	StatusPastDue,
	StatusUnpaid,
	StatusCanceling,
	StatusCanceled,
}

var ErrInvalidTransition = errors.New("invalid status transition")

var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusActive, StatusTrialing, StatusIncomplete, StatusIncompleteExpired},
	StatusActive:         {StatusCanceling, StatusCanceled, StatusPastDue},
	StatusTrialing:       {StatusCanceling, StatusCanceled},
	StatusCanceling:      {StatusActive, StatusTrialing, StatusCanceled},
	StatusPastDue:        {StatusActive, StatusUnpaid, StatusCanceled},
	StatusIncomplete:     {StatusActive, StatusIncompleteExpired},
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// CanTransition reports whether moving from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to. A no-op move is allowed.
func Transition(from, to Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

func IsTerminal(s Status) bool {
	return s == StatusCanceled || s == StatusIncompleteExpired
}

// Label is the human readable status name.
func Label(s Status) string {
	switch s {
	case StatusPendingPayment:
		return "Pending Payment"
	case StatusActive:
		return "Active"
	case StatusTrialing:
		return "Trialing"
	case StatusIncomplete:
		return "Incomplete"
	case StatusIncompleteExpired:
		return "Expired"
	case StatusPastDue:
		return "Past Due"
	case StatusUnpaid:
		return "Unpaid"
	case StatusCanceling:
		return "Canceling"
	case StatusCanceled:
		return "Canceled"
	}
	return string(s)
}

// Tone is the badge color family shown next to a status.
func Tone(s Status) string {
	switch s {
	case StatusActive, StatusTrialing:
		return "success"
	case StatusPendingPayment, StatusIncomplete, StatusCanceling:
		return "warning"
	case StatusPastDue, StatusUnpaid:
		return "danger"
	case StatusCanceled, StatusIncompleteExpired:
		return "muted"
	}
	return "neutral"
}
