package lifecycle

import "fmt"

// CancellationStatus tracks admin review of a cancellation request.
type CancellationStatus string

const (
	CancellationPending   CancellationStatus = "pending"
	CancellationInReview  CancellationStatus = "in_review"
	CancellationApproved  CancellationStatus = "approved"
	CancellationRejected  CancellationStatus = "rejected"
	CancellationCompleted CancellationStatus = "completed"
)

// WithdrawalStatus tracks fulfilment of a physical withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending        WithdrawalStatus = "pending"
	WithdrawalApproved       WithdrawalStatus = "approved"
	WithdrawalProcessing     WithdrawalStatus = "processing"
	WithdrawalOutForDelivery WithdrawalStatus = "out_for_delivery"
	WithdrawalDelivered      WithdrawalStatus = "delivered"
	WithdrawalRejected       WithdrawalStatus = "rejected"
)

var cancellationFlow = map[CancellationStatus][]CancellationStatus{
	CancellationPending:  {CancellationInReview, CancellationApproved, CancellationRejected},
	CancellationInReview: {CancellationApproved, CancellationRejected},
	CancellationApproved: {CancellationCompleted},
}

var withdrawalFlow = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:        {WithdrawalApproved, WithdrawalRejected},
	WithdrawalApproved:       {WithdrawalProcessing, WithdrawalRejected},
	WithdrawalProcessing:     {WithdrawalOutForDelivery},
	WithdrawalOutForDelivery: {WithdrawalDelivered},
}

// OutstandingCancellation lists the statuses that block another cancellation request.
var OutstandingCancellation = []CancellationStatus{CancellationPending, CancellationInReview, CancellationApproved}

// OutstandingWithdrawal lists the statuses that block another withdrawal request.
var OutstandingWithdrawal = []WithdrawalStatus{WithdrawalPending, WithdrawalApproved, WithdrawalProcessing, WithdrawalOutForDelivery}

func ParseCancellationStatus(s string) (CancellationStatus, bool) {
	switch st := CancellationStatus(s); st {
	case CancellationPending, CancellationInReview, CancellationApproved, CancellationRejected, CancellationCompleted:
		return st, true
	}
	return "", false
}

func ParseWithdrawalStatus(s string) (WithdrawalStatus, bool) {
	switch st := WithdrawalStatus(s); st {
	case WithdrawalPending, WithdrawalApproved, WithdrawalProcessing, WithdrawalOutForDelivery, WithdrawalDelivered, WithdrawalRejected:
		return st, true
	}
	return "", false
}

func (s CancellationStatus) Outstanding() bool {
	for _, o := range OutstandingCancellation {
		if s == o {
			return true
		}
	}
	return false
}

func (s WithdrawalStatus) Outstanding() bool {
	for _, o := range OutstandingWithdrawal {
		if s == o {
			return true
		}
	}
	return false
}

func ReviewCancellation(from, to CancellationStatus) error {
	if from == to {
		return nil
	}
	for _, next := range cancellationFlow[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: cancellation request %s -> %s", ErrInvalidTransition, from, to)
}

func ReviewWithdrawal(from, to WithdrawalStatus) error {
	if from == to {
		return nil
	}
	for _, next := range withdrawalFlow[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: withdrawal request %s -> %s", ErrInvalidTransition, from, to)
}
