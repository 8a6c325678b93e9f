package models

import "github.com/google/uuid"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

// OrderProgression is the forward order of non-terminal and completed states.
var OrderProgression = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusServed,
	StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	return s.rank() >= 0
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) rank() int {
	for i, st := range OrderProgression {
		if st == s {
			return i
		}
	}
	return -1
}

// IsForwardTransition reports whether moving from one status to another
// follows the progression. Cancelling is forward from any non-terminal state.
// Nothing in the write path enforces this; it is offered to callers.
func IsForwardTransition(from, to OrderStatus) bool {
	if from.Terminal() || !to.Valid() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fr := from.rank()
	return fr >= 0 && to.rank() > fr
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
