package order

import "errors"

// Status is the lifecycle state of an order.
// Any status may be set from any other; only adding items is gated.
type Status string

const (
	StatusOpen      Status = "open"
	StatusPreparing Status = "preparing"
	StatusServed    Status = "served"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid status")

// UnpaidStatuses are the statuses of orders that still belong to a table's bill.
func UnpaidStatuses() []Status {
	return []Status{StatusOpen, StatusPreparing, StatusServed}
}

func (s Status) String() string {
	return string(s)
}

// IsUnpaid reports whether items can still be added and the order is billable.
func (s Status) IsUnpaid() bool {
	switch s {
	case StatusOpen, StatusPreparing, StatusServed:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusPreparing, StatusServed, StatusPaid, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
