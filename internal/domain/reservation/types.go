package reservation

// Status values are part of the wire contract; the exact strings matter for
// cross-service compatibility.
type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusCompleted   Status = "completed"
	StatusNoShow      Status = "no-show"
	StatusRescheduled Status = "rescheduled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow, StatusRescheduled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further lifecycle transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow, StatusRescheduled:
		return true
	default:
		return false
	}
}

// ClaimsCapacity reports whether a reservation in this status still blocks
// the resource for overlapping windows. Rescheduled originals are excluded
// because the replacement reservation holds the capacity instead.
func (s Status) ClaimsCapacity() bool {
	switch s {
	case StatusCancelled, StatusNoShow, StatusRescheduled:
		return false
	default:
		return true
	}
}

var legalTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
}

// CanTransitionTo reports whether s -> next is a legal lifecycle edge.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range legalTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentCredit        PaymentStatus = "credit"
)

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentUnpaid, PaymentPartiallyPaid, PaymentPaid, PaymentRefunded, PaymentCredit:
		return true
	default:
		return false
	}
}

// NotificationType identifies the lifecycle event a queued notification is for.
type NotificationType string

const (
	NotifyCreated   NotificationType = "reservation_created"
	NotifyConfirmed NotificationType = "reservation_confirmed"
	NotifyCancelled NotificationType = "reservation_cancelled"
	NotifyCompleted NotificationType = "reservation_completed"
	NotifyPaid      NotificationType = "reservation_paid"
)
