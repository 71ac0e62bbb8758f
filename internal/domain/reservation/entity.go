package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
	ErrInvalidPartySize  = errors.New("party size must be at least 1")
	ErrPartyTooLarge     = errors.New("party size exceeds resource capacity")
	ErrNumberAssigned    = errors.New("reservation number already assigned")
)

type Reservation struct {
	id                 uuid.UUID
	resourceID         uuid.UUID
	resource           ResourceSnapshot
	number             string
	window             Window
	slots              []TimeSlot
	status             Status
	totalPrice         Money
	paymentStatus      PaymentStatus
	paymentDetails     string
	deposit            Deposit
	customer           Customer
	partySize          int32
	cancellationReason string
	cancellationPolicy string
	recurrence         Recurrence
	source             string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewReservation builds a pending, unpaid reservation. The reservation number
// is assigned separately (AssignNumber) because it comes from an external
// atomic sequence.
func NewReservation(
	snap ResourceSnapshot,
	window Window,
	customer Customer,
	partySize int32,
	slots []TimeSlot,
	deposit Deposit,
	recurrence Recurrence,
	policy string,
	source string,
) (*Reservation, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}
	if partySize > snap.Capacity {
		return nil, ErrPartyTooLarge
	}
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if err := recurrence.Validate(); err != nil {
		return nil, err
	}

	return &Reservation{
		id:                 uuid.New(),
		resourceID:         snap.ID,
		resource:           snap,
		window:             window,
		slots:              slots,
		status:             StatusPending,
		paymentStatus:      PaymentUnpaid,
		deposit:            deposit,
		customer:           customer,
		partySize:          partySize,
		recurrence:         recurrence,
		cancellationPolicy: policy,
		source:             source,
	}, nil
}

func ReconstructReservation(
	id, resourceID uuid.UUID,
	snap ResourceSnapshot,
	number string,
	window Window,
	slots []TimeSlot,
	status Status,
	totalPrice Money,
	paymentStatus PaymentStatus,
	paymentDetails string,
	deposit Deposit,
	customer Customer,
	partySize int32,
	cancellationReason, cancellationPolicy string,
	recurrence Recurrence,
	source string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		resourceID:         resourceID,
		resource:           snap,
		number:             number,
		window:             window,
		slots:              slots,
		status:             status,
		totalPrice:         totalPrice,
		paymentStatus:      paymentStatus,
		paymentDetails:     paymentDetails,
		deposit:            deposit,
		customer:           customer,
		partySize:          partySize,
		cancellationReason: cancellationReason,
		cancellationPolicy: cancellationPolicy,
		recurrence:         recurrence,
		source:             source,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// AssignNumber sets the reservation number exactly once.
func (r *Reservation) AssignNumber(number string) error {
	if r.number != "" {
		return ErrNumberAssigned
	}
	r.number = number
	return nil
}

// SetTotalPrice stores a recomputed total. Totals are always derived by the
// price calculator, never hand-edited.
func (r *Reservation) SetTotalPrice(m Money) {
	r.totalPrice = m
}

// Confirm moves pending -> confirmed. Confirming an already-confirmed
// reservation is an explicit no-op: changed reports whether state moved, so
// callers can avoid enqueueing duplicate notifications.
func (r *Reservation) Confirm() (changed bool, err error) {
	if r.status == StatusConfirmed {
		return false, nil
	}
	if !r.status.CanTransitionTo(StatusConfirmed) {
		return false, transitionErr(r.status, StatusConfirmed)
	}
	r.status = StatusConfirmed
	return true, nil
}

func (r *Reservation) Cancel(reason string) error {
	if !r.status.CanTransitionTo(StatusCancelled) {
		return transitionErr(r.status, StatusCancelled)
	}
	r.status = StatusCancelled
	r.cancellationReason = reason
	return nil
}

func (r *Reservation) Complete() error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return transitionErr(r.status, StatusCompleted)
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) MarkNoShow() error {
	if !r.status.CanTransitionTo(StatusNoShow) {
		return transitionErr(r.status, StatusNoShow)
	}
	r.status = StatusNoShow
	return nil
}

// MarkRescheduled closes the original reservation after a replacement has
// been created. The original is kept, not deleted.
func (r *Reservation) MarkRescheduled() error {
	if !r.status.CanTransitionTo(StatusRescheduled) {
		return transitionErr(r.status, StatusRescheduled)
	}
	r.status = StatusRescheduled
	return nil
}

// MarkAsPaid records that an external payment collaborator completed a
// charge. The engine never initiates payments itself.
func (r *Reservation) MarkAsPaid(details string, at time.Time) error {
	if r.status == StatusCancelled {
		return transitionErr(r.status, r.status)
	}
	r.paymentStatus = PaymentPaid
	r.paymentDetails = details
	if r.deposit.Required && !r.deposit.Paid {
		r.deposit.Paid = true
		r.deposit.PaidAt = &at
	}
	return nil
}

func transitionErr(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func (r *Reservation) IsActive() bool {
	return r.status.ClaimsCapacity()
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.window.End())
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) ResourceID() uuid.UUID        { return r.resourceID }
func (r *Reservation) Resource() ResourceSnapshot   { return r.resource }
func (r *Reservation) Number() string               { return r.number }
func (r *Reservation) Window() Window               { return r.window }
func (r *Reservation) Slots() []TimeSlot            { return r.slots }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) TotalPrice() Money            { return r.totalPrice }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) PaymentDetails() string       { return r.paymentDetails }
func (r *Reservation) Deposit() Deposit             { return r.deposit }
func (r *Reservation) Customer() Customer           { return r.customer }
func (r *Reservation) PartySize() int32             { return r.partySize }
func (r *Reservation) CancellationReason() string   { return r.cancellationReason }
func (r *Reservation) CancellationPolicy() string   { return r.cancellationPolicy }
func (r *Reservation) Recurrence() Recurrence       { return r.recurrence }
func (r *Reservation) Source() string               { return r.source }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }
