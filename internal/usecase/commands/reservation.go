package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/clock"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotInput struct {
	Start             time.Time
	End               time.Time
	PriceCents        int64
	SpecialPriceCents *int64
}

type CreateReservationCommand struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	PartySize  int32
	Customer   reservation.Customer
	// Slots optionally carries explicit slot prices; when empty the total is
	// derived from the resource base price and unit.
	Slots              []SlotInput
	DepositRequired    bool
	DepositAmountCents int64
	Recurrence         reservation.Recurrence
	CancellationPolicy string
	Source             string
}

type RescheduleCommand struct {
	ReservationID uuid.UUID
	NewStart      time.Time
	NewEnd        time.Time
}

type ReservationCommands interface {
	Create(ctx context.Context, cmd CreateReservationCommand) (uuid.UUID, error)
	Confirm(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
	Complete(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
	MarkAsPaid(ctx context.Context, id uuid.UUID, details string) error
	// Reschedule books a replacement window and marks the original
	// reservation rescheduled; it returns the replacement's id.
	Reschedule(ctx context.Context, cmd RescheduleCommand) (uuid.UUID, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	numbers *reservation.NumberGenerator
	pricing reservation.PriceCalculator
	clock   clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	numbers *reservation.NumberGenerator,
	pricing reservation.PriceCalculator,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		numbers: numbers,
		pricing: pricing,
		clock:   clk,
	}
}

func (c *reservationCommandsImpl) Create(ctx context.Context, cmd CreateReservationCommand) (uuid.UUID, error) {
	window, err := reservation.NewWindow(cmd.Start, cmd.End)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidRange)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := lockActiveResource(ctx, tx, cmd.ResourceID)
		if err != nil {
			return err
		}
		if cmd.PartySize > snap.Capacity {
			return errs.ErrCapacityExceeded
		}

		// Re-validated under the resource lock: this closes the gap between
		// the caller's availability check and the insert.
		busy, err := tx.Reservations().OverlappingClaims(ctx, cmd.ResourceID, window, nil)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !availability.Fits(window, busy, snap.Capacity, cmd.PartySize) {
			return errs.ErrConflict
		}

		entity, err := newReservationFromCommand(snap, window, cmd)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		number, err := c.numbers.Generate(ctx, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrSequenceUnavailable)
		}
		if err := entity.AssignNumber(number); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		reservation.Reprice(entity, c.pricing)

		if err := tx.Reservations().Create(ctx, entity); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := enqueueNotification(ctx, tx, entity, reservation.NotifyCreated); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		createdID = entity.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *reservationCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error {
		changed, err := r.Confirm()
		if err != nil {
			return err
		}
		if !changed {
			// Idempotent re-confirm: no write, no duplicate notification.
			return errSkipPersist
		}
		return enqueueNotification(ctx, tx, r, reservation.NotifyConfirmed)
	})
}

func (c *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	return c.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error {
		if err := r.Cancel(reason); err != nil {
			return err
		}
		return enqueueNotification(ctx, tx, r, reservation.NotifyCancelled)
	})
}

func (c *reservationCommandsImpl) Complete(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error {
		if err := r.Complete(); err != nil {
			return err
		}
		return enqueueNotification(ctx, tx, r, reservation.NotifyCompleted)
	})
}

func (c *reservationCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(_ context.Context, _ shared.Tx, r *reservation.Reservation) error {
		return r.MarkNoShow()
	})
}

func (c *reservationCommandsImpl) MarkAsPaid(ctx context.Context, id uuid.UUID, details string) error {
	return c.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error {
		if err := r.MarkAsPaid(details, c.clock.Now()); err != nil {
			return err
		}
		return enqueueNotification(ctx, tx, r, reservation.NotifyPaid)
	})
}

func (c *reservationCommandsImpl) Reschedule(ctx context.Context, cmd RescheduleCommand) (uuid.UUID, error) {
	window, err := reservation.NewWindow(cmd.NewStart, cmd.NewEnd)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidRange)
	}

	var replacementID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		original, err := getReservationForUpdate(ctx, tx, cmd.ReservationID)
		if err != nil {
			return err
		}

		snap, err := lockActiveResource(ctx, tx, original.ResourceID())
		if err != nil {
			return err
		}

		// The original's own claim must not block its replacement window.
		excludeID := original.ID()
		busy, err := tx.Reservations().OverlappingClaims(ctx, original.ResourceID(), window, &excludeID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !availability.Fits(window, busy, snap.Capacity, original.PartySize()) {
			return errs.ErrConflict
		}

		replacement, err := reservation.NewReservation(
			original.Resource(),
			window,
			original.Customer(),
			original.PartySize(),
			nil,
			original.Deposit(),
			original.Recurrence(),
			original.CancellationPolicy(),
			original.Source(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		number, err := c.numbers.Generate(ctx, c.clock.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrSequenceUnavailable)
		}
		if err := replacement.AssignNumber(number); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		reservation.Reprice(replacement, c.pricing)

		if err := original.MarkRescheduled(); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}

		if err := tx.Reservations().Create(ctx, replacement); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Reservations().Update(ctx, original); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := enqueueNotification(ctx, tx, replacement, reservation.NotifyCreated); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		replacementID = replacement.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return replacementID, nil
}

// errSkipPersist short-circuits mutate for intentional no-ops.
var errSkipPersist = errors.New("skip persist")

func (c *reservationCommandsImpl) mutate(
	ctx context.Context,
	id uuid.UUID,
	apply func(ctx context.Context, tx shared.Tx, r *reservation.Reservation) error,
) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := getReservationForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := apply(ctx, tx, r); err != nil {
			if errors.Is(err, errSkipPersist) {
				return nil
			}
			if errors.Is(err, reservation.ErrInvalidTransition) {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			return err
		}

		if err := tx.Reservations().Update(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func lockActiveResource(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	snap, err := tx.Resources().LockByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !snap.IsActive {
		return nil, errs.ErrResourceInactive
	}
	return snap, nil
}

func getReservationForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reservations().GetForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return r, nil
}

func newReservationFromCommand(snap *shared.ResourceSnapshot, window reservation.Window, cmd CreateReservationCommand) (*reservation.Reservation, error) {
	resSnap := reservation.ResourceSnapshot{
		ID:        snap.ID,
		Name:      snap.Name,
		Type:      snap.Type,
		Capacity:  snap.Capacity,
		BasePrice: snap.BasePriceCents,
		PriceUnit: snap.PriceUnit,
	}

	slots := make([]reservation.TimeSlot, len(cmd.Slots))
	for i, s := range cmd.Slots {
		slots[i] = reservation.TimeSlot{
			Start:        s.Start,
			End:          s.End,
			MaxCapacity:  snap.Capacity,
			IsAvailable:  true,
			PriceCents:   s.PriceCents,
			SpecialPrice: s.SpecialPriceCents,
		}
	}

	return reservation.NewReservation(
		resSnap,
		window,
		cmd.Customer,
		cmd.PartySize,
		slots,
		reservation.Deposit{Required: cmd.DepositRequired, AmountCents: cmd.DepositAmountCents},
		cmd.Recurrence,
		cmd.CancellationPolicy,
		cmd.Source,
	)
}

func enqueueNotification(ctx context.Context, tx shared.Tx, r *reservation.Reservation, typ reservation.NotificationType) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id":     r.ID(),
		"reservation_number": r.Number(),
		"type":               typ,
		"recipient":          r.Customer().Email,
	})
	if err != nil {
		return err
	}

	return tx.Notifications().Enqueue(ctx, shared.NotificationJob{
		ReservationID: r.ID(),
		Type:          typ,
		Recipient:     r.Customer().Email,
		Template:      string(typ),
		Payload:       payload,
	})
}
