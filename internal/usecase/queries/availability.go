package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/infra"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type CheckAvailabilityParams struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	PartySize  int32
	// ExcludeReservationID omits one reservation from overlap checks, for
	// in-place edits of an existing booking.
	ExcludeReservationID *uuid.UUID
}

type AvailabilityQueries interface {
	Check(ctx context.Context, params CheckAvailabilityParams) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
	booking      config.BookingConfig
}

func NewAvailabilityQueries(resources ResourceReadStore, reservations ReservationReadStore, booking config.BookingConfig) AvailabilityQueries {
	return &availabilityQueriesImpl{
		resources:    resources,
		reservations: reservations,
		booking:      booking,
	}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, params CheckAvailabilityParams) (*AvailabilityView, error) {
	if params.PartySize < 1 {
		params.PartySize = 1
	}

	window, err := reservation.NewWindow(params.Start, params.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidRange)
	}

	res, err := q.resources.FindByID(ctx, params.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !res.IsActive {
		return nil, errs.ErrResourceInactive
	}
	if params.PartySize > res.Capacity {
		return nil, errs.ErrCapacityExceeded
	}

	busy, err := q.reservations.BusyIntervals(ctx, params.ResourceID, window, params.ExcludeReservationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slots := availability.Slots(availability.Params{
		Window:     window,
		Capacity:   res.Capacity,
		PartySize:  params.PartySize,
		PriceCents: res.BasePriceCents,
		Increment:  q.booking.SlotIncrement,
		MaxSlots:   q.booking.MaxSlotsPerQuery,
		Busy:       busy,
	})

	return &AvailabilityView{
		Resource:       res,
		IsAvailable:    len(slots) > 0,
		AvailableSlots: toSlotViews(slots),
	}, nil
}

func toSlotViews(slots []reservation.TimeSlot) []SlotView {
	out := make([]SlotView, len(slots))
	for i, s := range slots {
		out[i] = SlotView{
			Start:             s.Start,
			End:               s.End,
			MaxCapacity:       s.MaxCapacity,
			CurrentBookings:   s.CurrentBookings,
			IsAvailable:       s.IsAvailable,
			PriceCents:        s.PriceCents,
			SpecialPriceCents: s.SpecialPrice,
		}
	}
	return out
}
