package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type PreviewOccurrencesParams struct {
	ResourceID uuid.UUID
	Pattern    reservation.Pattern
	// Start is the first candidate occurrence; Until bounds the expansion.
	Start       time.Time
	Until       time.Time
	Duration    time.Duration
	PartySize   int32
	Exceptions  []time.Time
	CustomDates []time.Time
}

// RecurrenceQueries previews a recurring booking: it expands the pattern into
// candidate occurrence dates and flags, per occurrence, whether the resource
// has capacity for a window of the given duration.
type RecurrenceQueries interface {
	Preview(ctx context.Context, params PreviewOccurrencesParams) ([]OccurrenceView, error)
}

type recurrenceQueriesImpl struct {
	availability AvailabilityQueries
	booking      config.BookingConfig
}

func NewRecurrenceQueries(availabilityQueries AvailabilityQueries, booking config.BookingConfig) RecurrenceQueries {
	return &recurrenceQueriesImpl{
		availability: availabilityQueries,
		booking:      booking,
	}
}

func (q *recurrenceQueriesImpl) Preview(ctx context.Context, params PreviewOccurrencesParams) ([]OccurrenceView, error) {
	if params.Duration <= 0 {
		return nil, errs.ErrInvalidRange
	}
	if params.Until.Before(params.Start) {
		return nil, errs.ErrInvalidRange
	}

	rec := reservation.Recurrence{
		IsRecurring: true,
		Pattern:     params.Pattern,
		Exceptions:  params.Exceptions,
		CustomDates: params.CustomDates,
	}
	if err := rec.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	maxOccurrences := q.booking.MaxOccurrences
	if maxOccurrences <= 0 {
		maxOccurrences = 100
	}

	var out []OccurrenceView
	for date := range rec.Expand(params.Start, params.Until) {
		if len(out) >= maxOccurrences {
			break
		}
		view, err := q.availability.Check(ctx, CheckAvailabilityParams{
			ResourceID: params.ResourceID,
			Start:      date,
			End:        date.Add(params.Duration),
			PartySize:  params.PartySize,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, OccurrenceView{
			Date:        date,
			IsAvailable: occurrenceFits(view, date, date.Add(params.Duration)),
		})
	}
	return out, nil
}

// occurrenceFits requires the whole occurrence window free, not just one slot.
func occurrenceFits(view *AvailabilityView, start, end time.Time) bool {
	covered := start
	for _, s := range view.AvailableSlots {
		if s.Start.After(covered) {
			return false
		}
		if s.End.After(covered) {
			covered = s.End
		}
	}
	return !covered.Before(end)
}
