//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/pkg/config"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreviewFixture(res *queries.ResourceView, store *fakeReservationReadStore, booking config.BookingConfig) queries.RecurrenceQueries {
	avail := queries.NewAvailabilityQueries(&fakeResourceReadStore{view: res}, store, booking)
	return queries.NewRecurrenceQueries(avail, booking)
}

func TestPreviewOccurrences(t *testing.T) {
	start := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)

	t.Run("expands a daily pattern and checks each occurrence", func(t *testing.T) {
		res := roomView(4)
		q := newPreviewFixture(res, &fakeReservationReadStore{}, testBookingConfig())

		occurrences, err := q.Preview(context.Background(), queries.PreviewOccurrencesParams{
			ResourceID: res.ID,
			Pattern:    reservation.PatternDaily,
			Start:      start,
			Until:      start.Add(72 * time.Hour),
			Duration:   2 * time.Hour,
			PartySize:  2,
		})
		require.NoError(t, err)
		require.Len(t, occurrences, 4)
		for i, occ := range occurrences {
			assert.Equal(t, start.AddDate(0, 0, i), occ.Date)
			assert.True(t, occ.IsAvailable)
		}
	})

	t.Run("an occurrence blocked mid-window is reported unavailable", func(t *testing.T) {
		res := roomView(2)
		// The second day has a conflicting booking inside the occurrence window.
		blocked := start.AddDate(0, 0, 1)
		store := &fakeReservationReadStore{busy: []availability.Busy{
			{Start: blocked.Add(time.Hour), End: blocked.Add(2 * time.Hour), PartySize: 2},
		}}
		q := newPreviewFixture(res, store, testBookingConfig())

		occurrences, err := q.Preview(context.Background(), queries.PreviewOccurrencesParams{
			ResourceID: res.ID,
			Pattern:    reservation.PatternDaily,
			Start:      start,
			Until:      start.Add(24 * time.Hour),
			Duration:   2 * time.Hour,
			PartySize:  1,
		})
		require.NoError(t, err)
		require.Len(t, occurrences, 2)
		assert.True(t, occurrences[0].IsAvailable)
		assert.False(t, occurrences[1].IsAvailable)
	})

	t.Run("caps the expansion at the configured maximum", func(t *testing.T) {
		res := roomView(4)
		booking := testBookingConfig()
		booking.MaxOccurrences = 5
		q := newPreviewFixture(res, &fakeReservationReadStore{}, booking)

		occurrences, err := q.Preview(context.Background(), queries.PreviewOccurrencesParams{
			ResourceID: res.ID,
			Pattern:    reservation.PatternDaily,
			Start:      start,
			Until:      start.AddDate(1, 0, 0),
			Duration:   time.Hour,
		})
		require.NoError(t, err)
		assert.Len(t, occurrences, 5)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		res := roomView(4)
		q := newPreviewFixture(res, &fakeReservationReadStore{}, testBookingConfig())

		_, err := q.Preview(context.Background(), queries.PreviewOccurrencesParams{
			ResourceID: res.ID,
			Pattern:    reservation.PatternDaily,
			Start:      start,
			Until:      start.Add(24 * time.Hour),
		})
		assert.ErrorIs(t, err, errs.ErrInvalidRange)
	})

	t.Run("rejects a custom pattern without dates", func(t *testing.T) {
		res := roomView(4)
		q := newPreviewFixture(res, &fakeReservationReadStore{}, testBookingConfig())

		_, err := q.Preview(context.Background(), queries.PreviewOccurrencesParams{
			ResourceID: res.ID,
			Pattern:    reservation.PatternCustom,
			Start:      start,
			Until:      start.Add(24 * time.Hour),
			Duration:   time.Hour,
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
