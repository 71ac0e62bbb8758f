//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"reservation-engine/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := reservation.NewWindow(start, start)
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)

		_, err = reservation.NewWindow(start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, reservation.ErrInvalidRange)
	})

	t.Run("half open overlap", func(t *testing.T) {
		a, err := reservation.NewWindow(start, start.Add(2*time.Hour))
		require.NoError(t, err)

		touching, err := reservation.NewWindow(start.Add(2*time.Hour), start.Add(3*time.Hour))
		require.NoError(t, err)
		assert.False(t, a.Overlaps(touching))
		assert.False(t, touching.Overlaps(a))

		overlapping, err := reservation.NewWindow(start.Add(time.Hour), start.Add(3*time.Hour))
		require.NoError(t, err)
		assert.True(t, a.Overlaps(overlapping))
		assert.True(t, overlapping.Overlaps(a))

		contained, err := reservation.NewWindow(start.Add(30*time.Minute), start.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, a.Overlaps(contained))
	})

	t.Run("tstzrange rendering", func(t *testing.T) {
		w, err := reservation.NewWindow(start, start.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "[2026-03-10T09:00:00Z,2026-03-10T10:00:00Z)", w.ToTstzrange())
	})
}

func TestMoney(t *testing.T) {
	m, err := reservation.NewMoney(1500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), m.Cents())

	_, err = reservation.NewMoney(-1)
	assert.ErrorIs(t, err, reservation.ErrNegativeMoney)

	sum := m.Add(reservation.MustMoney(500))
	assert.Equal(t, int64(2000), sum.Cents())

	assert.Panics(t, func() { reservation.MustMoney(-1) })
}

func TestTimeSlotValidate(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	valid := reservation.TimeSlot{
		Start:       start,
		End:         start.Add(time.Hour),
		MaxCapacity: 5,
		PriceCents:  1000,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*reservation.TimeSlot)
	}{
		{"inverted range", func(s *reservation.TimeSlot) { s.End = s.Start.Add(-time.Minute) }},
		{"zero capacity", func(s *reservation.TimeSlot) { s.MaxCapacity = 0 }},
		{"negative bookings", func(s *reservation.TimeSlot) { s.CurrentBookings = -1 }},
		{"bookings above capacity", func(s *reservation.TimeSlot) { s.CurrentBookings = 6 }},
		{"negative price", func(s *reservation.TimeSlot) { s.PriceCents = -1 }},
		{"negative special price", func(s *reservation.TimeSlot) { neg := int64(-1); s.SpecialPrice = &neg }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), reservation.ErrInvalidSlot)
		})
	}
}

func TestTimeSlotEffectivePrice(t *testing.T) {
	s := reservation.TimeSlot{PriceCents: 1000}
	assert.Equal(t, int64(1000), s.EffectivePriceCents())

	special := int64(750)
	s.SpecialPrice = &special
	assert.Equal(t, int64(750), s.EffectivePriceCents())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    reservation.Status
		to      reservation.Status
		allowed bool
	}{
		{reservation.StatusPending, reservation.StatusConfirmed, true},
		{reservation.StatusPending, reservation.StatusCancelled, true},
		{reservation.StatusPending, reservation.StatusRescheduled, true},
		{reservation.StatusPending, reservation.StatusCompleted, false},
		{reservation.StatusPending, reservation.StatusNoShow, false},
		{reservation.StatusConfirmed, reservation.StatusCompleted, true},
		{reservation.StatusConfirmed, reservation.StatusNoShow, true},
		{reservation.StatusConfirmed, reservation.StatusPending, false},
		{reservation.StatusCancelled, reservation.StatusConfirmed, false},
		{reservation.StatusCompleted, reservation.StatusCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStatusClaimsCapacity(t *testing.T) {
	claims := map[reservation.Status]bool{
		reservation.StatusPending:     true,
		reservation.StatusConfirmed:   true,
		reservation.StatusCompleted:   true,
		reservation.StatusCancelled:   false,
		reservation.StatusNoShow:      false,
		reservation.StatusRescheduled: false,
	}
	for status, want := range claims {
		assert.Equal(t, want, status.ClaimsCapacity(), "status %s", status)
	}
}
