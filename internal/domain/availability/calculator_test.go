//go:build unit

package availability_test

import (
	"testing"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) reservation.Window {
	t.Helper()
	w, err := reservation.NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestSlots(t *testing.T) {
	t.Run("no existing claims yields every increment", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:   mustWindow(t, at(9), at(12)),
			Capacity: 1,
		})

		require.Len(t, slots, 3)
		assert.Equal(t, at(9), slots[0].Start)
		assert.Equal(t, at(10), slots[0].End)
		assert.Equal(t, at(11), slots[2].Start)
		assert.Equal(t, at(12), slots[2].End)
		for _, s := range slots {
			assert.True(t, s.IsAvailable)
			assert.Equal(t, int32(0), s.CurrentBookings)
		}
	})

	t.Run("booked hour is excluded", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:   mustWindow(t, at(9), at(12)),
			Capacity: 1,
			Busy:     []availability.Busy{{Start: at(10), End: at(11), PartySize: 1}},
		})

		require.Len(t, slots, 2)
		assert.Equal(t, at(9), slots[0].Start)
		assert.Equal(t, at(10), slots[0].End)
		assert.Equal(t, at(11), slots[1].Start)
		assert.Equal(t, at(12), slots[1].End)
	})

	t.Run("touching claims do not block adjacent slots", func(t *testing.T) {
		// Claim [10,11) must not block [9,10) or [11,12).
		slots := availability.Slots(availability.Params{
			Window:   mustWindow(t, at(9), at(10)),
			Capacity: 1,
			Busy:     []availability.Busy{{Start: at(10), End: at(11), PartySize: 1}},
		})
		require.Len(t, slots, 1)

		slots = availability.Slots(availability.Params{
			Window:   mustWindow(t, at(11), at(12)),
			Capacity: 1,
			Busy:     []availability.Busy{{Start: at(10), End: at(11), PartySize: 1}},
		})
		require.Len(t, slots, 1)
	})

	t.Run("capacity admits overlapping parties until full", func(t *testing.T) {
		busy := []availability.Busy{
			{Start: at(9), End: at(12), PartySize: 4},
			{Start: at(10), End: at(11), PartySize: 4},
		}

		// Capacity 10, party of 2: the 10:00 hour holds 8, still fits.
		slots := availability.Slots(availability.Params{
			Window:    mustWindow(t, at(9), at(12)),
			Capacity:  10,
			PartySize: 2,
			Busy:      busy,
		})
		require.Len(t, slots, 3)
		assert.Equal(t, int32(8), slots[1].CurrentBookings)

		// Party of 3 no longer fits the middle hour.
		slots = availability.Slots(availability.Params{
			Window:    mustWindow(t, at(9), at(12)),
			Capacity:  10,
			PartySize: 3,
			Busy:      busy,
		})
		require.Len(t, slots, 2)
		assert.Equal(t, at(9), slots[0].Start)
		assert.Equal(t, at(11), slots[1].Start)
	})

	t.Run("final increment is clipped to the window end", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:   mustWindow(t, at(9), at(10).Add(30*time.Minute)),
			Capacity: 1,
		})

		require.Len(t, slots, 2)
		assert.Equal(t, at(10), slots[1].Start)
		assert.Equal(t, at(10).Add(30*time.Minute), slots[1].End)
	})

	t.Run("slot count is capped", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:   mustWindow(t, at(0), at(0).AddDate(0, 0, 10)),
			Capacity: 1,
			MaxSlots: 24,
		})
		assert.Len(t, slots, 24)
	})

	t.Run("custom increment", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:    mustWindow(t, at(9), at(10)),
			Capacity:  1,
			Increment: 15 * time.Minute,
		})
		assert.Len(t, slots, 4)
	})

	t.Run("price is stamped onto slots", func(t *testing.T) {
		slots := availability.Slots(availability.Params{
			Window:     mustWindow(t, at(9), at(10)),
			Capacity:   1,
			PriceCents: 2500,
		})
		require.Len(t, slots, 1)
		assert.Equal(t, int64(2500), slots[0].PriceCents)
	})
}

func TestFits(t *testing.T) {
	t.Run("empty resource fits", func(t *testing.T) {
		assert.True(t, availability.Fits(mustWindow(t, at(9), at(12)), nil, 1, 1))
	})

	t.Run("overlapping claim blocks at capacity one", func(t *testing.T) {
		busy := []availability.Busy{{Start: at(10), End: at(11), PartySize: 1}}
		assert.False(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 1, 1))
	})

	t.Run("touching claim does not block", func(t *testing.T) {
		busy := []availability.Busy{{Start: at(12), End: at(13), PartySize: 1}}
		assert.True(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 1, 1))

		busy = []availability.Busy{{Start: at(8), End: at(9), PartySize: 1}}
		assert.True(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 1, 1))
	})

	t.Run("peak concurrency decides", func(t *testing.T) {
		// Two claims of 4 overlap only during [10,11): peak 8.
		busy := []availability.Busy{
			{Start: at(9), End: at(11), PartySize: 4},
			{Start: at(10), End: at(12), PartySize: 4},
		}
		assert.True(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 10, 2))
		assert.False(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 10, 3))
	})

	t.Run("claim overlapping the window start counts", func(t *testing.T) {
		busy := []availability.Busy{{Start: at(8), End: at(10), PartySize: 1}}
		assert.False(t, availability.Fits(mustWindow(t, at(9), at(12)), busy, 1, 1))
	})
}
