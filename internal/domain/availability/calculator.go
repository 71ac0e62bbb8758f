// Package availability partitions a requested window into bookable slots,
// given the intervals already claimed on a resource.
package availability

import (
	"time"

	"reservation-engine/internal/domain/reservation"
)

const (
	DefaultIncrement = time.Hour
	// DefaultMaxSlots bounds slot generation per call so pathological
	// windows cannot produce unbounded work.
	DefaultMaxSlots = 500
)

// Busy is an existing claim on the resource: a half-open interval and the
// party size it books.
type Busy struct {
	Start     time.Time
	End       time.Time
	PartySize int32
}

type Params struct {
	Window    reservation.Window
	Capacity  int32
	PartySize int32
	// PriceCents is stamped onto emitted slots (the resource base price).
	PriceCents int64
	Increment  time.Duration
	MaxSlots   int
	Busy       []Busy
}

// Slots partitions the window into fixed-size increments and emits those with
// enough remaining capacity for the requested party size. The final increment
// is clipped to the window end. Comparison is half-open: a claim ending
// exactly at a candidate's start, or starting exactly at its end, does not
// block it.
func Slots(p Params) []reservation.TimeSlot {
	increment := p.Increment
	if increment <= 0 {
		increment = DefaultIncrement
	}
	maxSlots := p.MaxSlots
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	partySize := p.PartySize
	if partySize < 1 {
		partySize = 1
	}

	var out []reservation.TimeSlot
	for start := p.Window.Start(); start.Before(p.Window.End()) && len(out) < maxSlots; start = start.Add(increment) {
		end := start.Add(increment)
		if end.After(p.Window.End()) {
			end = p.Window.End()
		}

		booked := bookedDuring(p.Busy, start, end)
		if booked+partySize > p.Capacity {
			continue
		}

		out = append(out, reservation.TimeSlot{
			Start:           start,
			End:             end,
			MaxCapacity:     p.Capacity,
			CurrentBookings: booked,
			IsAvailable:     true,
			PriceCents:      p.PriceCents,
		})
	}
	return out
}

// bookedDuring sums the party sizes of claims overlapping [start, end).
func bookedDuring(busy []Busy, start, end time.Time) int32 {
	var total int32
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			total += b.PartySize
		}
	}
	return total
}

// Fits reports whether the whole requested window has capacity for the party,
// used for the pre-insert re-validation of a booking.
func Fits(window reservation.Window, busy []Busy, capacity, partySize int32) bool {
	// Peak concurrent booking is reached at some claim start (or the window
	// start), so checking those instants is sufficient.
	if bookedAt(busy, window.Start(), window)+partySize > capacity {
		return false
	}
	for _, b := range busy {
		if !b.Start.After(window.Start()) || !b.Start.Before(window.End()) {
			continue
		}
		if bookedAt(busy, b.Start, window)+partySize > capacity {
			return false
		}
	}
	return true
}

func bookedAt(busy []Busy, at time.Time, window reservation.Window) int32 {
	var total int32
	for _, b := range busy {
		if window.Start().Before(b.End) && window.End().After(b.Start) &&
			!at.Before(b.Start) && at.Before(b.End) {
			total += b.PartySize
		}
	}
	return total
}
