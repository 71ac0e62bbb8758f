package reservation

import (
	"errors"
	"iter"
	"time"
)

var ErrInvalidPattern = errors.New("invalid recurrence pattern")

type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternCustom  Pattern = "custom"
)

func (p Pattern) IsValid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternCustom:
		return true
	default:
		return false
	}
}

// Recurrence describes how a booking repeats. Custom patterns carry an
// explicit date list supplied by the caller.
type Recurrence struct {
	IsRecurring bool
	Pattern     Pattern
	EndDate     *time.Time
	Exceptions  []time.Time
	CustomDates []time.Time
}

func (r Recurrence) Validate() error {
	if !r.IsRecurring {
		return nil
	}
	if !r.Pattern.IsValid() {
		return ErrInvalidPattern
	}
	if r.Pattern == PatternCustom && len(r.CustomDates) == 0 {
		return ErrInvalidPattern
	}
	return nil
}

// Expand yields the concrete occurrence dates of the pattern within
// [start, end], skipping exceptions. The sequence is lazy, finite and
// restartable: ranging over it twice yields the same dates.
func (r Recurrence) Expand(start, end time.Time) iter.Seq[time.Time] {
	excluded := make(map[string]struct{}, len(r.Exceptions))
	for _, e := range r.Exceptions {
		excluded[dateKey(e)] = struct{}{}
	}
	if r.EndDate != nil && r.EndDate.Before(end) {
		end = *r.EndDate
	}

	return func(yield func(time.Time) bool) {
		if !r.IsRecurring || end.Before(start) {
			return
		}

		if r.Pattern == PatternCustom {
			for _, d := range r.CustomDates {
				if d.Before(start) || d.After(end) {
					continue
				}
				if _, skip := excluded[dateKey(d)]; skip {
					continue
				}
				if !yield(d) {
					return
				}
			}
			return
		}

		for cur := start; !cur.After(end); cur = r.next(cur) {
			if _, skip := excluded[dateKey(cur)]; !skip {
				if !yield(cur) {
					return
				}
			}
		}
	}
}

func (r Recurrence) next(t time.Time) time.Time {
	switch r.Pattern {
	case PatternDaily:
		return t.AddDate(0, 0, 1)
	case PatternWeekly:
		return t.AddDate(0, 0, 7)
	case PatternMonthly:
		// AddDate normalizes month-end overflow (Jan 31 + 1 month = Mar 2/3).
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// Exceptions match on calendar date, not instant.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
