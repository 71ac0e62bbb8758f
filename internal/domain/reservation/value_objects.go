package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"reservation-engine/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrNegativeMoney    = errors.New("money cannot be negative")
	ErrMissingFirstName = errors.New("customer first name is required")
	ErrMissingLastName  = errors.New("customer last name is required")
	ErrInvalidEmail     = errors.New("customer email is invalid")
	ErrInvalidSlot      = errors.New("invalid time slot")
)

// Window is a half-open interval [Start, End).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidRange
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time        { return w.start }
func (w Window) End() time.Time          { return w.end }
func (w Window) Duration() time.Duration { return w.end.Sub(w.start) }

// Overlaps uses half-open semantics: [a,b) and [c,d) intersect iff a<d && b>c.
// Touching endpoints do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

func (w Window) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// MustMoney is for amounts already validated non-negative.
func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// TimeSlot is a bounded sub-interval of a reservation or availability window,
// carrying its own capacity and price.
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	MaxCapacity     int32
	CurrentBookings int32
	IsAvailable     bool
	PriceCents      int64
	SpecialPrice    *int64
}

func (s TimeSlot) Validate() error {
	if !s.Start.Before(s.End) {
		return ErrInvalidSlot
	}
	if s.MaxCapacity < 1 {
		return ErrInvalidSlot
	}
	if s.CurrentBookings < 0 || s.CurrentBookings > s.MaxCapacity {
		return ErrInvalidSlot
	}
	if s.PriceCents < 0 || (s.SpecialPrice != nil && *s.SpecialPrice < 0) {
		return ErrInvalidSlot
	}
	return nil
}

// EffectivePriceCents is the special price when set, the regular price otherwise.
func (s TimeSlot) EffectivePriceCents() int64 {
	if s.SpecialPrice != nil {
		return *s.SpecialPrice
	}
	return s.PriceCents
}

func (s TimeSlot) Window() Window {
	return Window{start: s.Start, end: s.End}
}

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Notes     string
}

// Validate is the explicit pre-persistence check; it never mutates state.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrMissingFirstName
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrMissingLastName
	}
	email := strings.TrimSpace(c.Email)
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

type Deposit struct {
	Required    bool
	AmountCents int64
	Paid        bool
	PaidAt      *time.Time
}

// ResourceSnapshot is the immutable copy of resource pricing data taken at
// booking time, so historical reservations survive catalog edits.
type ResourceSnapshot struct {
	ID        uuid.UUID
	Name      string
	Type      resource.Type
	Capacity  int32
	BasePrice int64 // cents
	PriceUnit resource.PriceUnit
}

func SnapshotOf(r *resource.Resource) ResourceSnapshot {
	return ResourceSnapshot{
		ID:        r.ID(),
		Name:      r.Name(),
		Type:      r.Type(),
		Capacity:  r.Capacity(),
		BasePrice: r.BasePriceCents(),
		PriceUnit: r.PriceUnit(),
	}
}

type Notification struct {
	Type      NotificationType
	Recipient string
	Template  string
	Sent      bool
	SentAt    *time.Time
}
