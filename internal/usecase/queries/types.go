package queries

import (
	"context"
	"time"

	"reservation-engine/internal/domain/availability"
	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/domain/resource"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ResourceView struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Type           string              `json:"type"`
	Capacity       int32               `json:"capacity"`
	BasePriceCents int64               `json:"base_price_cents"`
	PriceUnit      string              `json:"price_unit"`
	IsActive       bool                `json:"is_active"`
	Attributes     resource.Attributes `json:"attributes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type SlotView struct {
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	MaxCapacity       int32     `json:"max_capacity"`
	CurrentBookings   int32     `json:"current_bookings"`
	IsAvailable       bool      `json:"is_available"`
	PriceCents        int64     `json:"price_cents"`
	SpecialPriceCents *int64    `json:"special_price_cents,omitempty"`
}

type AvailabilityView struct {
	Resource       *ResourceView `json:"resource"`
	IsAvailable    bool          `json:"is_available"`
	AvailableSlots []SlotView    `json:"available_slots"`
}

type CustomerView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type DepositView struct {
	Required    bool       `json:"required"`
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

type RecurrenceView struct {
	IsRecurring bool        `json:"is_recurring"`
	Pattern     string      `json:"pattern,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Exceptions  []time.Time `json:"exceptions,omitempty"`
}

type NotificationView struct {
	Type      string     `json:"type"`
	Recipient string     `json:"recipient"`
	Template  string     `json:"template"`
	Sent      bool       `json:"sent"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

type ReservationView struct {
	ID                 uuid.UUID          `json:"id"`
	ResourceID         uuid.UUID          `json:"resource_id"`
	ResourceName       string             `json:"resource_name"`
	Number             string             `json:"reservation_number"`
	Start              time.Time          `json:"start_date"`
	End                time.Time          `json:"end_date"`
	Slots              []SlotView         `json:"time_slots,omitempty"`
	Status             string             `json:"status"`
	TotalPriceCents    int64              `json:"total_price_cents"`
	PaymentStatus      string             `json:"payment_status"`
	PaymentDetails     string             `json:"payment_details,omitempty"`
	Deposit            DepositView        `json:"deposit"`
	Customer           CustomerView       `json:"customer"`
	PartySize          int32              `json:"party_size"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	CancellationPolicy string             `json:"cancellation_policy,omitempty"`
	Recurrence         RecurrenceView     `json:"recurrence"`
	Notifications      []NotificationView `json:"notifications,omitempty"`
	Source             string             `json:"source,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type ReservationListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	Number       string    `json:"reservation_number"`
	Start        time.Time `json:"start_date"`
	End          time.Time `json:"end_date"`
	Status       string    `json:"status"`
	PartySize    int32     `json:"party_size"`
	CreatedAt    time.Time `json:"created_at"`
}

type OccurrenceView struct {
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"is_available"`
}

// Read store ports implemented by internal/infra/readstore.
type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context, activeOnly bool) ([]*ResourceView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*ReservationListItem, error)
	// BusyIntervals returns capacity-claiming reservation intervals
	// overlapping the window, excluding at most one reservation id.
	BusyIntervals(ctx context.Context, resourceID uuid.UUID, window reservation.Window, exclude *uuid.UUID) ([]availability.Busy, error)
}
