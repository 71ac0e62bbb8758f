package request

import (
	"time"

	"reservation-engine/internal/domain/reservation"
	"reservation-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CustomerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type SlotRequest struct {
	Start             time.Time `json:"start" binding:"required"`
	End               time.Time `json:"end" binding:"required"`
	PriceCents        int64     `json:"price_cents"`
	SpecialPriceCents *int64    `json:"special_price_cents,omitempty"`
}

type RecurrenceRequest struct {
	IsRecurring bool        `json:"is_recurring"`
	Pattern     string      `json:"pattern,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Exceptions  []time.Time `json:"exceptions,omitempty"`
	CustomDates []time.Time `json:"custom_dates,omitempty"`
}

type CreateReservationRequest struct {
	ResourceID         uuid.UUID          `json:"resource_id" binding:"required"`
	StartDate          time.Time          `json:"start_date" binding:"required"`
	EndDate            time.Time          `json:"end_date" binding:"required"`
	PartySize          int32              `json:"party_size"`
	Customer           CustomerRequest    `json:"customer" binding:"required"`
	TimeSlots          []SlotRequest      `json:"time_slots,omitempty"`
	DepositRequired    bool               `json:"deposit_required"`
	DepositAmountCents int64              `json:"deposit_amount_cents"`
	Recurrence         *RecurrenceRequest `json:"recurrence,omitempty"`
	CancellationPolicy string             `json:"cancellation_policy,omitempty"`
	Source             string             `json:"source,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationCommand {
	slots := make([]commands.SlotInput, len(r.TimeSlots))
	for i, s := range r.TimeSlots {
		slots[i] = commands.SlotInput{
			Start:             s.Start,
			End:               s.End,
			PriceCents:        s.PriceCents,
			SpecialPriceCents: s.SpecialPriceCents,
		}
	}

	var rec reservation.Recurrence
	if r.Recurrence != nil {
		rec = reservation.Recurrence{
			IsRecurring: r.Recurrence.IsRecurring,
			Pattern:     reservation.Pattern(r.Recurrence.Pattern),
			EndDate:     r.Recurrence.EndDate,
			Exceptions:  r.Recurrence.Exceptions,
			CustomDates: r.Recurrence.CustomDates,
		}
	}

	return commands.CreateReservationCommand{
		ResourceID: r.ResourceID,
		Start:      r.StartDate,
		End:        r.EndDate,
		PartySize:  r.PartySize,
		Customer: reservation.Customer{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
			Notes:     r.Customer.Notes,
		},
		Slots:              slots,
		DepositRequired:    r.DepositRequired,
		DepositAmountCents: r.DepositAmountCents,
		Recurrence:         rec,
		CancellationPolicy: r.CancellationPolicy,
		Source:             r.Source,
	}
}

type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}

type PayReservationRequest struct {
	PaymentDetails string `json:"payment_details" binding:"required"`
}

type RescheduleReservationRequest struct {
	NewStartDate time.Time `json:"new_start_date" binding:"required"`
	NewEndDate   time.Time `json:"new_end_date" binding:"required"`
}
