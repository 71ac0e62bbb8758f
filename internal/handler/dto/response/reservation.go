package response

import (
	"time"

	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	ResourceID         uuid.UUID                  `json:"resource_id"`
	ResourceName       string                     `json:"resource_name"`
	Number             string                     `json:"reservation_number"`
	Start              time.Time                  `json:"start_date"`
	End                time.Time                  `json:"end_date"`
	Slots              []queries.SlotView         `json:"time_slots,omitempty"`
	Status             string                     `json:"status"`
	TotalPriceCents    int64                      `json:"total_price_cents"`
	PaymentStatus      string                     `json:"payment_status"`
	PaymentDetails     string                     `json:"payment_details,omitempty"`
	Deposit            queries.DepositView        `json:"deposit"`
	Customer           queries.CustomerView       `json:"customer"`
	PartySize          int32                      `json:"party_size"`
	CancellationReason string                     `json:"cancellation_reason,omitempty"`
	CancellationPolicy string                     `json:"cancellation_policy,omitempty"`
	Recurrence         queries.RecurrenceView     `json:"recurrence"`
	Notifications      []queries.NotificationView `json:"notifications,omitempty"`
	Source             string                     `json:"source,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

type ReservationListResponse struct {
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

type CreatedReservationResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationListItem(item *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:           item.ID,
		ResourceID:   item.ResourceID,
		ResourceName: item.ResourceName,
		Number:       item.Number,
		Start:        item.Start,
		End:          item.End,
		Status:       item.Status,
		PartySize:    item.PartySize,
		CreatedAt:    item.CreatedAt,
	}
}
