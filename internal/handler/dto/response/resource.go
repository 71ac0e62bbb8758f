package response

import (
	"time"

	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ResourceResponse struct {
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

func FromResourceView(view *queries.ResourceView) *ResourceResponse {
	var resp ResourceResponse
	// Field names match the read model, so a straight copy suffices.
	_ = copier.Copy(&resp, view)
	return &resp
}

type DeleteResourceResponse struct {
	DeletedReservations int64 `json:"deleted_reservations"`
}
