package request

import (
	"time"

	"reservation-engine/internal/domain/resource"
	"reservation-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Name           string              `json:"name" binding:"required"`
	Type           string              `json:"type" binding:"required"`
	Capacity       int32               `json:"capacity" binding:"required,min=1"`
	BasePriceCents int64               `json:"base_price_cents" binding:"min=0"`
	PriceUnit      string              `json:"price_unit" binding:"required"`
	Attributes     resource.Attributes `json:"attributes,omitempty"`
}

func (r CreateResourceRequest) ToCommand() commands.CreateResourceCommand {
	return commands.CreateResourceCommand{
		Name:           r.Name,
		Type:           resource.Type(r.Type),
		Capacity:       r.Capacity,
		BasePriceCents: r.BasePriceCents,
		PriceUnit:      resource.PriceUnit(r.PriceUnit),
		Attributes:     r.Attributes,
	}
}

type UpdateResourceRequest struct {
	Name           *string             `json:"name,omitempty"`
	Capacity       *int32              `json:"capacity,omitempty"`
	BasePriceCents *int64              `json:"base_price_cents,omitempty"`
	PriceUnit      *string             `json:"price_unit,omitempty"`
	IsActive       *bool               `json:"is_active,omitempty"`
	Attributes     resource.Attributes `json:"attributes,omitempty"`
}

func (r UpdateResourceRequest) ToCommand(id uuid.UUID) commands.UpdateResourceCommand {
	cmd := commands.UpdateResourceCommand{
		ID:             id,
		Name:           r.Name,
		Capacity:       r.Capacity,
		BasePriceCents: r.BasePriceCents,
		IsActive:       r.IsActive,
		Attributes:     r.Attributes,
	}
	if r.PriceUnit != nil {
		unit := resource.PriceUnit(*r.PriceUnit)
		cmd.PriceUnit = &unit
	}
	return cmd
}

type CheckAvailabilityRequest struct {
	StartDate time.Time `form:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   time.Time `form:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	PartySize int32     `form:"party_size"`
}

type PreviewRecurrenceRequest struct {
	ResourceID      uuid.UUID   `json:"resource_id" binding:"required"`
	Pattern         string      `json:"pattern" binding:"required"`
	StartDate       time.Time   `json:"start_date" binding:"required"`
	Until           time.Time   `json:"until" binding:"required"`
	DurationMinutes int         `json:"duration_minutes" binding:"required,min=1"`
	PartySize       int32       `json:"party_size"`
	Exceptions      []time.Time `json:"exceptions,omitempty"`
	CustomDates     []time.Time `json:"custom_dates,omitempty"`
}
