package shared

import (
	"reservation-engine/internal/domain/resource"

	"github.com/google/uuid"
)

// Minimal snapshot for command read operations
type ResourceSnapshot struct {
	ID             uuid.UUID
	Name           string
	Type           resource.Type
	Capacity       int32
	BasePriceCents int64
	PriceUnit      resource.PriceUnit
	IsActive       bool
}
