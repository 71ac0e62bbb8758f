package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidType         = errors.New("invalid resource type")
	ErrInvalidPriceUnit    = errors.New("invalid price unit")
	ErrInvalidCapacity     = errors.New("capacity must be at least 1")
	ErrNegativeBasePrice   = errors.New("base price cannot be negative")
)

const (
	MaxResourceNameLength = 255
)

type Resource struct {
	id         uuid.UUID
	name       string
	typ        Type
	capacity   int32
	basePrice  int64 // cents
	priceUnit  PriceUnit
	isActive   bool
	attributes Attributes
	createdAt  time.Time
	updatedAt  time.Time
}

func NewResource(id uuid.UUID, name string, typ Type, capacity int32, basePriceCents int64, priceUnit PriceUnit, attrs Attributes) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if !typ.IsValid() {
		return nil, ErrInvalidType
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if basePriceCents < 0 {
		return nil, ErrNegativeBasePrice
	}
	if !priceUnit.IsValid() {
		return nil, ErrInvalidPriceUnit
	}

	return &Resource{
		id:         id,
		name:       name,
		typ:        typ,
		capacity:   capacity,
		basePrice:  basePriceCents,
		priceUnit:  priceUnit,
		isActive:   true,
		attributes: attrs,
	}, nil
}

func ReconstructResource(
	id uuid.UUID,
	name string,
	typ Type,
	capacity int32,
	basePriceCents int64,
	priceUnit PriceUnit,
	isActive bool,
	attrs Attributes,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:         id,
		name:       name,
		typ:        typ,
		capacity:   capacity,
		basePrice:  basePriceCents,
		priceUnit:  priceUnit,
		isActive:   isActive,
		attributes: attrs,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// CanAccommodate reports whether a party of the given size fits the resource.
func (r *Resource) CanAccommodate(partySize int32) bool {
	return partySize >= 1 && partySize <= r.capacity
}

func (r *Resource) Deactivate() {
	r.isActive = false
}

func (r *Resource) Activate() {
	r.isActive = true
}

func (r *Resource) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	r.name = name
	return nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) Type() Type             { return r.typ }
func (r *Resource) Capacity() int32        { return r.capacity }
func (r *Resource) BasePriceCents() int64  { return r.basePrice }
func (r *Resource) PriceUnit() PriceUnit   { return r.priceUnit }
func (r *Resource) IsActive() bool         { return r.isActive }
func (r *Resource) Attributes() Attributes { return r.attributes }
func (r *Resource) CreatedAt() time.Time   { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time   { return r.updatedAt }
