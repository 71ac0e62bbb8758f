//go:build unit

package resource_test

import (
	"strings"
	"testing"

	"reservation-engine/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T) *resource.Resource {
	t.Helper()
	r, err := resource.NewResource(uuid.New(), "Conference Room A", resource.TypeRoom, 10, 5000, resource.UnitHour, nil)
	require.NoError(t, err)
	return r
}

func TestNewResource(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		r := newRoom(t)

		assert.Equal(t, "Conference Room A", r.Name())
		assert.Equal(t, resource.TypeRoom, r.Type())
		assert.Equal(t, int32(10), r.Capacity())
		assert.Equal(t, int64(5000), r.BasePriceCents())
		assert.Equal(t, resource.UnitHour, r.PriceUnit())
		assert.True(t, r.IsActive())
	})

	t.Run("name is trimmed", func(t *testing.T) {
		r, err := resource.NewResource(uuid.New(), "  Projector  ", resource.TypeEquipment, 1, 0, resource.UnitFlat, nil)
		require.NoError(t, err)
		assert.Equal(t, "Projector", r.Name())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name      string
			resName   string
			typ       resource.Type
			capacity  int32
			basePrice int64
			unit      resource.PriceUnit
			errIs     error
		}{
			{"empty name", "", resource.TypeRoom, 1, 0, resource.UnitHour, resource.ErrEmptyResourceName},
			{"whitespace name", "   ", resource.TypeRoom, 1, 0, resource.UnitHour, resource.ErrEmptyResourceName},
			{"name too long", strings.Repeat("x", resource.MaxResourceNameLength+1), resource.TypeRoom, 1, 0, resource.UnitHour, resource.ErrResourceNameTooLong},
			{"unknown type", "R", "warehouse", 1, 0, resource.UnitHour, resource.ErrInvalidType},
			{"zero capacity", "R", resource.TypeRoom, 0, 0, resource.UnitHour, resource.ErrInvalidCapacity},
			{"negative price", "R", resource.TypeRoom, 1, -1, resource.UnitHour, resource.ErrNegativeBasePrice},
			{"unknown unit", "R", resource.TypeRoom, 1, 0, "fortnight", resource.ErrInvalidPriceUnit},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := resource.NewResource(uuid.New(), tc.resName, tc.typ, tc.capacity, tc.basePrice, tc.unit, nil)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestResourceBehaviour(t *testing.T) {
	t.Run("can accommodate up to capacity", func(t *testing.T) {
		r := newRoom(t)
		assert.True(t, r.CanAccommodate(10))
		assert.False(t, r.CanAccommodate(11))
	})

	t.Run("deactivate and activate", func(t *testing.T) {
		r := newRoom(t)
		r.Deactivate()
		assert.False(t, r.IsActive())
		r.Activate()
		assert.True(t, r.IsActive())
	})

	t.Run("rename validates", func(t *testing.T) {
		r := newRoom(t)
		require.NoError(t, r.Rename("Conference Room B"))
		assert.Equal(t, "Conference Room B", r.Name())

		assert.ErrorIs(t, r.Rename(""), resource.ErrEmptyResourceName)
		assert.Equal(t, "Conference Room B", r.Name())
	})
}
