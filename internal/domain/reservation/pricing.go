package reservation

import (
	"math"

	"reservation-engine/internal/domain/resource"
)

// PriceCalculator derives a reservation total from its slots or, when no
// explicit slots were assigned, from the resource snapshot's base price and
// pricing unit. Implementations must be deterministic and side-effect-free.
type PriceCalculator interface {
	Calculate(snap ResourceSnapshot, window Window, partySize int32, slots []TimeSlot) Money
}

type UnitPriceCalculator struct{}

func NewUnitPriceCalculator() *UnitPriceCalculator {
	return &UnitPriceCalculator{}
}

func (c *UnitPriceCalculator) Calculate(snap ResourceSnapshot, window Window, partySize int32, slots []TimeSlot) Money {
	if len(slots) > 0 {
		var total int64
		for _, s := range slots {
			total += s.EffectivePriceCents()
		}
		return MustMoney(total)
	}

	hours := window.Duration().Hours()
	days := hours / 24

	var total int64
	switch snap.PriceUnit {
	case resource.UnitHour:
		total = snap.BasePrice * int64(math.Ceil(hours))
	case resource.UnitDay:
		total = snap.BasePrice * int64(math.Ceil(days))
	case resource.UnitNight:
		// A stay shorter than 24h spans zero nights.
		total = snap.BasePrice * int64(math.Floor(days))
	case resource.UnitPerson:
		total = snap.BasePrice * int64(partySize)
	case resource.UnitSession, resource.UnitFlat:
		total = snap.BasePrice
	default:
		total = snap.BasePrice
	}
	return MustMoney(total)
}

// Reprice recomputes and stores the reservation total.
func Reprice(r *Reservation, calc PriceCalculator) {
	r.SetTotalPrice(calc.Calculate(r.Resource(), r.Window(), r.PartySize(), r.Slots()))
}
