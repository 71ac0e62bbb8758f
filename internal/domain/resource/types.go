package resource

// Type classifies what kind of bookable entity a resource is.
type Type string

const (
	TypeRoom      Type = "room"
	TypeEquipment Type = "equipment"
	TypeService   Type = "service"
	TypeVehicle   Type = "vehicle"
	TypePerson    Type = "person"
	TypeOther     Type = "other"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeRoom, TypeEquipment, TypeService, TypeVehicle, TypePerson, TypeOther:
		return true
	default:
		return false
	}
}

// PriceUnit determines how the base price is converted into a total.
type PriceUnit string

const (
	UnitHour    PriceUnit = "hour"
	UnitDay     PriceUnit = "day"
	UnitNight   PriceUnit = "night"
	UnitPerson  PriceUnit = "person"
	UnitSession PriceUnit = "session"
	UnitFlat    PriceUnit = "flat"
)

func (u PriceUnit) String() string {
	return string(u)
}

func (u PriceUnit) IsValid() bool {
	switch u {
	case UnitHour, UnitDay, UnitNight, UnitPerson, UnitSession, UnitFlat:
		return true
	default:
		return false
	}
}
