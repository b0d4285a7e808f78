package model

import "fmt"

// UnitType defines the kind of response unit being deployed.
type UnitType int

const (
	UnitPatrol UnitType = iota
	UnitEMS
)

// String returns a human-readable representation of the unit type.
func (t UnitType) String() string {
	switch t {
	case UnitPatrol:
		return "patrol"
	case UnitEMS:
		return "ems"
	default:
		return "unknown"
	}
}

// ParseUnitType converts a scenario/config string into a UnitType.
func ParseUnitType(s string) (UnitType, error) {
	switch s {
	case "patrol":
		return UnitPatrol, nil
	case "ems":
		return UnitEMS, nil
	default:
		return 0, fmt.Errorf("unknown unit type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so placements serialize with
// readable unit types.
func (t UnitType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *UnitType) UnmarshalText(b []byte) error {
	v, err := ParseUnitType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Placement assigns one unit to a grid cell. UnitIndex is 1-based and unique
// within a round.
type Placement struct {
	UnitIndex int      `json:"unit_index"`
	Type      UnitType `json:"unit_type"`
	CellID    string   `json:"cell_id"`
}
