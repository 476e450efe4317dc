package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// UnitType enumerates the kinds of unit the rules know about.
type UnitType int

const (
	// UnitTypeUnknown is the zero value and is never valid.
	UnitTypeUnknown UnitType = iota
	Mech
	Vehicle
	Fighter
	AeroSpace
	DropShip
	JumpShip
	Infantry
	BattleArmor
)

var unitTypeNames = map[UnitType]string{
	Mech:        "Mech",
	Vehicle:     "Vehicle",
	Fighter:     "Fighter",
	AeroSpace:   "AeroSpace",
	DropShip:    "DropShip",
	JumpShip:    "JumpShip",
	Infantry:    "Infantry",
	BattleArmor: "BattleArmor",
}

// AllUnitTypes returns every valid UnitType in declaration order.
func AllUnitTypes() []UnitType {
	return []UnitType{Mech, Vehicle, Fighter, AeroSpace, DropShip, JumpShip, Infantry, BattleArmor}
}

// Valid reports whether t is one of the declared unit types.
func (t UnitType) Valid() bool {
	_, ok := unitTypeNames[t]
	return ok
}

func (t UnitType) String() string {
	if name, ok := unitTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UnitType(%d)", int(t))
}

// ParseUnitType resolves a unit type by name, ignoring case.
//
// Postcondition: returns a valid UnitType or an ErrInvalidArgument error.
func ParseUnitType(s string) (UnitType, error) {
	for t, name := range unitTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	return UnitTypeUnknown, fault.Argument("ruleset: unknown unit type %q", s)
}

// UnmarshalYAML decodes a unit type from its name.
func (t *UnitType) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseUnitType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes a unit type as its name.
func (t UnitType) MarshalYAML() (any, error) {
	return t.String(), nil
}
