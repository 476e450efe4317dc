// Package unit defines the immutable Unit aggregate and the builders that
// assemble it from armor, structure, and equipment entries.
package unit

import (
	"fmt"
	"math"
	"regexp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/track"
)

// armorPointsPerTon is the number of armor points bought with one ton.
const armorPointsPerTon = 16

var modelPattern = regexp.MustCompile(`^\p{Lu}[\p{Lu}\p{N}]*(-[\p{Lu}\p{N}]+)*$`)

// ValidModel reports whether model is a well formed model designation such as
// "HBK-4G": an uppercase letter followed by uppercase letters or digits, in
// dash separated groups.
func ValidModel(model string) bool {
	return modelPattern.MatchString(model)
}

// Params carries the values a Unit is constructed from.
//
// Equipment, Armor, and Structure are ordered entry lists; New copies them.
type Params struct {
	ID               string
	Type             ruleset.UnitType
	Name             string
	Model            string // empty when the unit has no model designation
	Tonnage          float64
	AvailableTonnage float64
	Equipment        []inventory.Entry
	Armor            []track.Track
	Structure        []track.Track
}

// Unit is a combat unit with its current loadout and damage state.
//
// A Unit never changes after construction; every accessor returns a copy.
type Unit struct {
	id        string
	unitType  ruleset.UnitType
	name      string
	model     string
	tonnage   decimal.Decimal
	available decimal.Decimal
	equipment []inventory.Entry
	armor     []track.Track
	structure []track.Track
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// New returns a validated Unit.
//
// Precondition: p.Type is valid; p.Model is empty or satisfies ValidModel;
// tonnages are finite and p.Tonnage >= 0; every armor and structure location
// reduces cleanly.
// Postcondition: returns the Unit or an ErrInvalidArgument error.
func New(p Params) (*Unit, error) {
	if !p.Type.Valid() {
		return nil, fault.Argument("unit: invalid unit type %s", p.Type)
	}
	if p.Model != "" && !ValidModel(p.Model) {
		return nil, fault.Argument("unit: invalid model %q", p.Model)
	}
	if !finite(p.Tonnage) || p.Tonnage < 0 {
		return nil, fault.Argument("unit: tonnage must be a finite value >= 0, got %v", p.Tonnage)
	}
	if !finite(p.AvailableTonnage) {
		return nil, fault.Argument("unit: available tonnage must be finite, got %v", p.AvailableTonnage)
	}
	for _, e := range p.Equipment {
		if e.Equipment == nil {
			return nil, fault.Argument("unit: undefined equipment at %s", e.Location)
		}
	}
	if err := checkEntries(track.Armor, p.Armor); err != nil {
		return nil, err
	}
	if err := checkEntries(track.Structure, p.Structure); err != nil {
		return nil, err
	}
	return &Unit{
		id:        p.ID,
		unitType:  p.Type,
		name:      p.Name,
		model:     p.Model,
		tonnage:   decimal.NewFromFloat(p.Tonnage),
		available: decimal.NewFromFloat(p.AvailableTonnage),
		equipment: slices.Clone(p.Equipment),
		armor:     slices.Clone(p.Armor),
		structure: slices.Clone(p.Structure),
	}, nil
}

func checkEntries(kind track.Kind, entries []track.Track) error {
	for _, e := range entries {
		if e.Kind() != kind {
			return fault.Argument("unit: %s entry at %s in %s list", e.Kind(), e.Location(), kind)
		}
	}
	if _, err := track.ReduceAll(entries); err != nil {
		return fault.Argument("unit: %s does not reduce: %v", kind, err)
	}
	return nil
}

func (u *Unit) ID() string                   { return u.id }
func (u *Unit) Type() ruleset.UnitType       { return u.unitType }
func (u *Unit) Name() string                 { return u.name }
func (u *Unit) Model() string                { return u.model }
func (u *Unit) Tonnage() float64             { return u.tonnage.InexactFloat64() }
func (u *Unit) AvailableTonnage() float64    { return u.available.InexactFloat64() }
func (u *Unit) Equipment() []inventory.Entry { return slices.Clone(u.equipment) }
func (u *Unit) Armor() []track.Track         { return slices.Clone(u.armor) }
func (u *Unit) Structure() []track.Track     { return slices.Clone(u.structure) }

// ArmorAt returns the reduced armor snapshot at loc.
func (u *Unit) ArmorAt(loc ruleset.Location) (track.Track, error) {
	return track.Reduce(u.armor, loc)
}

// StructureAt returns the reduced structure snapshot at loc.
func (u *Unit) StructureAt(loc ruleset.Location) (track.Track, error) {
	return track.Reduce(u.structure, loc)
}

// ArmorSheet returns one reduced armor snapshot per location in first-seen order.
func (u *Unit) ArmorSheet() []track.Track {
	out, _ := track.ReduceAll(u.armor)
	return out
}

// StructureSheet returns one reduced structure snapshot per location in first-seen order.
func (u *Unit) StructureSheet() []track.Track {
	out, _ := track.ReduceAll(u.structure)
	return out
}

// EquipmentTonnage returns the total mass of the installed equipment.
func (u *Unit) EquipmentTonnage() float64 {
	return u.equipmentTons().InexactFloat64()
}

func (u *Unit) equipmentTons() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range u.equipment {
		sum = sum.Add(e.Equipment.Tons())
	}
	return sum
}

// ArmorTonnage returns the whole tons spent on armor: the sum of the reduced
// maximum armor of every location divided by 16, rounded down.
func (u *Unit) ArmorTonnage() float64 {
	return u.armorTons().InexactFloat64()
}

func (u *Unit) armorTons() decimal.Decimal {
	points := int64(0)
	for _, t := range u.ArmorSheet() {
		m, _ := t.Max()
		points += int64(m)
	}
	return decimal.NewFromInt(points / armorPointsPerTon)
}

// LoadoutController returns a Controller for refitting the unit. Its maximum
// is the unit tonnage, and its available tonnage is the unit's available
// tonnage plus the mass of the installed equipment when stripEquipment is set
// and plus the armor tonnage when stripArmor is set.
//
// Postcondition: the Unit is not modified.
func (u *Unit) LoadoutController(stripArmor, stripEquipment bool) (*inventory.Controller, error) {
	available := u.available
	if stripEquipment {
		available = available.Add(u.equipmentTons())
	}
	if stripArmor {
		available = available.Add(u.armorTons())
	}
	return inventory.NewController(u.tonnage.InexactFloat64(), available.InexactFloat64())
}

// String renders the unit as "Name Model (Type, 35t)".
func (u *Unit) String() string {
	label := u.name
	if u.model != "" {
		if label != "" {
			label += " "
		}
		label += u.model
	}
	if label == "" {
		label = u.id
	}
	return fmt.Sprintf("%s (%s, %st)", label, u.unitType, u.tonnage)
}
