package ruleset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// BaseGameName is the name of the rules returned by DefaultRules.
const BaseGameName = "Harebrained Base Game"

// UnitHitLocation declares that units of Type must cover Location.
type UnitHitLocation struct {
	Type          UnitType
	Location      Location
	CriticalSlots int
}

// NewSlottedHitLocation returns a hit location with critical slots for unitType.
//
// Precondition: unitType is valid; name is non-empty; slots >= 0.
// Postcondition: returns the UnitHitLocation or an ErrInvalidArgument error.
func NewSlottedHitLocation(unitType UnitType, name, abbrev string, slots int) (UnitHitLocation, error) {
	if !unitType.Valid() {
		return UnitHitLocation{}, fault.Argument("ruleset: missing unit type for hit location %q", name)
	}
	loc, err := NewLocation(name, abbrev, slots)
	if err != nil {
		return UnitHitLocation{}, err
	}
	return UnitHitLocation{Type: unitType, Location: loc, CriticalSlots: slots}, nil
}

// UnslottedHitLocation returns a hit location without critical slots for unitType.
func UnslottedHitLocation(unitType UnitType, loc Location) UnitHitLocation {
	loc.CriticalSlots = 0
	return UnitHitLocation{Type: unitType, Location: loc}
}

func mechHitLocation(slots int, segments ...string) UnitHitLocation {
	return UnitHitLocation{Type: Mech, Location: LocationFromSegments(slots, segments...), CriticalSlots: slots}
}

// DefaultHitLocations returns the hit locations every Mech must cover.
//
// Postcondition: returns a fresh slice of eight locations.
func DefaultHitLocations() []UnitHitLocation {
	out := make([]UnitHitLocation, 0, 8)
	out = append(out,
		mechHitLocation(1, "Head"),
		mechHitLocation(4, "Center", "Torso"),
	)
	for _, side := range []string{"Left", "Right"} {
		out = append(out,
			mechHitLocation(10, side, "Torso"),
			mechHitLocation(8, side, "Arm"),
			mechHitLocation(4, side, "Leg"),
		)
	}
	return out
}

// Rules is a named rules set: the unit types it allows, the hit locations
// each type covers, and the hit tables that pick a location from a roll.
type Rules struct {
	Name         string
	Mode         string
	UnitTypes    []UnitType
	HitLocations []UnitHitLocation
	HitTables    []HitTable
}

// DefaultRules returns the base game rules in the given mode, allowing Mechs
// and Vehicles with the default hit locations.
func DefaultRules(mode string) *Rules {
	return &Rules{
		Name:         BaseGameName,
		Mode:         mode,
		UnitTypes:    []UnitType{Mech, Vehicle},
		HitLocations: DefaultHitLocations(),
		HitTables:    DefaultHitTables(),
	}
}

// Allows reports whether units of type t may be fielded under r.
func (r *Rules) Allows(t UnitType) bool {
	for _, allowed := range r.UnitTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// LocationsFor returns the hit locations declared for t in declaration order.
//
// Postcondition: returns a non-nil slice.
func (r *Rules) LocationsFor(t UnitType) []Location {
	out := []Location{}
	for _, hl := range r.HitLocations {
		if hl.Type == t {
			out = append(out, hl.Location)
		}
	}
	return out
}

// Location resolves ref against the hit locations of t, matching the
// abbreviation first and then the name, ignoring case.
func (r *Rules) Location(t UnitType, ref string) (Location, bool) {
	locs := r.LocationsFor(t)
	for _, l := range locs {
		if l.Abbrev != "" && strings.EqualFold(l.Abbrev, ref) {
			return l, true
		}
	}
	for _, l := range locs {
		if strings.EqualFold(l.Name, ref) {
			return l, true
		}
	}
	return Location{}, false
}

// Validate reports an error if the rules are missing a name, list no unit
// types, declare a location twice for one type, or carry a broken hit table.
func (r *Rules) Validate() error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(r.UnitTypes) == 0 {
		errs = append(errs, errors.New("unit_types must not be empty"))
	}
	type seenKey struct {
		t   UnitType
		loc LocationKey
	}
	seen := make(map[seenKey]bool, len(r.HitLocations))
	for _, hl := range r.HitLocations {
		if !hl.Type.Valid() {
			errs = append(errs, fmt.Errorf("hit location %q has no unit type", hl.Location.Name))
			continue
		}
		if hl.Location.Name == "" {
			errs = append(errs, fmt.Errorf("%s hit location with empty name", hl.Type))
			continue
		}
		if hl.CriticalSlots < 0 {
			errs = append(errs, fmt.Errorf("%s hit location %q has negative critical slots", hl.Type, hl.Location.Name))
		}
		k := seenKey{hl.Type, hl.Location.Key()}
		if seen[k] {
			errs = append(errs, fmt.Errorf("%s hit location %q declared twice", hl.Type, hl.Location.Name))
		}
		seen[k] = true
	}
	errs = append(errs, r.validateHitTables()...)
	if len(errs) > 0 {
		return fmt.Errorf("rules validation failed: %v", errs)
	}
	return nil
}

type rulesFile struct {
	Name         string         `yaml:"name"`
	Mode         string         `yaml:"mode"`
	UnitTypes    []UnitType     `yaml:"unit_types"`
	HitLocations []hitLocationY `yaml:"hit_locations"`
	HitTables    []HitTable     `yaml:"hit_tables"`
}

type hitLocationY struct {
	UnitType      UnitType `yaml:"unit_type"`
	Name          string   `yaml:"name"`
	Abbrev        string   `yaml:"abbrev"`
	CriticalSlots int      `yaml:"critical_slots"`
}

// LoadRules reads a rules set from a YAML file. A file that declares no hit
// locations receives DefaultHitLocations, and one that declares no hit tables
// receives each default table whose locations it covers.
//
// Precondition: path names a readable YAML file.
// Postcondition: returns rules that pass Validate, or a non-nil error.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadRules: cannot read file %q: %w", path, err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fault.Argument("LoadRules: cannot parse file %q: %v", path, err)
	}
	r := &Rules{Name: f.Name, Mode: f.Mode, UnitTypes: f.UnitTypes, HitTables: f.HitTables}
	if len(f.HitLocations) == 0 {
		r.HitLocations = DefaultHitLocations()
	}
	for _, hl := range f.HitLocations {
		r.HitLocations = append(r.HitLocations, UnitHitLocation{
			Type:          hl.UnitType,
			Location:      Location{Name: hl.Name, Abbrev: hl.Abbrev, CriticalSlots: hl.CriticalSlots},
			CriticalSlots: hl.CriticalSlots,
		})
	}
	if len(f.HitTables) == 0 {
		for _, ht := range DefaultHitTables() {
			if len(r.checkHitTable(ht)) == 0 {
				r.HitTables = append(r.HitTables, ht)
			}
		}
	}
	if err := r.Validate(); err != nil {
		return nil, fault.Argument("LoadRules: invalid rules in %q: %v", path, err)
	}
	return r, nil
}
