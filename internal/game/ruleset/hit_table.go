package ruleset

import (
	"fmt"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// HitTable maps a 2d6 hit roll to the location struck on a unit type, and
// each location to the one damage moves into once it is destroyed.
//
// Locations are referenced by abbreviation or name, as Rules.Location resolves them.
type HitTable struct {
	Type      UnitType          `yaml:"unit_type"`
	Rolls     map[int]string    `yaml:"rolls"`
	Transfers map[string]string `yaml:"transfers"`
}

// DefaultHitTables returns the front hit table for Mechs.
func DefaultHitTables() []HitTable {
	return []HitTable{{
		Type: Mech,
		Rolls: map[int]string{
			2: "CT", 3: "RA", 4: "RA", 5: "RL", 6: "RT", 7: "CT",
			8: "LT", 9: "LL", 10: "LA", 11: "LA", 12: "H",
		},
		Transfers: map[string]string{
			"LA": "LT", "LL": "LT", "RA": "RT", "RL": "RT", "LT": "CT", "RT": "CT",
		},
	}}
}

func (r *Rules) hitTable(t UnitType) (HitTable, bool) {
	for _, ht := range r.HitTables {
		if ht.Type == t {
			return ht, true
		}
	}
	return HitTable{}, false
}

// HitLocation returns the location struck on a unit of type t by a hit roll.
//
// Postcondition: returns ErrInvalidState when r has no table for t and
// ErrInvalidArgument when the table has no entry for roll.
func (r *Rules) HitLocation(t UnitType, roll int) (Location, error) {
	ht, ok := r.hitTable(t)
	if !ok {
		return Location{}, fault.State("ruleset: %s has no hit table for %s", r.Name, t)
	}
	ref, ok := ht.Rolls[roll]
	if !ok {
		return Location{}, fault.Argument("ruleset: %s hit table has no entry for roll %d", t, roll)
	}
	loc, ok := r.Location(t, ref)
	if !ok {
		return Location{}, fault.State("ruleset: %s hit table names unknown location %q", t, ref)
	}
	return loc, nil
}

// TransferFrom returns the location damage moves into once loc is destroyed.
// It reports false when loc transfers nowhere.
func (r *Rules) TransferFrom(t UnitType, loc Location) (Location, bool) {
	ht, ok := r.hitTable(t)
	if !ok {
		return Location{}, false
	}
	return r.transfer(ht, loc)
}

func (r *Rules) transfer(ht HitTable, loc Location) (Location, bool) {
	for from, to := range ht.Transfers {
		l, ok := r.Location(ht.Type, from)
		if !ok || !l.Same(loc) {
			continue
		}
		return r.Location(ht.Type, to)
	}
	return Location{}, false
}

// validateHitTables reports every table entry that names an unknown location,
// every location given two transfers, and every transfer chain that loops.
func (r *Rules) validateHitTables() []error {
	var errs []error
	seen := map[UnitType]bool{}
	for _, ht := range r.HitTables {
		if seen[ht.Type] {
			errs = append(errs, fmt.Errorf("hit table for %s declared twice", ht.Type))
			continue
		}
		seen[ht.Type] = true
		errs = append(errs, r.checkHitTable(ht)...)
	}
	return errs
}

func (r *Rules) checkHitTable(ht HitTable) []error {
	var errs []error
	for roll, ref := range ht.Rolls {
		if _, ok := r.Location(ht.Type, ref); !ok {
			errs = append(errs, fmt.Errorf("%s hit table roll %d names unknown location %q", ht.Type, roll, ref))
		}
	}
	froms := make(map[LocationKey]string, len(ht.Transfers))
	for from, to := range ht.Transfers {
		for _, ref := range []string{from, to} {
			if _, ok := r.Location(ht.Type, ref); !ok {
				errs = append(errs, fmt.Errorf("%s hit table transfer names unknown location %q", ht.Type, ref))
			}
		}
		loc, ok := r.Location(ht.Type, from)
		if !ok {
			continue
		}
		if prev, dup := froms[loc.Key()]; dup {
			errs = append(errs, fmt.Errorf("%s hit table transfers %s twice (%q and %q)", ht.Type, loc, prev, from))
			continue
		}
		froms[loc.Key()] = from
	}
	if len(errs) > 0 {
		return errs
	}
	for from := range ht.Transfers {
		if r.transferLoops(ht, from) {
			errs = append(errs, fmt.Errorf("%s hit table transfer from %q loops", ht.Type, from))
		}
	}
	return errs
}

func (r *Rules) transferLoops(ht HitTable, from string) bool {
	loc, ok := r.Location(ht.Type, from)
	if !ok {
		return false
	}
	visited := map[LocationKey]bool{loc.Key(): true}
	for range len(ht.Transfers) {
		next, ok := r.transfer(ht, loc)
		if !ok {
			return false
		}
		if visited[next.Key()] {
			return true
		}
		visited[next.Key()] = true
		loc = next
	}
	return false
}
