package track

import (
	"fmt"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// Reduce folds the entries attached to loc, left to right, into one snapshot.
//
// The first entry for loc must define a maximum and becomes the accumulator.
// Each later entry adds its current as a delta; an entry that also defines a
// maximum first adds that maximum as a delta.
//
// Postcondition: returns a Track with a maximum, or an ErrInvalidState error
// when loc has no entries, a current precedes every maximum, or a step leaves
// the bounds. Entries of mixed kinds at loc are ErrInvalidArgument.
func Reduce(entries []Track, loc ruleset.Location) (Track, error) {
	var acc Track
	have := false
	for _, e := range entries {
		if !e.location.Same(loc) {
			continue
		}
		if !have {
			if !e.hasMax {
				return Track{}, fault.State("track: %s at %s: current set before maximum", e.kind, loc)
			}
			acc, have = e, true
			continue
		}
		if e.kind != acc.kind {
			return Track{}, fault.Argument("track: %s entry among %s entries at %s", e.kind, acc.kind, loc)
		}
		next, err := fold(acc, e)
		if err != nil {
			return Track{}, fmt.Errorf("track: reducing %s at %s: %w", acc.kind, loc, err)
		}
		acc = next
	}
	if !have {
		return Track{}, fault.State("track: no entries for location %s", loc)
	}
	return acc, nil
}

func fold(acc, e Track) (Track, error) {
	if e.hasMax {
		var err error
		if acc, err = acc.AddMaximum(int(e.max)); err != nil {
			return Track{}, err
		}
	}
	return acc.AddCurrent(int(e.current))
}

// Locations returns the distinct locations referenced by entries in first-seen order.
func Locations(entries []Track) []ruleset.Location {
	seen := make(map[ruleset.LocationKey]bool, len(entries))
	out := []ruleset.Location{}
	for _, e := range entries {
		k := e.location.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e.location)
	}
	return out
}

// ReduceAll reduces every location referenced by entries.
//
// Postcondition: returns one snapshot per location in first-seen order, or
// the first reduction error.
func ReduceAll(entries []Track) ([]Track, error) {
	locs := Locations(entries)
	out := make([]Track, 0, len(locs))
	for _, loc := range locs {
		t, err := Reduce(entries, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Has reports whether any entry is attached to loc.
func Has(entries []Track, loc ruleset.Location) bool {
	for _, e := range entries {
		if e.location.Same(loc) {
			return true
		}
	}
	return false
}
