// Package ruleset defines the static rules catalog consumed by the accounting
// engine: hit locations, unit types, and rule modifiers.
package ruleset

import (
	"strings"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// Location identifies a hit location on a unit.
//
// Identity is by Name and Abbrev; CriticalSlots is descriptive and does not
// take part in comparisons. A zero CriticalSlots marks an unslotted location.
type Location struct {
	Name          string `yaml:"name"`
	Abbrev        string `yaml:"abbrev"`
	CriticalSlots int    `yaml:"critical_slots"`
}

// LocationKey is the comparable identity of a Location, usable as a map key.
type LocationKey struct {
	Name   string
	Abbrev string
}

// NewLocation returns a validated Location.
//
// Precondition: name is non-empty; slots >= 0.
// Postcondition: returns the Location or an ErrInvalidArgument error.
func NewLocation(name, abbrev string, slots int) (Location, error) {
	if name == "" {
		return Location{}, fault.Argument("ruleset: location name must not be empty")
	}
	if slots < 0 {
		return Location{}, fault.Argument("ruleset: location %q has negative critical slot count %d", name, slots)
	}
	return Location{Name: name, Abbrev: abbrev, CriticalSlots: slots}, nil
}

// LocationFromSegments builds a Location whose name joins the segments with
// spaces and whose abbreviation is the first letter of each segment.
// ("Center", "Torso") yields "Center Torso" / "CT".
//
// Precondition: every segment is non-empty.
func LocationFromSegments(slots int, segments ...string) Location {
	var abbrev strings.Builder
	for _, s := range segments {
		abbrev.WriteString(s[:1])
	}
	return Location{
		Name:          strings.Join(segments, " "),
		Abbrev:        abbrev.String(),
		CriticalSlots: slots,
	}
}

// Key returns the identity of l.
func (l Location) Key() LocationKey {
	return LocationKey{Name: l.Name, Abbrev: l.Abbrev}
}

// Same reports whether l and other identify the same location.
func (l Location) Same(other Location) bool {
	return l.Key() == other.Key()
}

// Slotted reports whether the location carries critical slots.
func (l Location) Slotted() bool {
	return l.CriticalSlots > 0
}

// String returns the abbreviation, or the name when there is none.
func (l Location) String() string {
	if l.Abbrev != "" {
		return l.Abbrev
	}
	return l.Name
}
