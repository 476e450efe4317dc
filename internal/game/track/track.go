// Package track models bounded per-location quantities (armor and internal
// structure) as immutable delta entries, and folds ordered entries into a
// canonical snapshot.
package track

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// Kind distinguishes armor tracks from internal structure tracks.
type Kind uint8

const (
	// Armor tracks may carry pure damage/repair deltas without a maximum.
	Armor Kind = iota + 1
	// Structure tracks require a positive maximum whenever one is defined.
	Structure
)

func (k Kind) String() string {
	switch k {
	case Armor:
		return "armor"
	case Structure:
		return "structure"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is Armor or Structure.
func (k Kind) Valid() bool {
	return k == Armor || k == Structure
}

// Track is a bounded quantity attached to a location.
//
// A Track with a maximum satisfies 0 <= current <= max. A Track without a
// maximum is a pure delta to current and never alters the maximum; an absent
// maximum is distinct from a maximum of zero.
//
// Track is an immutable, comparable value.
type Track struct {
	kind     Kind
	location ruleset.Location
	max      int16
	hasMax   bool
	current  int16
}

func inInt16(v int) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}

func newTrack(kind Kind, loc ruleset.Location, maximum int, hasMax bool, current int) (Track, error) {
	if !kind.Valid() {
		return Track{}, fault.Argument("track: unknown kind %s", kind)
	}
	if loc.Name == "" {
		return Track{}, fault.Argument("track: %s entry without a location", kind)
	}
	if !inInt16(current) {
		return Track{}, fault.Argument("track: %s current %d at %s is out of range", kind, current, loc)
	}
	if hasMax {
		if !inInt16(maximum) {
			return Track{}, fault.Argument("track: %s maximum %d at %s is out of range", kind, maximum, loc)
		}
		if kind == Structure && maximum <= 0 {
			return Track{}, fault.Argument("track: structure maximum at %s must be positive, got %d", loc, maximum)
		}
		if current < 0 {
			return Track{}, fault.Argument("track: %s current %d at %s is negative", kind, current, loc)
		}
		if current > maximum {
			return Track{}, fault.Argument("track: %s current %d exceeds maximum %d at %s", kind, current, maximum, loc)
		}
	}
	return Track{kind: kind, location: loc, max: int16(maximum), hasMax: hasMax, current: int16(current)}, nil
}

// New returns a Track of kind that establishes maximum at loc with the given current.
//
// Postcondition: returns the Track or an ErrInvalidArgument error.
func New(kind Kind, loc ruleset.Location, maximum, current int) (Track, error) {
	return newTrack(kind, loc, maximum, true, current)
}

// Delta returns a Track of kind that changes current by delta and leaves the maximum alone.
func Delta(kind Kind, loc ruleset.Location, delta int) (Track, error) {
	return newTrack(kind, loc, 0, false, delta)
}

// Kind returns the kind of t.
func (t Track) Kind() Kind { return t.kind }

// Location returns the location t is attached to.
func (t Track) Location() ruleset.Location { return t.location }

// Max returns the maximum and whether one is defined.
func (t Track) Max() (int16, bool) { return t.max, t.hasMax }

// HasMax reports whether t defines a maximum.
func (t Track) HasMax() bool { return t.hasMax }

// Current returns the current value, or the current delta when no maximum is defined.
func (t Track) Current() int16 { return t.current }

// String renders a snapshot as "CT 12/16" and a pure delta as "CT -3".
func (t Track) String() string {
	if t.hasMax {
		return fmt.Sprintf("%s %d/%d", t.location, t.current, t.max)
	}
	return fmt.Sprintf("%s %+d", t.location, t.current)
}

// AddMaximum returns a Track whose maximum is (max or 0) + delta and whose
// current is unchanged.
//
// Postcondition: a result outside the 16-bit range is ErrInvalidArgument; a
// maximum below current, or a non-positive structure maximum, is ErrInvalidState.
func (t Track) AddMaximum(delta int) (Track, error) {
	next := int(t.max) + delta
	if !t.hasMax {
		next = delta
	}
	if !inInt16(next) {
		return Track{}, fault.Argument("track: %s maximum %d at %s is out of range", t.kind, next, t.location)
	}
	if t.kind == Structure && next <= 0 {
		return Track{}, fault.State("track: cannot reduce structure maximum at %s to %d", t.location, next)
	}
	if int(t.current) > next {
		return Track{}, fault.State("track: cannot reduce %s maximum at %s to %d below current %d", t.kind, t.location, next, t.current)
	}
	return newTrack(t.kind, t.location, next, true, int(t.current))
}

// AddCurrent returns a Track whose current is current + delta. A zero delta
// returns t itself.
//
// Postcondition: a current below zero or above a defined maximum is ErrInvalidState.
func (t Track) AddCurrent(delta int) (Track, error) {
	if delta == 0 {
		return t, nil
	}
	next := int(t.current) + delta
	if next < 0 {
		return Track{}, fault.State("track: cannot reduce %s at %s below zero (%d%+d)", t.kind, t.location, t.current, delta)
	}
	if t.hasMax && next > int(t.max) {
		return Track{}, fault.State("track: cannot raise %s at %s above maximum %d (%d%+d)", t.kind, t.location, t.max, t.current, delta)
	}
	return newTrack(t.kind, t.location, int(t.max), t.hasMax, next)
}
