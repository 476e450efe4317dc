// Package combat resolves weapon hits against a unit's armor and structure.
//
// Damage strips armor at the struck location first, then structure. Once a
// location's structure is gone the rest transfers inward along the rules'
// transfer chain. All damage is applied through a unit.Builder, so the
// resulting Unit carries the hit as ordinary track entries.
package combat

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign-aid/internal/game/dice"
	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/track"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

// Applied is the damage one location absorbed from a hit.
type Applied struct {
	Location  ruleset.Location
	Armor     int
	Structure int
}

// Hit is the outcome of one damaging hit.
type Hit struct {
	// Roll is the hit location roll; nil when the location was given.
	Roll *dice.Result
	// Location is the location struck.
	Location ruleset.Location
	// Damage is the damage the hit carried.
	Damage int
	// Applied lists every location that absorbed damage, struck location first.
	Applied []Applied
	// Destroyed lists the locations whose structure this hit reduced to zero.
	Destroyed []ruleset.Location
	// Excess is the damage left over with no location to transfer into.
	Excess int
}

// Absorbed returns the damage the unit took from the hit.
//
// Postcondition: Absorbed() + Excess == Damage.
func (h Hit) Absorbed() int {
	n := 0
	for _, a := range h.Applied {
		n += a.Armor + a.Structure
	}
	return n
}

// Resolver applies hits to units under a rules set.
type Resolver struct {
	rules  *ruleset.Rules
	roller *dice.Roller
	logger *zap.Logger
}

// NewResolver returns a Resolver rolling locations with roller.
// A nil logger discards the log.
//
// Precondition: rules and roller are non-nil.
func NewResolver(rules *ruleset.Rules, roller *dice.Roller, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{rules: rules, roller: roller, logger: logger}
}

// Resolve rolls 2d6 on u's hit table and applies damage at the result.
//
// Postcondition: u is not modified; the damaged Unit is returned.
func (r *Resolver) Resolve(u *unit.Unit, damage int) (*unit.Unit, Hit, error) {
	roll := r.roller.Roll(dice.TwoD6)
	loc, err := r.rules.HitLocation(u.Type(), roll.Total())
	if err != nil {
		return nil, Hit{}, err
	}
	next, hit, err := r.Apply(u, loc, damage)
	if err != nil {
		return nil, Hit{}, err
	}
	hit.Roll = &roll
	return next, hit, nil
}

// Volley resolves each damage value in order, every hit landing on the unit
// left by the one before.
//
// Postcondition: on error no Unit is returned and u is not modified.
func (r *Resolver) Volley(u *unit.Unit, damages []int) (*unit.Unit, []Hit, error) {
	hits := make([]Hit, 0, len(damages))
	for i, d := range damages {
		next, hit, err := r.Resolve(u, d)
		if err != nil {
			return nil, nil, fmt.Errorf("combat: hit %d: %w", i+1, err)
		}
		u = next
		hits = append(hits, hit)
	}
	return u, hits, nil
}

// Apply deals damage to u at loc.
//
// Precondition: damage >= 0; loc is a hit location of u's type.
// Postcondition: u is not modified; the damaged Unit is returned, or u itself
// when damage is zero.
func (r *Resolver) Apply(u *unit.Unit, loc ruleset.Location, damage int) (*unit.Unit, Hit, error) {
	if damage < 0 {
		return nil, Hit{}, fault.Argument("combat: damage must be >= 0, got %d", damage)
	}
	hit := Hit{Location: loc, Damage: damage}
	if damage == 0 {
		return u, hit, nil
	}

	b := unit.Edit(u)
	remaining := damage
	at := loc
	for remaining > 0 {
		a := Applied{Location: at}
		armor, hasArmor, err := current(u.ArmorAt(at))
		if err != nil {
			return nil, Hit{}, err
		}
		if hasArmor {
			a.Armor = min(remaining, armor)
			remaining -= a.Armor
			if b, err = b.AddArmor(at, -a.Armor); err != nil {
				return nil, Hit{}, err
			}
		}
		structure, hasStructure, err := current(u.StructureAt(at))
		if err != nil {
			return nil, Hit{}, err
		}
		if hasStructure && remaining > 0 {
			a.Structure = min(remaining, structure)
			remaining -= a.Structure
			if b, err = b.AddStructure(at, -a.Structure); err != nil {
				return nil, Hit{}, err
			}
			if a.Structure > 0 && a.Structure == structure {
				hit.Destroyed = append(hit.Destroyed, at)
			}
		}
		if a.Armor > 0 || a.Structure > 0 {
			hit.Applied = append(hit.Applied, a)
		}
		if remaining == 0 {
			break
		}
		next, ok := r.rules.TransferFrom(u.Type(), at)
		if !ok {
			hit.Excess = remaining
			break
		}
		at = next
	}

	next, err := b.Build()
	if err != nil {
		return nil, Hit{}, err
	}
	r.logger.Debug("hit applied",
		zap.String("unit", u.String()),
		zap.Stringer("location", loc),
		zap.Int("damage", damage),
		zap.Int("excess", hit.Excess),
		zap.Int("destroyed", len(hit.Destroyed)),
	)
	return next, hit, nil
}

// current unwraps a reduced snapshot. A location with no entries reports
// false; any other reduction failure is returned.
func current(t track.Track, err error) (int, bool, error) {
	if err != nil {
		if errors.Is(err, fault.ErrInvalidState) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return int(t.Current()), true, nil
}
