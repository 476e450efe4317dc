package campaign

import (
	"math"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// ReputationChange is the reputation a mission yields with the employer
// (Positive) and with the opposing force (Negative).
type ReputationChange struct {
	Positive int16
	Negative int16
}

// RepChange returns a ReputationChange of gain with the employer and loss with
// the opposing force.
//
// Precondition: gain >= 0; loss <= 0; both fit in 16 bits.
func RepChange(gain, loss int) (ReputationChange, error) {
	if gain < 0 {
		return ReputationChange{}, fault.Argument("campaign: negative reputation change %d for employer", gain)
	}
	if loss > 0 {
		return ReputationChange{}, fault.Argument("campaign: positive reputation change %d for opponent", loss)
	}
	if gain > math.MaxInt16 || loss < math.MinInt16 {
		return ReputationChange{}, fault.Argument("campaign: reputation change %d/%d out of range", gain, loss)
	}
	return ReputationChange{Positive: int16(gain), Negative: int16(loss)}, nil
}

// EvenChange returns a ReputationChange that gains amount with the employer
// and loses the same amount with the opposing force.
func EvenChange(amount int) (ReputationChange, error) {
	if amount < 0 {
		return ReputationChange{}, fault.Argument("campaign: negative reputation change %d for employer", amount)
	}
	return RepChange(amount, -amount)
}

// Terrain is a named battlefield biome with the rule modifiers it imposes.
type Terrain struct {
	Name      string
	Modifiers []ruleset.Modifier
}

// Mission is a contract offered in a system.
type Mission struct {
	Name       string
	Type       string
	Employer   string
	OpFor      string
	Difficulty int
	Terrain    Terrain
	Salary     []int
	Reputation []ReputationChange
	// System is the system the mission takes place in; empty for a local mission.
	System string
	// TravelTime is the travel time to System in days.
	TravelTime int
}

// Validate reports an error if the mission is unnamed or carries a negative
// difficulty or travel time.
func (m *Mission) Validate() error {
	if m.Name == "" {
		return fault.Argument("campaign: mission name must not be empty")
	}
	if m.Difficulty < 0 {
		return fault.Argument("campaign: mission %q has negative difficulty %d", m.Name, m.Difficulty)
	}
	if m.TravelTime < 0 {
		return fault.Argument("campaign: mission %q has negative travel time %d", m.Name, m.TravelTime)
	}
	for _, mod := range m.Terrain.Modifiers {
		if err := mod.Validate(); err != nil {
			return fault.Argument("campaign: mission %q: %v", m.Name, err)
		}
	}
	return nil
}

// OfferedIn reports whether the mission may be listed in system: it takes
// place there, is local, or requires travel.
func (m *Mission) OfferedIn(system string) bool {
	return m.System == "" || m.System == system || m.TravelTime > 0
}

// EffectiveDifficulty returns the mission difficulty after the terrain's
// "difficulty" modifiers.
func (m *Mission) EffectiveDifficulty() int64 {
	return ruleset.Apply("difficulty", float64(m.Difficulty), m.Terrain.Modifiers)
}
