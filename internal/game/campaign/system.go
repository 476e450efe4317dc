package campaign

import (
	"slices"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// System is a star system with its public shops and mission board.
//
// A System never changes; AddMission and RemoveMission return a new System.
type System struct {
	name     string
	faction  string
	shops    []*Shop
	missions []*Mission
}

// NewSystem returns a System named name owned by faction. Nil shops and
// missions are dropped.
func NewSystem(name, faction string, shops []*Shop, missions []*Mission) *System {
	return &System{
		name:     name,
		faction:  faction,
		shops:    slices.DeleteFunc(slices.Clone(shops), func(s *Shop) bool { return s == nil }),
		missions: slices.DeleteFunc(slices.Clone(missions), func(m *Mission) bool { return m == nil }),
	}
}

func (s *System) Name() string         { return s.name }
func (s *System) Faction() string      { return s.faction }
func (s *System) Shops() []*Shop       { return slices.Clone(s.shops) }
func (s *System) Missions() []*Mission { return slices.Clone(s.missions) }

func (s *System) check(m *Mission) error {
	if m == nil {
		return fault.Argument("campaign: undefined mission")
	}
	if !m.OfferedIn(s.name) {
		return fault.Argument("campaign: mission %q in %s cannot be offered in %s without travel time", m.Name, m.System, s.name)
	}
	return nil
}

// AddMission returns a copy of s with m appended to the mission board.
func (s *System) AddMission(m *Mission) (*System, error) {
	if err := s.check(m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	next := *s
	next.missions = append(slices.Clip(s.missions), m)
	return &next, nil
}

// RemoveMission returns a copy of s without m. Removing a mission that is not
// listed returns an equal copy.
func (s *System) RemoveMission(m *Mission) (*System, error) {
	if err := s.check(m); err != nil {
		return nil, err
	}
	next := *s
	next.missions = slices.DeleteFunc(slices.Clone(s.missions), func(c *Mission) bool { return c == m })
	return &next, nil
}
