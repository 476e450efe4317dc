// Package campaign holds the campaign containers that reference units and
// equipment: shops, missions, and star systems.
package campaign

import (
	"cmp"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

// Stock is a line of identical items offered by a shop.
type Stock struct {
	Item  *inventory.Equipment
	Count int
}

// Part is a unit chassis offered by a shop together with its default loadout.
type Part struct {
	Type    ruleset.UnitType
	Model   string
	Loadout []inventory.Entry
}

// Shop is a store of equipment, units, and unit parts.
// All methods are safe for concurrent use.
type Shop struct {
	id   string
	tags []string

	mu        sync.Mutex
	equipment []Stock // sorted by compareItems
	units     []*unit.Unit
	parts     []Part
}

// NewShop returns an empty Shop carrying tags.
func NewShop(tags ...string) *Shop {
	return &Shop{id: uuid.NewString(), tags: slices.Clone(tags)}
}

// compareItems orders equipment by name, then by modifier count, then by the
// rule and amount of each modifier in turn. Items comparing equal share a
// stock line.
func compareItems(a, b *inventory.Equipment) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.Modifiers), len(b.Modifiers)); c != 0 {
		return c
	}
	for i := range a.Modifiers {
		if c := cmp.Compare(a.Modifiers[i].Rule, b.Modifiers[i].Rule); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Modifiers[i].Modifier, b.Modifiers[i].Modifier); c != 0 {
			return c
		}
	}
	return 0
}

func (s *Shop) find(item *inventory.Equipment) (int, bool) {
	return slices.BinarySearchFunc(s.equipment, item, func(st Stock, it *inventory.Equipment) int {
		return compareItems(st.Item, it)
	})
}

func (s *Shop) ID() string { return s.id }

// Tags returns a copy of the shop tags.
func (s *Shop) Tags() []string { return slices.Clone(s.tags) }

// AddEquipment stocks count copies of item.
//
// Precondition: count >= 0.
// Postcondition: returns true iff the stock changed; a nil item or a zero
// count changes nothing.
func (s *Shop) AddEquipment(item *inventory.Equipment, count int) (bool, error) {
	if count < 0 {
		return false, fault.Argument("campaign: cannot add %d items", count)
	}
	if item == nil || count == 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := s.find(item)
	if found {
		s.equipment[i].Count += count
		return true, nil
	}
	s.equipment = slices.Insert(s.equipment, i, Stock{Item: item, Count: count})
	return true, nil
}

// RemoveEquipment takes count copies of item out of stock. A line whose count
// reaches zero is dropped.
//
// Precondition: count >= 0.
// Postcondition: returns true iff the stock changed; removing more than is
// stocked is ErrInvalidState and changes nothing.
func (s *Shop) RemoveEquipment(item *inventory.Equipment, count int) (bool, error) {
	if count < 0 {
		return false, fault.Argument("campaign: cannot remove %d items", count)
	}
	if item == nil || count == 0 {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := s.find(item)
	if !found {
		return false, nil
	}
	if have := s.equipment[i].Count; have < count {
		return false, fault.State("campaign: cannot remove %d %s, only %d stocked", count, item.Name, have)
	}
	s.equipment[i].Count -= count
	if s.equipment[i].Count == 0 {
		s.equipment = slices.Delete(s.equipment, i, i+1)
	}
	return true, nil
}

// Count returns the number of copies of item in stock.
func (s *Shop) Count(item *inventory.Equipment) int {
	if item == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, found := s.find(item); found {
		return s.equipment[i].Count
	}
	return 0
}

// Equipment returns a snapshot of the stock lines in sort order.
func (s *Shop) Equipment() []Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.equipment)
}

// AddUnit offers u for sale.
func (s *Shop) AddUnit(u *unit.Unit) error {
	if u == nil {
		return fault.Argument("campaign: undefined unit not accepted")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = append(s.units, u)
	return nil
}

// RemoveUnit withdraws the first unit with the same ID as u.
//
// Postcondition: returns true iff a unit was removed.
func (s *Shop) RemoveUnit(u *unit.Unit) bool {
	if u == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.units, func(c *unit.Unit) bool { return c == u || c.ID() == u.ID() })
	if i < 0 {
		return false
	}
	s.units = slices.Delete(s.units, i, i+1)
	return true
}

// Units returns a snapshot of the units for sale.
func (s *Shop) Units() []*unit.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.units)
}

// AddPart offers a unit chassis.
//
// Precondition: p.Type is valid; p.Model is empty or a valid model.
func (s *Shop) AddPart(p Part) error {
	if !p.Type.Valid() {
		return fault.Argument("campaign: part with invalid unit type %s", p.Type)
	}
	if p.Model != "" && !unit.ValidModel(p.Model) {
		return fault.Argument("campaign: part with invalid model %q", p.Model)
	}
	p.Loadout = slices.Clone(p.Loadout)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts = append(s.parts, p)
	return nil
}

// Parts returns a snapshot of the unit parts for sale.
func (s *Shop) Parts() []Part {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.parts)
}
