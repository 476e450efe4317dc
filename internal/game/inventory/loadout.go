package inventory

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// Entry pairs an installed item with the location it is mounted in.
type Entry struct {
	Location  ruleset.Location
	Equipment *Equipment
}

// Controller owns the tonnage budget of a unit and a base loadout that cannot
// be modified. Loadouts created from it are checked against its available tonnage.
//
// A Controller is immutable after construction.
type Controller struct {
	maxTonnage decimal.Decimal
	available  decimal.Decimal
	base       []Entry
}

func checkTonnage(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fault.Argument("inventory: %s must be finite, got %v", name, v)
	}
	return nil
}

// NewController returns a Controller with an explicit maximum and available tonnage.
//
// Precondition: maxTonnage >= 0; both values finite.
// Postcondition: returns the Controller or an ErrInvalidArgument error.
func NewController(maxTonnage, availableTonnage float64) (*Controller, error) {
	if err := checkTonnage("max tonnage", maxTonnage); err != nil {
		return nil, err
	}
	if err := checkTonnage("available tonnage", availableTonnage); err != nil {
		return nil, err
	}
	if maxTonnage < 0 {
		return nil, fault.Argument("inventory: max tonnage must be >= 0, got %v", maxTonnage)
	}
	return &Controller{
		maxTonnage: decimal.NewFromFloat(maxTonnage),
		available:  decimal.NewFromFloat(availableTonnage),
	}, nil
}

// NewControllerFromBase returns a Controller whose available tonnage is
// maxTonnage less the mass of every item in base. The base entries are copied.
//
// Precondition: maxTonnage >= 0 and finite; base holds no nil equipment.
// Postcondition: AvailableTonnage() == maxTonnage - Σ base masses.
func NewControllerFromBase(maxTonnage float64, base []Entry) (*Controller, error) {
	c, err := NewController(maxTonnage, maxTonnage)
	if err != nil {
		return nil, err
	}
	c.base = make([]Entry, 0, len(base))
	for _, e := range base {
		if e.Equipment == nil {
			return nil, fault.Argument("inventory: base loadout holds undefined equipment at %s", e.Location)
		}
		c.available = c.available.Sub(e.Equipment.Tons())
		c.base = append(c.base, e)
	}
	return c, nil
}

// MaxTonnage returns the maximum tonnage of the unit.
func (c *Controller) MaxTonnage() float64 {
	return c.maxTonnage.InexactFloat64()
}

// AvailableTonnage returns the tonnage a loadout may fill.
func (c *Controller) AvailableTonnage() float64 {
	return c.available.InexactFloat64()
}

// Base returns a copy of the base loadout.
func (c *Controller) Base() []Entry {
	out := make([]Entry, len(c.base))
	copy(out, c.base)
	return out
}

// NewLoadout returns an empty Loadout budgeted against c.
// A strict Loadout rejects any addition exceeding the available tonnage.
func (c *Controller) NewLoadout(strict bool) *Loadout {
	return &Loadout{
		ctrl:    c,
		strict:  strict,
		content: make(map[ruleset.LocationKey][]*Equipment),
	}
}

// NewLoadoutFromEntries returns a Loadout seeded with entries in order.
//
// Postcondition: returns the Loadout, or the first AddEquipment error.
func (c *Controller) NewLoadoutFromEntries(entries []Entry, strict bool) (*Loadout, error) {
	l := c.NewLoadout(strict)
	for _, e := range entries {
		if err := l.AddEquipment(e.Location, e.Equipment); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Loadout maps locations to installed equipment and keeps a running tonnage total.
// All methods are safe for concurrent use.
type Loadout struct {
	ctrl   *Controller
	strict bool

	mu      sync.Mutex
	order   []ruleset.Location
	content map[ruleset.LocationKey][]*Equipment
	total   decimal.Decimal
}

// Strict reports whether the loadout rejects additions over budget.
func (l *Loadout) Strict() bool {
	return l.strict
}

// AddEquipment mounts item at loc.
//
// Precondition: item must not be nil.
// Postcondition: on success item is appended at loc and its mass added to the
// total; a strict loadout that would exceed the available tonnage returns
// ErrInvalidState with no state modified.
func (l *Loadout) AddEquipment(loc ruleset.Location, item *Equipment) error {
	if item == nil {
		return fault.Argument("inventory: undefined equipment not accepted at %s", loc)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.total.Add(item.Tons())
	if l.strict && next.GreaterThan(l.ctrl.available) {
		return fault.State("inventory: %s too heavy: %s + %s tons exceeds %s available",
			item.Name, l.total, item.Tons(), l.ctrl.available)
	}
	k := loc.Key()
	if _, ok := l.content[k]; !ok {
		l.order = append(l.order, loc)
	}
	l.content[k] = append(l.content[k], item)
	l.total = next
	return nil
}

// RemoveEquipment removes the first item at loc that is the same as item.
//
// Postcondition: returns true iff an item was removed, in which case its mass
// is subtracted from the total; removing an absent item is a no-op.
func (l *Loadout) RemoveEquipment(loc ruleset.Location, item *Equipment) bool {
	if item == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	k := loc.Key()
	items := l.content[k]
	for i, it := range items {
		if !it.Same(item) {
			continue
		}
		l.content[k] = append(items[:i:i], items[i+1:]...)
		l.total = l.total.Sub(it.Tons())
		return true
	}
	return false
}

// Tonnage returns the total mass of the installed equipment.
func (l *Loadout) Tonnage() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total.InexactFloat64()
}

// Remaining returns the available tonnage not yet used; negative when a
// lenient loadout is over budget.
func (l *Loadout) Remaining() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctrl.available.Sub(l.total).InexactFloat64()
}

// OverBudget reports whether the total exceeds the available tonnage.
func (l *Loadout) OverBudget() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total.GreaterThan(l.ctrl.available)
}

// Equipment returns a snapshot of the items mounted at loc in mount order.
//
// Postcondition: the returned slice is a copy; mutations do not affect the loadout.
func (l *Loadout) Equipment(loc ruleset.Location) []*Equipment {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := l.content[loc.Key()]
	out := make([]*Equipment, len(items))
	copy(out, items)
	return out
}

// Entries flattens the loadout into (location, item) pairs, locations in the
// order they were first used and items in mount order.
func (l *Loadout) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []Entry{}
	for _, loc := range l.order {
		for _, it := range l.content[loc.Key()] {
			out = append(out, Entry{Location: loc, Equipment: it})
		}
	}
	return out
}
