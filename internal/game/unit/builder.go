package unit

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/track"
)

// Builder assembles a Unit one step at a time, enforcing the track and
// tonnage invariants at every step.
//
// A mutable Builder applies each step to itself and returns itself. A
// copy-on-write Builder never changes: each successful step returns a new
// Builder, except steps that change nothing, which return the receiver.
// A failed step returns a nil Builder and leaves the receiver unchanged.
type Builder interface {
	Mutable() bool
	SetID(id string) (Builder, error)
	SetType(t ruleset.UnitType) (Builder, error)
	SetName(name string) (Builder, error)
	SetModel(model string) (Builder, error)
	SetTonnage(tons float64) (Builder, error)
	SetAvailableTonnage(tons float64) (Builder, error)
	AddEquipment(loc ruleset.Location, item *inventory.Equipment) (Builder, error)
	AddMaxArmor(loc ruleset.Location, amount int) (Builder, error)
	AddArmor(loc ruleset.Location, amount int) (Builder, error)
	AddMaxStructure(loc ruleset.Location, amount int) (Builder, error)
	AddStructure(loc ruleset.Location, amount int) (Builder, error)
	Build() (*Unit, error)
}

// NewBuilder returns an empty copy-on-write Builder for a Mech.
func NewBuilder() Builder {
	return &cowBuilder{d: newDraft()}
}

// NewMutableBuilder returns an empty mutable Builder for a Mech.
// A mutable Builder must not be shared between goroutines.
func NewMutableBuilder() Builder {
	return &mutableBuilder{d: newDraft()}
}

// Edit returns a copy-on-write Builder holding u's state, so further steps
// extend u's entry lists. The Unit is not modified.
func Edit(u *Unit) Builder {
	return &cowBuilder{d: &draft{
		id:        u.id,
		unitType:  u.unitType,
		name:      u.name,
		model:     u.model,
		tonnage:   u.tonnage.InexactFloat64(),
		available: u.available,
		equipment: slices.Clone(u.equipment),
		armor:     slices.Clone(u.armor),
		structure: slices.Clone(u.structure),
	}}
}

// draft is the builder state shared by both modes. Every step validates
// before it writes, so a failed step leaves the draft untouched. Steps report
// whether they changed anything.
type draft struct {
	id        string
	unitType  ruleset.UnitType
	name      string
	model     string
	tonnage   float64
	available decimal.Decimal
	equipment []inventory.Entry
	armor     []track.Track
	structure []track.Track
}

func newDraft() *draft {
	return &draft{unitType: ruleset.Mech}
}

func (d *draft) clone() *draft {
	c := *d
	c.equipment = slices.Clone(d.equipment)
	c.armor = slices.Clone(d.armor)
	c.structure = slices.Clone(d.structure)
	return &c
}

type step func(d *draft) (bool, error)

func setID(id string) step {
	return func(d *draft) (bool, error) {
		d.id = id
		return true, nil
	}
}

func setType(t ruleset.UnitType) step {
	return func(d *draft) (bool, error) {
		if !t.Valid() {
			return false, fault.Argument("unit: invalid unit type %s", t)
		}
		d.unitType = t
		return true, nil
	}
}

func setName(name string) step {
	return func(d *draft) (bool, error) {
		d.name = name
		return true, nil
	}
}

func setModel(model string) step {
	return func(d *draft) (bool, error) {
		if model == "" {
			return false, fault.Argument("unit: model must not be empty")
		}
		if !ValidModel(model) {
			return false, fault.Argument("unit: invalid model %q", model)
		}
		d.model = model
		return true, nil
	}
}

func setTonnage(tons float64) step {
	return func(d *draft) (bool, error) {
		if !finite(tons) || tons < 0 {
			return false, fault.Argument("unit: tonnage must be a finite value >= 0, got %v", tons)
		}
		d.tonnage = tons
		return true, nil
	}
}

func setAvailableTonnage(tons float64) step {
	return func(d *draft) (bool, error) {
		if !finite(tons) || tons < 0 {
			return false, fault.Argument("unit: available tonnage must be a finite value >= 0, got %v", tons)
		}
		d.available = decimal.NewFromFloat(tons)
		return true, nil
	}
}

func addEquipment(loc ruleset.Location, item *inventory.Equipment) step {
	return func(d *draft) (bool, error) {
		if item == nil {
			return false, fault.Argument("unit: undefined equipment not accepted at %s", loc)
		}
		if item.Tons().GreaterThan(d.available) {
			return false, fault.State("unit: %s needs %s tons, only %s available", item.Name, item.Tons(), d.available)
		}
		d.equipment = append(d.equipment, inventory.Entry{Location: loc, Equipment: item})
		d.available = d.available.Sub(item.Tons())
		return true, nil
	}
}

// appendChecked appends e to entries when the location still reduces.
func appendChecked(entries []track.Track, e track.Track) ([]track.Track, error) {
	next := append(slices.Clip(entries), e)
	if _, err := track.Reduce(next, e.Location()); err != nil {
		return nil, fault.AsState(err)
	}
	return next, nil
}

// addMaxArmor appends a maximum entry for a positive amount. A negative amount
// replaces every armor entry at loc with one reduced snapshot, so the
// location's earlier deltas are no longer listed.
func addMaxArmor(loc ruleset.Location, amount int) step {
	return func(d *draft) (bool, error) {
		switch {
		case amount == 0:
			return false, nil
		case amount > 0:
			e, err := track.ArmorMaximum(loc, amount)
			if err != nil {
				return false, err
			}
			next, err := appendChecked(d.armor, e)
			if err != nil {
				return false, err
			}
			d.armor = next
			return true, nil
		}
		if !track.Has(d.armor, loc) {
			return false, fault.State("unit: no maximum armor at %s to remove", loc)
		}
		snap, err := track.Reduce(d.armor, loc)
		if err != nil {
			return false, fault.AsState(err)
		}
		if held, _ := snap.Max(); -amount > int(held) {
			return false, fault.State("unit: cannot remove %d maximum armor at %s holding %d", -amount, loc, held)
		}
		compacted, err := snap.AddMaximum(amount)
		if err != nil {
			return false, fault.AsState(err)
		}
		d.armor = compact(d.armor, compacted)
		return true, nil
	}
}

// compact replaces every entry at snap's location with snap, keeping the
// position of the first one.
func compact(entries []track.Track, snap track.Track) []track.Track {
	out := make([]track.Track, 0, len(entries))
	placed := false
	for _, e := range entries {
		if !e.Location().Same(snap.Location()) {
			out = append(out, e)
			continue
		}
		if !placed {
			out = append(out, snap)
			placed = true
		}
	}
	return out
}

func addCurrent(kind track.Kind, entries *[]track.Track, loc ruleset.Location, amount int) (bool, error) {
	if !track.Has(*entries, loc) {
		return false, fault.State("unit: cannot alter %s at %s before setting its maximum", kind, loc)
	}
	if amount == 0 {
		return false, nil
	}
	e, err := track.Change(kind, loc, amount)
	if err != nil {
		return false, err
	}
	next, err := appendChecked(*entries, e)
	if err != nil {
		return false, err
	}
	*entries = next
	return true, nil
}

func addArmor(loc ruleset.Location, amount int) step {
	return func(d *draft) (bool, error) {
		return addCurrent(track.Armor, &d.armor, loc, amount)
	}
}

func addMaxStructure(loc ruleset.Location, amount int) step {
	return func(d *draft) (bool, error) {
		if amount == 0 {
			return false, nil
		}
		if amount < 0 {
			return false, fault.Argument("unit: structure maximum at %s cannot be reduced by %d", loc, amount)
		}
		e, err := track.New(track.Structure, loc, amount, 0)
		if err != nil {
			return false, err
		}
		next, err := appendChecked(d.structure, e)
		if err != nil {
			return false, err
		}
		d.structure = next
		return true, nil
	}
}

func addStructure(loc ruleset.Location, amount int) step {
	return func(d *draft) (bool, error) {
		return addCurrent(track.Structure, &d.structure, loc, amount)
	}
}

func (d *draft) build() (*Unit, error) {
	id := d.id
	if id == "" {
		id = uuid.NewString()
	}
	u, err := New(Params{
		ID:               id,
		Type:             d.unitType,
		Name:             d.name,
		Model:            d.model,
		Tonnage:          d.tonnage,
		AvailableTonnage: d.available.InexactFloat64(),
		Equipment:        d.equipment,
		Armor:            d.armor,
		Structure:        d.structure,
	})
	if err != nil {
		return nil, fault.AsState(err)
	}
	return u, nil
}

type mutableBuilder struct {
	d *draft
}

func (b *mutableBuilder) apply(s step) (Builder, error) {
	if _, err := s(b.d); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *mutableBuilder) Mutable() bool { return true }

func (b *mutableBuilder) SetID(id string) (Builder, error) {
	return b.apply(setID(id))
}

func (b *mutableBuilder) SetType(t ruleset.UnitType) (Builder, error) {
	return b.apply(setType(t))
}

func (b *mutableBuilder) SetName(name string) (Builder, error) {
	return b.apply(setName(name))
}

func (b *mutableBuilder) SetModel(model string) (Builder, error) {
	return b.apply(setModel(model))
}

func (b *mutableBuilder) SetTonnage(tons float64) (Builder, error) {
	return b.apply(setTonnage(tons))
}

func (b *mutableBuilder) SetAvailableTonnage(tons float64) (Builder, error) {
	return b.apply(setAvailableTonnage(tons))
}

func (b *mutableBuilder) AddEquipment(loc ruleset.Location, item *inventory.Equipment) (Builder, error) {
	return b.apply(addEquipment(loc, item))
}

func (b *mutableBuilder) AddMaxArmor(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addMaxArmor(loc, amount))
}

func (b *mutableBuilder) AddArmor(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addArmor(loc, amount))
}

func (b *mutableBuilder) AddMaxStructure(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addMaxStructure(loc, amount))
}

func (b *mutableBuilder) AddStructure(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addStructure(loc, amount))
}

// Build returns a Unit from the current state. Construction failures are
// reported as ErrInvalidState.
func (b *mutableBuilder) Build() (*Unit, error) {
	return b.d.build()
}

type cowBuilder struct {
	d *draft
}

func (b *cowBuilder) apply(s step) (Builder, error) {
	next := b.d.clone()
	changed, err := s(next)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}
	return &cowBuilder{d: next}, nil
}

func (b *cowBuilder) Mutable() bool { return false }

func (b *cowBuilder) SetID(id string) (Builder, error) {
	return b.apply(setID(id))
}

func (b *cowBuilder) SetType(t ruleset.UnitType) (Builder, error) {
	return b.apply(setType(t))
}

func (b *cowBuilder) SetName(name string) (Builder, error) {
	return b.apply(setName(name))
}

func (b *cowBuilder) SetModel(model string) (Builder, error) {
	return b.apply(setModel(model))
}

func (b *cowBuilder) SetTonnage(tons float64) (Builder, error) {
	return b.apply(setTonnage(tons))
}

func (b *cowBuilder) SetAvailableTonnage(tons float64) (Builder, error) {
	return b.apply(setAvailableTonnage(tons))
}

func (b *cowBuilder) AddEquipment(loc ruleset.Location, item *inventory.Equipment) (Builder, error) {
	return b.apply(addEquipment(loc, item))
}

func (b *cowBuilder) AddMaxArmor(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addMaxArmor(loc, amount))
}

func (b *cowBuilder) AddArmor(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addArmor(loc, amount))
}

func (b *cowBuilder) AddMaxStructure(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addMaxStructure(loc, amount))
}

func (b *cowBuilder) AddStructure(loc ruleset.Location, amount int) (Builder, error) {
	return b.apply(addStructure(loc, amount))
}

// Build returns a Unit from the current state. Construction failures are
// reported as ErrInvalidState.
func (b *cowBuilder) Build() (*Unit, error) {
	return b.d.build()
}
