package unit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// Record is a unit sheet as stored in YAML. Track and equipment lines are
// applied in order, so a sheet can replay a unit's damage history.
type Record struct {
	ID               string            `yaml:"id"`
	Type             ruleset.UnitType  `yaml:"type"`
	Name             string            `yaml:"name"`
	Model            string            `yaml:"model"`
	Tonnage          float64           `yaml:"tonnage"`
	AvailableTonnage *float64          `yaml:"available_tonnage"` // defaults to Tonnage
	Armor            []TrackRecord     `yaml:"armor"`
	Structure        []TrackRecord     `yaml:"structure"`
	Equipment        []EquipmentRecord `yaml:"equipment"`
}

// TrackRecord raises the maximum at a location by Max, then changes the
// current value by Change.
type TrackRecord struct {
	Location string `yaml:"location"`
	Max      int    `yaml:"max"`
	Change   int    `yaml:"change"`
}

// EquipmentRecord mounts the catalog item ID at a location.
type EquipmentRecord struct {
	Location string `yaml:"location"`
	ID       string `yaml:"id"`
}

// LoadRecord reads one unit sheet from a YAML file.
//
// Precondition: path names a readable YAML file.
// Postcondition: returns the parsed Record or a non-nil error.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadRecord: cannot read file %q: %w", path, err)
	}
	r := &Record{Type: ruleset.Mech}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fault.Argument("LoadRecord: cannot parse file %q: %v", path, err)
	}
	return r, nil
}

// LoadRecords reads every *.yaml and *.yml unit sheet in dir, in file name order.
//
// Postcondition: returns a non-nil slice, or the first error encountered.
func LoadRecords(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadRecords: cannot read directory %q: %w", dir, err)
	}
	out := []*Record{}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		r, err := LoadRecord(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Build applies the sheet to b and builds the Unit. Locations resolve
// through rules for the sheet's unit type and equipment through reg.
//
// Precondition: rules and reg are non-nil; b is a fresh Builder.
// Postcondition: returns the Unit, or an error naming the offending line.
func (r *Record) Build(rules *ruleset.Rules, reg *inventory.Registry, b Builder) (*Unit, error) {
	if !rules.Allows(r.Type) {
		return nil, fault.Argument("unit: %s units are not allowed by %s", r.Type, rules.Name)
	}
	available := r.Tonnage
	if r.AvailableTonnage != nil {
		available = *r.AvailableTonnage
	}
	steps := []func(Builder) (Builder, error){
		func(b Builder) (Builder, error) { return b.SetID(r.ID) },
		func(b Builder) (Builder, error) { return b.SetType(r.Type) },
		func(b Builder) (Builder, error) { return b.SetName(r.Name) },
		func(b Builder) (Builder, error) { return b.SetTonnage(r.Tonnage) },
		func(b Builder) (Builder, error) { return b.SetAvailableTonnage(available) },
	}
	if r.Model != "" {
		steps = append(steps, func(b Builder) (Builder, error) { return b.SetModel(r.Model) })
	}
	for _, step := range steps {
		var err error
		if b, err = step(b); err != nil {
			return nil, fmt.Errorf("unit %q: %w", r.Name, err)
		}
	}

	var err error
	for i, tr := range r.Armor {
		if b, err = r.applyTrack(rules, b, tr, false); err != nil {
			return nil, fmt.Errorf("unit %q: armor line %d: %w", r.Name, i+1, err)
		}
	}
	for i, tr := range r.Structure {
		if b, err = r.applyTrack(rules, b, tr, true); err != nil {
			return nil, fmt.Errorf("unit %q: structure line %d: %w", r.Name, i+1, err)
		}
	}
	for i, er := range r.Equipment {
		loc, ok := rules.Location(r.Type, er.Location)
		if !ok {
			return nil, fault.Argument("unit %q: equipment line %d: unknown location %q", r.Name, i+1, er.Location)
		}
		item, ok := reg.Equipment(er.ID)
		if !ok {
			return nil, fault.Argument("unit %q: equipment line %d: unknown equipment %q", r.Name, i+1, er.ID)
		}
		if b, err = b.AddEquipment(loc, item); err != nil {
			return nil, fmt.Errorf("unit %q: equipment line %d: %w", r.Name, i+1, err)
		}
	}
	return b.Build()
}

// applyTrack raises the maximum and then changes the current value at the
// line's location, on armor or structure.
func (r *Record) applyTrack(rules *ruleset.Rules, b Builder, tr TrackRecord, structure bool) (Builder, error) {
	loc, ok := rules.Location(r.Type, tr.Location)
	if !ok {
		return nil, fault.Argument("unknown location %q", tr.Location)
	}
	var err error
	if structure {
		if b, err = b.AddMaxStructure(loc, tr.Max); err != nil {
			return nil, err
		}
		return b.AddStructure(loc, tr.Change)
	}
	if b, err = b.AddMaxArmor(loc, tr.Max); err != nil {
		return nil, err
	}
	return b.AddArmor(loc, tr.Change)
}
