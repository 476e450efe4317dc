// Package inventory provides equipment definitions, their YAML loader, and the
// tonnage-budget loadout controller.
package inventory

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// Equipment defines an installable item loaded from the equipment catalog.
type Equipment struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Abbrev string `yaml:"abbrev"` // empty when the item has no abbreviation
	// Mass is the item mass in tons.
	Mass float64 `yaml:"mass"`
	// Size is the number of critical slots the item occupies.
	Size      int                `yaml:"size"`
	Modifiers []ruleset.Modifier `yaml:"modifiers"`
}

// NewEquipment returns a validated Equipment.
//
// Postcondition: returns the Equipment or an ErrInvalidArgument error.
func NewEquipment(id, name, abbrev string, mass float64, size int, mods ...ruleset.Modifier) (*Equipment, error) {
	e := &Equipment{ID: id, Name: name, Abbrev: abbrev, Mass: mass, Size: size, Modifiers: mods}
	if err := e.Validate(); err != nil {
		return nil, fault.Argument("inventory: %v", err)
	}
	return e, nil
}

// Validate reports an error if the Equipment is missing its name or carries
// an illegal mass, size, or modifier.
func (e *Equipment) Validate() error {
	var errs []error
	if e.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if math.IsNaN(e.Mass) || math.IsInf(e.Mass, 0) || e.Mass < 0 {
		errs = append(errs, fmt.Errorf("mass must be a finite value >= 0, got %v", e.Mass))
	}
	if e.Size < 0 {
		errs = append(errs, fmt.Errorf("size must be >= 0, got %d", e.Size))
	}
	for _, m := range e.Modifiers {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("equipment validation failed: %v", errs)
	}
	return nil
}

// Tons returns the mass as an exact decimal.
func (e *Equipment) Tons() decimal.Decimal {
	return decimal.NewFromFloat(e.Mass)
}

// Same reports whether e and other denote the same catalog item: the same
// pointer, or the same non-empty ID.
func (e *Equipment) Same(other *Equipment) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e == other || (e.ID != "" && e.ID == other.ID)
}

// String returns the name followed by one "+" per modifier.
func (e *Equipment) String() string {
	return e.Name + strings.Repeat("+", len(e.Modifiers))
}

// LoadEquipment reads all *.yaml and *.yml files from dir, parses each as an
// Equipment, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid definitions (non-nil) or the first error;
// malformed or invalid content is ErrInvalidArgument.
func LoadEquipment(dir string) ([]*Equipment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadEquipment: cannot read directory %q: %w", dir, err)
	}

	items := []*Equipment{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadEquipment: cannot read file %q: %w", path, err)
		}
		var e Equipment
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fault.Argument("LoadEquipment: cannot parse file %q: %v", path, err)
		}
		if e.ID == "" {
			return nil, fault.Argument("LoadEquipment: equipment in %q has no id", path)
		}
		if err := e.Validate(); err != nil {
			return nil, fault.Argument("LoadEquipment: invalid equipment in %q: %v", path, err)
		}
		items = append(items, &e)
	}
	return items, nil
}
