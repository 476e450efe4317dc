package inventory

import (
	"sort"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// Registry holds loaded equipment definitions indexed by ID.
type Registry struct {
	equipment map[string]*Equipment
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{equipment: make(map[string]*Equipment)}
}

// NewRegistryFrom registers every definition in defs.
//
// Postcondition: returns the Registry or the first registration error.
func NewRegistryFrom(defs []*Equipment) (*Registry, error) {
	r := NewRegistry()
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds e to the registry.
//
// Precondition:  e must not be nil and must carry an ID.
// Postcondition: Equipment(e.ID) returns (e, true); returns error if e.ID is already registered.
func (r *Registry) Register(e *Equipment) error {
	if e == nil || e.ID == "" {
		return fault.Argument("inventory: Registry.Register: equipment must be non-nil with an ID")
	}
	if _, exists := r.equipment[e.ID]; exists {
		return fault.Argument("inventory: Registry.Register: equipment ID %q already registered", e.ID)
	}
	r.equipment[e.ID] = e
	return nil
}

// Equipment returns the definition for id and whether it was found.
func (r *Registry) Equipment(id string) (*Equipment, bool) {
	e, ok := r.equipment[id]
	return e, ok
}

// All returns all registered definitions ordered by ID.
//
// Postcondition: len(result) == Len().
func (r *Registry) All() []*Equipment {
	out := make([]*Equipment, 0, len(r.equipment))
	for _, e := range r.equipment {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.equipment)
}
