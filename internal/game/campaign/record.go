package campaign

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

// SystemRecord is a star system as stored in YAML.
type SystemRecord struct {
	Name     string          `yaml:"name"`
	Faction  string          `yaml:"faction"`
	Shops    []ShopRecord    `yaml:"shops"`
	Missions []MissionRecord `yaml:"missions"`
}

// ShopRecord lists a shop's stock by catalog ID and its units by model.
type ShopRecord struct {
	Tags      []string      `yaml:"tags"`
	Equipment []StockRecord `yaml:"equipment"`
	Units     []string      `yaml:"units"`
	Parts     []PartRecord  `yaml:"parts"`
}

type StockRecord struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

type PartRecord struct {
	Type    ruleset.UnitType       `yaml:"type"`
	Model   string                 `yaml:"model"`
	Loadout []unit.EquipmentRecord `yaml:"loadout"`
}

// MissionRecord is a mission contract. Each reputation line is either an even
// change or a gain and loss pair.
type MissionRecord struct {
	Name       string             `yaml:"name"`
	Type       string             `yaml:"type"`
	Employer   string             `yaml:"employer"`
	OpFor      string             `yaml:"opfor"`
	Difficulty int                `yaml:"difficulty"`
	Terrain    TerrainRecord      `yaml:"terrain"`
	Salary     []int              `yaml:"salary"`
	Reputation []ReputationRecord `yaml:"reputation"`
	System     string             `yaml:"system"`
	TravelTime int                `yaml:"travel_time"`
}

type TerrainRecord struct {
	Name      string             `yaml:"name"`
	Modifiers []ruleset.Modifier `yaml:"modifiers"`
}

type ReputationRecord struct {
	Even int `yaml:"even"`
	Gain int `yaml:"gain"`
	Loss int `yaml:"loss"`
}

// LoadSystem reads one star system from a YAML file.
//
// Postcondition: returns the parsed record, or a non-nil error; malformed
// content is ErrInvalidArgument.
func LoadSystem(path string) (*SystemRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadSystem: cannot read file %q: %w", path, err)
	}
	var r SystemRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fault.Argument("LoadSystem: cannot parse file %q: %v", path, err)
	}
	return &r, nil
}

// Build resolves the record into a System. Stock resolves through reg, shop
// units by model among units, and part loadouts through rules.
//
// Precondition: rules and reg are non-nil.
// Postcondition: returns the System, or an error naming the offending shop or mission.
func (r *SystemRecord) Build(rules *ruleset.Rules, reg *inventory.Registry, units []*unit.Unit) (*System, error) {
	byModel := make(map[string]*unit.Unit, len(units))
	for _, u := range units {
		if u.Model() != "" {
			byModel[u.Model()] = u
		}
	}
	shops := make([]*Shop, 0, len(r.Shops))
	for i, sr := range r.Shops {
		s, err := sr.build(rules, reg, byModel)
		if err != nil {
			return nil, fmt.Errorf("system %q: shop %d: %w", r.Name, i+1, err)
		}
		shops = append(shops, s)
	}
	sys := NewSystem(r.Name, r.Faction, shops, nil)
	for _, mr := range r.Missions {
		m, err := mr.build()
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", r.Name, err)
		}
		if sys, err = sys.AddMission(m); err != nil {
			return nil, fmt.Errorf("system %q: %w", r.Name, err)
		}
	}
	return sys, nil
}

func (sr ShopRecord) build(rules *ruleset.Rules, reg *inventory.Registry, byModel map[string]*unit.Unit) (*Shop, error) {
	s := NewShop(sr.Tags...)
	for _, st := range sr.Equipment {
		item, ok := reg.Equipment(st.ID)
		if !ok {
			return nil, fault.Argument("unknown equipment %q", st.ID)
		}
		if _, err := s.AddEquipment(item, st.Count); err != nil {
			return nil, err
		}
	}
	for _, model := range sr.Units {
		u, ok := byModel[model]
		if !ok {
			return nil, fault.Argument("unknown unit model %q", model)
		}
		if err := s.AddUnit(u); err != nil {
			return nil, err
		}
	}
	for _, pr := range sr.Parts {
		p := Part{Type: pr.Type, Model: pr.Model}
		for _, er := range pr.Loadout {
			loc, ok := rules.Location(pr.Type, er.Location)
			if !ok {
				return nil, fault.Argument("part %s: unknown location %q", pr.Model, er.Location)
			}
			item, ok := reg.Equipment(er.ID)
			if !ok {
				return nil, fault.Argument("part %s: unknown equipment %q", pr.Model, er.ID)
			}
			p.Loadout = append(p.Loadout, inventory.Entry{Location: loc, Equipment: item})
		}
		if err := s.AddPart(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (mr MissionRecord) build() (*Mission, error) {
	m := &Mission{
		Name:       mr.Name,
		Type:       mr.Type,
		Employer:   mr.Employer,
		OpFor:      mr.OpFor,
		Difficulty: mr.Difficulty,
		Terrain:    Terrain{Name: mr.Terrain.Name, Modifiers: mr.Terrain.Modifiers},
		Salary:     mr.Salary,
		System:     mr.System,
		TravelTime: mr.TravelTime,
	}
	for i, rr := range mr.Reputation {
		var (
			rc  ReputationChange
			err error
		)
		if rr.Even != 0 {
			rc, err = EvenChange(rr.Even)
		} else {
			rc, err = RepChange(rr.Gain, rr.Loss)
		}
		if err != nil {
			return nil, fmt.Errorf("mission %q: reputation line %d: %w", mr.Name, i+1, err)
		}
		m.Reputation = append(m.Reputation, rc)
	}
	return m, nil
}
