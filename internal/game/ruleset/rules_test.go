package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

func TestDefaultHitLocations_MechLayout(t *testing.T) {
	hls := ruleset.DefaultHitLocations()
	require.Len(t, hls, 8)

	want := map[string]int{"H": 1, "CT": 4, "LT": 10, "LA": 8, "LL": 4, "RT": 10, "RA": 8, "RL": 4}
	for _, hl := range hls {
		assert.Equal(t, ruleset.Mech, hl.Type)
		slots, ok := want[hl.Location.Abbrev]
		require.True(t, ok, "unexpected location %q", hl.Location.Abbrev)
		assert.Equal(t, slots, hl.CriticalSlots)
		assert.Equal(t, slots, hl.Location.CriticalSlots)
	}
}

func TestDefaultRules(t *testing.T) {
	r := ruleset.DefaultRules("campaign")
	require.NoError(t, r.Validate())
	assert.Equal(t, ruleset.BaseGameName, r.Name)
	assert.True(t, r.Allows(ruleset.Mech))
	assert.True(t, r.Allows(ruleset.Vehicle))
	assert.False(t, r.Allows(ruleset.DropShip))
	assert.Len(t, r.LocationsFor(ruleset.Mech), 8)
	assert.Empty(t, r.LocationsFor(ruleset.Vehicle))
}

func TestRules_Location_ByAbbrevAndName(t *testing.T) {
	r := ruleset.DefaultRules("")
	loc, ok := r.Location(ruleset.Mech, "ct")
	require.True(t, ok)
	assert.Equal(t, "Center Torso", loc.Name)

	loc, ok = r.Location(ruleset.Mech, "left arm")
	require.True(t, ok)
	assert.Equal(t, "LA", loc.Abbrev)

	_, ok = r.Location(ruleset.Vehicle, "H")
	assert.False(t, ok)
}

func TestNewSlottedHitLocation(t *testing.T) {
	hl, err := ruleset.NewSlottedHitLocation(ruleset.Vehicle, "Turret", "T", 6)
	require.NoError(t, err)
	assert.Equal(t, 6, hl.CriticalSlots)

	_, err = ruleset.NewSlottedHitLocation(ruleset.UnitTypeUnknown, "Turret", "T", 6)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	_, err = ruleset.NewSlottedHitLocation(ruleset.Vehicle, "Turret", "T", -1)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)

	u := ruleset.UnslottedHitLocation(ruleset.Vehicle, ruleset.Location{Name: "Front", Abbrev: "F", CriticalSlots: 3})
	assert.Equal(t, 0, u.CriticalSlots)
	assert.False(t, u.Location.Slotted())
}

func TestRules_Validate_DuplicateLocation(t *testing.T) {
	r := ruleset.DefaultRules("")
	r.HitLocations = append(r.HitLocations, r.HitLocations[0])
	assert.Error(t, r.Validate())
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Border Skirmish
mode: campaign
unit_types: [Mech, Vehicle]
hit_locations:
  - unit_type: Vehicle
    name: Front
    abbrev: F
  - unit_type: Vehicle
    name: Turret
    abbrev: T
    critical_slots: 2
`), 0o644))

	r, err := ruleset.LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "Border Skirmish", r.Name)
	assert.Equal(t, "campaign", r.Mode)
	locs := r.LocationsFor(ruleset.Vehicle)
	require.Len(t, locs, 2)
	assert.Equal(t, 2, locs[1].CriticalSlots)
}

func TestLoadRules_DefaultsHitLocations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Base\nunit_types: [Mech]\n"), 0o644))

	r, err := ruleset.LoadRules(path)
	require.NoError(t, err)
	assert.Len(t, r.LocationsFor(ruleset.Mech), 8)
}

func TestLoadRules_Errors(t *testing.T) {
	_, err := ruleset.LoadRules("/nonexistent/rules.yaml")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: \"\"\nunit_types: []\n"), 0o644))
	_, err = ruleset.LoadRules(path)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)

	require.NoError(t, os.WriteFile(path, []byte("name: [\n"), 0o644))
	_, err = ruleset.LoadRules(path)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestDefaultRules_HitLocation(t *testing.T) {
	r := ruleset.DefaultRules("")
	want := map[int]string{2: "CT", 3: "RA", 5: "RL", 6: "RT", 7: "CT", 8: "LT", 9: "LL", 10: "LA", 12: "H"}
	for roll, abbrev := range want {
		loc, err := r.HitLocation(ruleset.Mech, roll)
		require.NoError(t, err, "roll %d", roll)
		assert.Equal(t, abbrev, loc.Abbrev, "roll %d", roll)
	}

	_, err := r.HitLocation(ruleset.Mech, 13)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	_, err = r.HitLocation(ruleset.Vehicle, 7)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestDefaultRules_TransferFrom(t *testing.T) {
	r := ruleset.DefaultRules("")
	la, _ := r.Location(ruleset.Mech, "LA")
	lt, ok := r.TransferFrom(ruleset.Mech, la)
	require.True(t, ok)
	assert.Equal(t, "LT", lt.Abbrev)

	ct, ok := r.TransferFrom(ruleset.Mech, lt)
	require.True(t, ok)
	assert.Equal(t, "CT", ct.Abbrev)

	_, ok = r.TransferFrom(ruleset.Mech, ct)
	assert.False(t, ok)
	head, _ := r.Location(ruleset.Mech, "H")
	_, ok = r.TransferFrom(ruleset.Mech, head)
	assert.False(t, ok)
}

func TestRules_Validate_HitTables(t *testing.T) {
	cases := map[string]ruleset.HitTable{
		"unknown roll location": {Type: ruleset.Mech, Rolls: map[int]string{7: "XX"}},
		"unknown transfer":      {Type: ruleset.Mech, Transfers: map[string]string{"LA": "XX"}},
		"loop":                  {Type: ruleset.Mech, Transfers: map[string]string{"LA": "LT", "LT": "LA"}},
		"abbrev and name":       {Type: ruleset.Mech, Transfers: map[string]string{"LA": "LT", "left arm": "CT"}},
		"differing case":        {Type: ruleset.Mech, Transfers: map[string]string{"LA": "LT", "la": "LT"}},
	}
	for name, ht := range cases {
		t.Run(name, func(t *testing.T) {
			r := ruleset.DefaultRules("")
			r.HitTables = []ruleset.HitTable{ht}
			assert.Error(t, r.Validate())
		})
	}

	r := ruleset.DefaultRules("")
	r.HitTables = append(r.HitTables, r.HitTables[0])
	assert.Error(t, r.Validate(), "duplicate table")
}

func TestLoadRules_HitTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Border Skirmish
unit_types: [Vehicle]
hit_locations:
  - {unit_type: Vehicle, name: Front, abbrev: F}
  - {unit_type: Vehicle, name: Turret, abbrev: T}
hit_tables:
  - unit_type: Vehicle
    rolls: {2: T, 7: F, 12: T}
`), 0o644))

	r, err := ruleset.LoadRules(path)
	require.NoError(t, err)
	loc, err := r.HitLocation(ruleset.Vehicle, 12)
	require.NoError(t, err)
	assert.Equal(t, "Turret", loc.Name)
	_, err = r.HitLocation(ruleset.Mech, 7)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestLoadRules_DefaultHitTableNeedsMechLocations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Base\nunit_types: [Mech]\n"), 0o644))

	r, err := ruleset.LoadRules(path)
	require.NoError(t, err)
	require.Len(t, r.HitTables, 1)
	_, err = r.HitLocation(ruleset.Mech, 7)
	assert.NoError(t, err)
}
