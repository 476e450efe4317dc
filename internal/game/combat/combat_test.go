package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/campaign-aid/internal/game/combat"
	"github.com/cory-johannsen/campaign-aid/internal/game/dice"
	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

// fixed returns its values in order, cycling.
type fixed struct {
	vals []int
	i    int
}

func (f *fixed) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

var rules = ruleset.DefaultRules("campaign")

func loc(t *testing.T, ref string) ruleset.Location {
	t.Helper()
	l, ok := rules.Location(ruleset.Mech, ref)
	require.True(t, ok, ref)
	return l
}

// mech builds a mech with the given armor and structure at every location.
func mech(t require.TestingT, armor, structure int) *unit.Unit {
	b := unit.NewMutableBuilder()
	var err error
	_, err = b.SetModel("TST-1")
	require.NoError(t, err)
	for _, l := range rules.LocationsFor(ruleset.Mech) {
		if armor > 0 {
			_, err = b.AddMaxArmor(l, armor)
			require.NoError(t, err)
			_, err = b.AddArmor(l, armor)
			require.NoError(t, err)
		}
		_, err = b.AddMaxStructure(l, structure)
		require.NoError(t, err)
		_, err = b.AddStructure(l, structure)
		require.NoError(t, err)
	}
	u, err := b.Build()
	require.NoError(t, err)
	return u
}

func newResolver(vals ...int) *combat.Resolver {
	return combat.NewResolver(rules, dice.NewRoller(&fixed{vals: vals}, nil), nil)
}

func currents(t *testing.T, u *unit.Unit, ref string) (armor, structure int16) {
	t.Helper()
	a, err := u.ArmorAt(loc(t, ref))
	require.NoError(t, err)
	s, err := u.StructureAt(loc(t, ref))
	require.NoError(t, err)
	return a.Current(), s.Current()
}

func TestApply_ArmorOnly(t *testing.T) {
	u := mech(t, 6, 5)
	next, hit, err := newResolver(0).Apply(u, loc(t, "LA"), 4)
	require.NoError(t, err)
	a, s := currents(t, next, "LA")
	assert.Equal(t, int16(2), a)
	assert.Equal(t, int16(5), s)
	assert.Equal(t, 4, hit.Absorbed())
	assert.Empty(t, hit.Destroyed)

	a, _ = currents(t, u, "LA")
	assert.Equal(t, int16(6), a, "original unit unchanged")
}

func TestApply_IntoStructure(t *testing.T) {
	next, hit, err := newResolver(0).Apply(mech(t, 6, 5), loc(t, "LA"), 10)
	require.NoError(t, err)
	a, s := currents(t, next, "LA")
	assert.Equal(t, int16(0), a)
	assert.Equal(t, int16(1), s)
	require.Len(t, hit.Applied, 1)
	assert.Equal(t, 6, hit.Applied[0].Armor)
	assert.Equal(t, 4, hit.Applied[0].Structure)
}

func TestApply_TransfersInward(t *testing.T) {
	next, hit, err := newResolver(0).Apply(mech(t, 6, 5), loc(t, "LA"), 15)
	require.NoError(t, err)

	_, s := currents(t, next, "LA")
	assert.Equal(t, int16(0), s)
	a, _ := currents(t, next, "LT")
	assert.Equal(t, int16(2), a)

	require.Len(t, hit.Destroyed, 1)
	assert.Equal(t, "LA", hit.Destroyed[0].Abbrev)
	require.Len(t, hit.Applied, 2)
	assert.Equal(t, "LT", hit.Applied[1].Location.Abbrev)
	assert.Zero(t, hit.Excess)
}

func TestApply_ExcessWhenNothingLeft(t *testing.T) {
	next, hit, err := newResolver(0).Apply(mech(t, 2, 3), loc(t, "H"), 9)
	require.NoError(t, err)
	a, s := currents(t, next, "H")
	assert.Zero(t, a)
	assert.Zero(t, s)
	assert.Equal(t, 4, hit.Excess)
	assert.Equal(t, 5, hit.Absorbed())
}

func TestApply_DestroyedLocationPassesDamageOn(t *testing.T) {
	r := newResolver(0)
	u, _, err := r.Apply(mech(t, 1, 1), loc(t, "RA"), 2)
	require.NoError(t, err)

	u, hit, err := r.Apply(u, loc(t, "RA"), 3)
	require.NoError(t, err)
	require.Len(t, hit.Applied, 2)
	assert.Equal(t, "RT", hit.Applied[0].Location.Abbrev)
	assert.Equal(t, "CT", hit.Applied[1].Location.Abbrev)
	require.Len(t, hit.Destroyed, 1)
	assert.Equal(t, "RT", hit.Destroyed[0].Abbrev)
	assert.Zero(t, hit.Excess)
	a, s := currents(t, u, "CT")
	assert.Zero(t, a)
	assert.Equal(t, int16(1), s)
}

func TestApply_ZeroAndNegative(t *testing.T) {
	u := mech(t, 6, 5)
	r := newResolver(0)
	next, hit, err := r.Apply(u, loc(t, "CT"), 0)
	require.NoError(t, err)
	assert.Same(t, u, next)
	assert.Empty(t, hit.Applied)

	_, _, err = r.Apply(u, loc(t, "CT"), -1)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestResolve_RollsLocation(t *testing.T) {
	// dice 3 and 4: roll 7 strikes the center torso
	next, hit, err := newResolver(2, 3).Resolve(mech(t, 6, 5), 5)
	require.NoError(t, err)
	require.NotNil(t, hit.Roll)
	assert.Equal(t, 7, hit.Roll.Total())
	assert.Equal(t, "CT", hit.Location.Abbrev)
	a, _ := currents(t, next, "CT")
	assert.Equal(t, int16(1), a)
}

func TestResolve_NoHitTable(t *testing.T) {
	b, err := unit.NewBuilder().SetType(ruleset.Vehicle)
	require.NoError(t, err)
	u, err := b.Build()
	require.NoError(t, err)
	_, _, err = newResolver(0).Resolve(u, 5)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestVolley_Accumulates(t *testing.T) {
	// every die shows 6: each hit strikes the head
	u, hits, err := newResolver(5).Volley(mech(t, 9, 3), []int{5, 5})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	a, s := currents(t, u, "H")
	assert.Zero(t, a)
	assert.Equal(t, int16(2), s)

	_, _, err = newResolver(5).Volley(u, []int{1, -1})
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestProperty_DamageIsConserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := mech(t, rapid.IntRange(0, 12).Draw(t, "armor"), rapid.IntRange(1, 8).Draw(t, "structure"))
		r := combat.NewResolver(rules, dice.NewRoller(dice.NewSeededSource(rapid.Uint64().Draw(t, "seed")), nil), nil)
		damages := rapid.SliceOfN(rapid.IntRange(0, 20), 1, 10).Draw(t, "damages")
		_, hits, err := r.Volley(u, damages)
		if err != nil {
			t.Fatalf("Volley: %v", err)
		}
		for i, h := range hits {
			if h.Absorbed()+h.Excess != damages[i] {
				t.Fatalf("hit %d: absorbed %d + excess %d != %d", i, h.Absorbed(), h.Excess, damages[i])
			}
		}
	})
}
