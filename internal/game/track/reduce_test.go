package track_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/track"
)

func TestReduce_DamageThenRepair(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(head, 9, 9)),
		must(track.ArmorDamage(head, 3)),
		must(track.ArmorRepair(head, 2)),
	}
	got, err := track.Reduce(entries, head)
	require.NoError(t, err)
	assert.Equal(t, must(track.NewArmor(head, 9, 8)), got)
}

func TestReduce_EmptyMountThenDamageFails(t *testing.T) {
	entries := []track.Track{
		must(track.ArmorMaximum(head, 9)),
		must(track.ArmorDamage(head, 3)),
		must(track.ArmorRepair(head, 2)),
	}
	_, err := track.Reduce(entries, head)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestReduce_CurrentBeforeMaximum(t *testing.T) {
	entries := []track.Track{must(track.ArmorRepair(head, 5))}
	_, err := track.Reduce(entries, head)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestReduce_NoEntriesForLocation(t *testing.T) {
	entries := []track.Track{must(track.NewArmor(center, 16, 16))}
	_, err := track.Reduce(entries, head)
	assert.ErrorIs(t, err, fault.ErrInvalidState)

	_, err = track.Reduce(nil, head)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestReduce_FiltersByLocation(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(center, 16, 16)),
		must(track.ArmorRepair(head, 1)), // ignored: head is not reduced here
		must(track.ArmorDamage(center, 4)),
	}
	got, err := track.Reduce(entries, center)
	require.NoError(t, err)
	assert.Equal(t, int16(12), got.Current())
}

func TestReduce_MaximumEntriesAccumulate(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(head, 5, 5)),
		must(track.NewArmor(head, 4, 2)),
	}
	got, err := track.Reduce(entries, head)
	require.NoError(t, err)
	assert.Equal(t, must(track.NewArmor(head, 9, 7)), got)
}

func TestReduce_AboveMaximumFails(t *testing.T) {
	entries := []track.Track{
		must(track.NewStructure(head, 3, 3)),
		must(track.StructureRepair(head, 1)),
	}
	_, err := track.Reduce(entries, head)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestReduce_MixedKinds(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(head, 9, 9)),
		must(track.StructureDamage(head, 1)),
	}
	_, err := track.Reduce(entries, head)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestReduce_MatchesLocationByIdentity(t *testing.T) {
	entries := []track.Track{must(track.NewArmor(head, 9, 9))}
	got, err := track.Reduce(entries, ruleset.Location{Name: "Head", Abbrev: "H"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Location().CriticalSlots)
}

func TestReduceAll_FirstSeenOrder(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(center, 16, 16)),
		must(track.NewArmor(head, 9, 9)),
		must(track.ArmorDamage(center, 6)),
	}
	all, err := track.ReduceAll(entries)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "CT 10/16", all[0].String())
	assert.Equal(t, "H 9/9", all[1].String())

	assert.Len(t, track.Locations(entries), 2)
	assert.True(t, track.Has(entries, head))
	assert.False(t, track.Has(entries, ruleset.Location{Name: "Left Arm", Abbrev: "LA"}))
}

func TestReduceAll_PropagatesFailure(t *testing.T) {
	entries := []track.Track{
		must(track.NewArmor(center, 16, 16)),
		must(track.ArmorDamage(head, 1)),
	}
	_, err := track.ReduceAll(entries)
	assert.ErrorIs(t, err, fault.ErrInvalidState)

	all, err := track.ReduceAll(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProperty_Reduce_EqualsRunningSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		max := rapid.IntRange(1, 300).Draw(t, "max")
		start := rapid.IntRange(0, max).Draw(t, "start")
		first, err := track.NewArmor(head, max, start)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		entries := []track.Track{first}
		cur := start
		n := rapid.IntRange(0, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			d := rapid.IntRange(-cur, max-cur).Draw(t, "delta")
			e, err := track.Change(track.Armor, head, d)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			entries = append(entries, e)
			cur += d
		}
		got, err := track.Reduce(entries, head)
		if err != nil {
			t.Fatalf("reduce failed: %v", err)
		}
		if int(got.Current()) != cur {
			t.Fatalf("got current %d, want %d", got.Current(), cur)
		}
		if m, _ := got.Max(); int(m) != max {
			t.Fatalf("got max %d, want %d", m, max)
		}
	})
}
