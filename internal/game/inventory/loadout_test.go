package inventory_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

var (
	leftArm  = ruleset.LocationFromSegments(8, "Left", "Arm")
	rightArm = ruleset.LocationFromSegments(8, "Right", "Arm")
)

func controller(t *testing.T, max, available float64) *inventory.Controller {
	t.Helper()
	c, err := inventory.NewController(max, available)
	require.NoError(t, err)
	return c
}

func TestLoadout_Strict_RejectsOverBudget(t *testing.T) {
	l := controller(t, 20, 10).NewLoadout(true)
	require.NoError(t, l.AddEquipment(leftArm, item("a", 6)))

	err := l.AddEquipment(leftArm, item("b", 5))
	assert.ErrorIs(t, err, fault.ErrInvalidState)
	assert.Equal(t, 6.0, l.Tonnage())
	assert.Len(t, l.Equipment(leftArm), 1, "state unchanged after rejection")
	assert.False(t, l.OverBudget())
	assert.Equal(t, 4.0, l.Remaining())
}

func TestLoadout_Strict_AllowsExactBudget(t *testing.T) {
	l := controller(t, 20, 10).NewLoadout(true)
	require.NoError(t, l.AddEquipment(leftArm, item("a", 6)))
	require.NoError(t, l.AddEquipment(rightArm, item("b", 4)))
	assert.Equal(t, 10.0, l.Tonnage())
	assert.Equal(t, 0.0, l.Remaining())
}

func TestLoadout_Lenient_AllowsOverBudget(t *testing.T) {
	l := controller(t, 20, 10).NewLoadout(false)
	require.NoError(t, l.AddEquipment(leftArm, item("a", 6)))
	require.NoError(t, l.AddEquipment(leftArm, item("b", 5)))
	assert.Equal(t, 11.0, l.Tonnage())
	assert.True(t, l.OverBudget())
	assert.Equal(t, -1.0, l.Remaining())
	assert.False(t, l.Strict())
}

func TestLoadout_AddEquipment_NilItem(t *testing.T) {
	l := controller(t, 20, 10).NewLoadout(false)
	err := l.AddEquipment(leftArm, nil)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	assert.Equal(t, 0.0, l.Tonnage())
}

func TestLoadout_RemoveEquipment(t *testing.T) {
	l := controller(t, 20, 10).NewLoadout(true)
	a := item("a", 2)
	require.NoError(t, l.AddEquipment(leftArm, a))
	require.NoError(t, l.AddEquipment(leftArm, item("b", 3)))
	require.NoError(t, l.AddEquipment(leftArm, item("a", 2)))

	assert.False(t, l.RemoveEquipment(rightArm, a), "wrong location")
	assert.False(t, l.RemoveEquipment(leftArm, item("zz", 1)), "absent item")
	assert.False(t, l.RemoveEquipment(leftArm, nil))
	assert.Equal(t, 7.0, l.Tonnage())

	assert.True(t, l.RemoveEquipment(leftArm, a))
	got := l.Equipment(leftArm)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "first occurrence removed")
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, 5.0, l.Tonnage())
}

func TestLoadout_FractionalTonnageStaysExact(t *testing.T) {
	l := controller(t, 1, 0.3).NewLoadout(true)
	tenth := item("ammo", 0.1)
	for i := 0; i < 3; i++ {
		require.NoError(t, l.AddEquipment(leftArm, tenth))
	}
	assert.ErrorIs(t, l.AddEquipment(leftArm, tenth), fault.ErrInvalidState)
	for i := 0; i < 3; i++ {
		require.True(t, l.RemoveEquipment(leftArm, tenth))
	}
	assert.Equal(t, 0.0, l.Tonnage())
}

func TestLoadout_Entries_LocationOrder(t *testing.T) {
	l := controller(t, 20, 20).NewLoadout(false)
	require.NoError(t, l.AddEquipment(rightArm, item("r1", 1)))
	require.NoError(t, l.AddEquipment(leftArm, item("l1", 1)))
	require.NoError(t, l.AddEquipment(rightArm, item("r2", 1)))

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "r1", entries[0].Equipment.ID)
	assert.Equal(t, "r2", entries[1].Equipment.ID)
	assert.Equal(t, "l1", entries[2].Equipment.ID)
	assert.Equal(t, "LA", entries[2].Location.Abbrev)
}

func TestLoadout_Equipment_IsSnapshot(t *testing.T) {
	l := controller(t, 20, 20).NewLoadout(false)
	require.NoError(t, l.AddEquipment(leftArm, item("a", 1)))
	snap := l.Equipment(leftArm)
	snap[0] = item("mutated", 99)
	assert.Equal(t, "a", l.Equipment(leftArm)[0].ID)
}

func TestNewController_Rejects(t *testing.T) {
	_, err := inventory.NewController(-1, 0)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	_, err = inventory.NewController(math.NaN(), 0)
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
	_, err = inventory.NewController(10, math.Inf(-1))
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestNewControllerFromBase_DerivesAvailable(t *testing.T) {
	base := []inventory.Entry{
		{Location: leftArm, Equipment: item("engine", 8.5)},
		{Location: rightArm, Equipment: item("gyro", 2)},
	}
	c, err := inventory.NewControllerFromBase(35, base)
	require.NoError(t, err)
	assert.Equal(t, 35.0, c.MaxTonnage())
	assert.Equal(t, 24.5, c.AvailableTonnage())

	got := c.Base()
	got[0].Equipment = nil
	assert.NotNil(t, c.Base()[0].Equipment, "base loadout cannot be modified through its view")

	_, err = inventory.NewControllerFromBase(35, []inventory.Entry{{Location: leftArm}})
	assert.ErrorIs(t, err, fault.ErrInvalidArgument)
}

func TestNewLoadoutFromEntries(t *testing.T) {
	c := controller(t, 10, 5)
	entries := []inventory.Entry{
		{Location: leftArm, Equipment: item("a", 3)},
		{Location: leftArm, Equipment: item("b", 3)},
	}
	l, err := c.NewLoadoutFromEntries(entries, false)
	require.NoError(t, err)
	assert.Equal(t, 6.0, l.Tonnage())

	_, err = c.NewLoadoutFromEntries(entries, true)
	assert.ErrorIs(t, err, fault.ErrInvalidState)
}

func TestLoadout_ConcurrentAdds_RespectBudget(t *testing.T) {
	l := controller(t, 100, 50).NewLoadout(true)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.AddEquipment(leftArm, item("hs", 1))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, l.Tonnage())
	assert.Len(t, l.Equipment(leftArm), 50)
}

func TestProperty_StrictLoadout_NeverExceedsAvailable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		available := rapid.IntRange(0, 100).Draw(t, "available")
		c, err := inventory.NewController(100, float64(available))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		l := c.NewLoadout(true)
		masses := rapid.SliceOfN(rapid.IntRange(0, 20), 1, 40).Draw(t, "masses")
		for _, m := range masses {
			_ = l.AddEquipment(leftArm, item("x", float64(m)/2))
		}
		if l.Tonnage() > float64(available) {
			t.Fatalf("tonnage %v exceeds available %d", l.Tonnage(), available)
		}
	})
}

func TestProperty_AddThenRemove_RestoresTonnage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l, _ := inventory.NewController(100, 100)
		lo := l.NewLoadout(false)
		masses := rapid.SliceOfN(rapid.IntRange(1, 40), 1, 20).Draw(t, "masses")
		items := make([]*inventory.Equipment, len(masses))
		for i, m := range masses {
			items[i] = &inventory.Equipment{Name: "x", Mass: float64(m) / 4}
			if err := lo.AddEquipment(leftArm, items[i]); err != nil {
				t.Fatalf("lenient add failed: %v", err)
			}
		}
		for _, it := range items {
			if !lo.RemoveEquipment(leftArm, it) {
				t.Fatalf("remove of %p failed", it)
			}
		}
		if lo.Tonnage() != 0 {
			t.Fatalf("tonnage %v after removing everything", lo.Tonnage())
		}
	})
}
