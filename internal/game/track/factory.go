package track

import (
	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
)

// NewArmor returns an armor Track establishing maximum with the given current.
func NewArmor(loc ruleset.Location, maximum, current int) (Track, error) {
	return New(Armor, loc, maximum, current)
}

// ArmorMaximum returns an armor Track establishing maximum with no armor mounted.
func ArmorMaximum(loc ruleset.Location, maximum int) (Track, error) {
	return New(Armor, loc, maximum, 0)
}

// ArmorDamage returns an armor delta removing amount points.
//
// Precondition: amount >= 0.
func ArmorDamage(loc ruleset.Location, amount int) (Track, error) {
	if amount < 0 {
		return Track{}, fault.Argument("track: negative armor damage %d at %s", amount, loc)
	}
	return Delta(Armor, loc, -amount)
}

// ArmorRepair returns an armor delta restoring amount points.
//
// Precondition: amount >= 0.
func ArmorRepair(loc ruleset.Location, amount int) (Track, error) {
	if amount < 0 {
		return Track{}, fault.Argument("track: negative armor repair %d at %s", amount, loc)
	}
	return Delta(Armor, loc, amount)
}

// NewStructure returns a structure Track establishing a positive maximum with the given current.
func NewStructure(loc ruleset.Location, maximum, current int) (Track, error) {
	return New(Structure, loc, maximum, current)
}

// StructureDamage returns a structure delta removing amount points.
//
// Precondition: amount >= 0.
func StructureDamage(loc ruleset.Location, amount int) (Track, error) {
	if amount < 0 {
		return Track{}, fault.Argument("track: negative structure damage %d at %s", amount, loc)
	}
	return Delta(Structure, loc, -amount)
}

// StructureRepair returns a structure delta restoring amount points.
//
// Precondition: amount >= 0.
func StructureRepair(loc ruleset.Location, amount int) (Track, error) {
	if amount < 0 {
		return Track{}, fault.Argument("track: negative structure repair %d at %s", amount, loc)
	}
	return Delta(Structure, loc, amount)
}

// Change returns the damage or repair delta of kind matching the sign of amount.
func Change(kind Kind, loc ruleset.Location, amount int) (Track, error) {
	switch {
	case kind == Structure && amount < 0:
		return StructureDamage(loc, -amount)
	case kind == Structure:
		return StructureRepair(loc, amount)
	case amount < 0:
		return ArmorDamage(loc, -amount)
	default:
		return ArmorRepair(loc, amount)
	}
}

// ArmorDelta returns an armor Track changing current by delta without a maximum.
func ArmorDelta(loc ruleset.Location, delta int) (Track, error) {
	return Delta(Armor, loc, delta)
}

// StructureDelta returns a structure Track changing current by delta without a maximum.
func StructureDelta(loc ruleset.Location, delta int) (Track, error) {
	return Delta(Structure, loc, delta)
}
