package ruleset

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rounding is the direction a modified value is rounded to a whole number.
type Rounding string

const (
	// RoundDown rounds toward zero.
	RoundDown Rounding = "down"
	// RoundUp rounds away from zero.
	RoundUp Rounding = "up"
)

// Modifier adjusts the value of a named rule.
type Modifier struct {
	Name     string   `yaml:"name"`
	Rule     string   `yaml:"rule"`
	Modifier float64  `yaml:"modifier"`
	Rounding Rounding `yaml:"rounding"`
}

// RoundDownModifier returns a Modifier whose results round toward zero.
func RoundDownModifier(name, rule string, modifier float64) Modifier {
	return Modifier{Name: name, Rule: rule, Modifier: modifier, Rounding: RoundDown}
}

// RoundUpModifier returns a Modifier whose results round away from zero.
func RoundUpModifier(name, rule string, modifier float64) Modifier {
	return Modifier{Name: name, Rule: rule, Modifier: modifier, Rounding: RoundUp}
}

// Validate reports an error if the modifier is missing its rule or rounding.
func (m Modifier) Validate() error {
	var errs []error
	if m.Rule == "" {
		errs = append(errs, errors.New("rule must not be empty"))
	}
	if m.Rounding != RoundDown && m.Rounding != RoundUp {
		errs = append(errs, fmt.Errorf("rounding %q must be %q or %q", m.Rounding, RoundDown, RoundUp))
	}
	if len(errs) > 0 {
		return fmt.Errorf("modifier %q validation failed: %v", m.Name, errs)
	}
	return nil
}

// Round rounds v to a whole number in the modifier's direction.
func (m Modifier) Round(v decimal.Decimal) decimal.Decimal {
	if m.Rounding == RoundUp {
		if v.Sign() < 0 {
			return v.Floor()
		}
		return v.Ceil()
	}
	return v.Truncate(0)
}

// Apply folds every modifier targeting rule onto base in order, rounding after
// each step, and returns the resulting whole value.
//
// Postcondition: modifiers for other rules are ignored; with none applicable
// the result is base rounded toward zero.
func Apply(rule string, base float64, mods []Modifier) int64 {
	v := decimal.NewFromFloat(base)
	applied := false
	for _, m := range mods {
		if m.Rule != rule {
			continue
		}
		v = m.Round(v.Add(decimal.NewFromFloat(m.Modifier)))
		applied = true
	}
	if !applied {
		v = v.Truncate(0)
	}
	return v.IntPart()
}
