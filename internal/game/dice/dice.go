// Package dice rolls dice expressions, such as the 2d6 hit location roll.
package dice

import (
	"fmt"
	"strings"
)

// Result holds the dice of a single roll and the modifier applied to them.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type Result struct {
	Expression string // e.g. "2d6"
	Dice       []int
	Modifier   int
}

// Total returns the sum of the dice plus the modifier.
func (r Result) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "2d6 [3 4] = 7", or "2d6+1 [3 4] +1 = 8" with a modifier.
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %v", r.Expression, r.Dice)
	if r.Modifier != 0 {
		fmt.Fprintf(&b, " %+d", r.Modifier)
	}
	fmt.Fprintf(&b, " = %d", r.Total())
	return b.String()
}
