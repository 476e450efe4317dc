package dice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/campaign-aid/internal/game/fault"
)

// Expression is a parsed "NdS+M" dice expression.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
}

// TwoD6 is the roll used by hit location tables.
var TwoD6 = Expression{Raw: "2d6", Count: 2, Sides: 6}

const (
	maxCount    = 100
	maxSides    = 1000
	maxModifier = 1000
)

var expressionPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// Parse parses "d6", "2d6", "2d6+1", or "3d6-2", ignoring case and surrounding space.
//
// Postcondition: returns an Expression with Count in 1-100, Sides in 2-1000,
// and a Modifier within ±1000, or an ErrInvalidArgument error.
func Parse(s string) (Expression, error) {
	raw := strings.TrimSpace(s)
	m := expressionPattern.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return Expression{}, fault.Argument("dice: malformed expression %q", s)
	}
	e := Expression{Raw: raw, Count: 1}
	var err error
	if m[1] != "" {
		if e.Count, err = strconv.Atoi(m[1]); err != nil {
			return Expression{}, fault.Argument("dice: die count in %q: %v", s, err)
		}
	}
	if e.Sides, err = strconv.Atoi(m[2]); err != nil {
		return Expression{}, fault.Argument("dice: die sides in %q: %v", s, err)
	}
	if m[3] != "" {
		if e.Modifier, err = strconv.Atoi(m[3]); err != nil {
			return Expression{}, fault.Argument("dice: modifier in %q: %v", s, err)
		}
	}
	if e.Count < 1 || e.Count > maxCount {
		return Expression{}, fault.Argument("dice: die count in %q must be 1-%d", s, maxCount)
	}
	if e.Sides < 2 || e.Sides > maxSides {
		return Expression{}, fault.Argument("dice: die sides in %q must be 2-%d", s, maxSides)
	}
	if e.Modifier < -maxModifier || e.Modifier > maxModifier {
		return Expression{}, fault.Argument("dice: modifier in %q must be within ±%d", s, maxModifier)
	}
	return e, nil
}

// Min returns the lowest total the expression can roll.
func (e Expression) Min() int { return e.Count + e.Modifier }

// Max returns the highest total the expression can roll.
func (e Expression) Max() int { return e.Count*e.Sides + e.Modifier }
