package dice

import "go.uber.org/zap"

// Roll evaluates e with src.
//
// Precondition: e comes from Parse or is TwoD6; src is non-nil.
// Postcondition: len(result.Dice) == e.Count and every die is in [1, e.Sides].
func Roll(e Expression, src Source) Result {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	return Result{Expression: e.Raw, Dice: rolled, Modifier: e.Modifier}
}

// Roller rolls with a Source and logs every roll at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller returns a Roller using src. A nil logger discards the log.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Roll evaluates e and logs the result.
func (r *Roller) Roll(e Expression) Result {
	res := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", res.Expression),
		zap.Ints("dice", res.Dice),
		zap.Int("modifier", res.Modifier),
		zap.Int("total", res.Total()),
	)
	return res
}

// RollExpr parses s and rolls it.
func (r *Roller) RollExpr(s string) (Result, error) {
	e, err := Parse(s)
	if err != nil {
		return Result{}, err
	}
	return r.Roll(e), nil
}
