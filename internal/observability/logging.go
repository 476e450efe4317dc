// Package observability provides logging utilities.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/campaign-aid/internal/config"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

// NewLogger creates a structured logger from the given logging configuration.
// Logs go to stderr so command output on stdout stays clean.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("campaign-aid"), nil
}

// UnitFields returns the fields identifying u in log entries.
func UnitFields(u *unit.Unit) []zap.Field {
	return []zap.Field{
		zap.String("unit_id", u.ID()),
		zap.String("unit", u.Name()),
		zap.String("model", u.Model()),
		zap.Stringer("type", u.Type()),
		zap.Float64("tonnage", u.Tonnage()),
	}
}

// BudgetFields returns the tonnage figures of a refit budget for log entries.
func BudgetFields(c *inventory.Controller) []zap.Field {
	return []zap.Field{
		zap.Float64("max_tonnage", c.MaxTonnage()),
		zap.Float64("available_tonnage", c.AvailableTonnage()),
	}
}
