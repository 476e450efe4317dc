package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign-aid/internal/config"
	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
	"github.com/cory-johannsen/campaign-aid/internal/game/ruleset"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
	"github.com/cory-johannsen/campaign-aid/internal/observability"
)

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "campaign-aid",
		Short:         "Track unit damage and refit budgets for a mercenary campaign",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (defaults and CAMPAIGN_* environment when empty)")

	root.AddCommand(newCatalogCmd(a), newSheetCmd(a), newRefitCmd(a), newDamageCmd(a), newSystemCmd(a))
	return root
}

// catalog is the static content units are resolved against.
type catalog struct {
	rules     *ruleset.Rules
	equipment *inventory.Registry
}

func (a *app) loadCatalog() (*catalog, error) {
	rules := ruleset.DefaultRules(a.cfg.Content.RulesMode)
	if a.cfg.Content.RulesFile != "" {
		var err error
		if rules, err = ruleset.LoadRules(a.cfg.Content.RulesFile); err != nil {
			return nil, err
		}
	}
	items, err := inventory.LoadEquipment(a.cfg.Content.EquipmentDir)
	if err != nil {
		return nil, err
	}
	reg, err := inventory.NewRegistryFrom(items)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("catalog loaded",
		zap.String("rules", rules.Name),
		zap.String("mode", rules.Mode),
		zap.Int("equipment", reg.Len()),
	)
	return &catalog{rules: rules, equipment: reg}, nil
}

// loadUnits builds the unit sheets at paths, or every sheet in the configured
// units directory when paths is empty.
func (a *app) loadUnits(cat *catalog, paths []string) ([]*unit.Unit, error) {
	var records []*unit.Record
	if len(paths) == 0 {
		var err error
		if records, err = unit.LoadRecords(a.cfg.Content.UnitsDir); err != nil {
			return nil, err
		}
	}
	for _, p := range paths {
		r, err := unit.LoadRecord(p)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	units := make([]*unit.Unit, 0, len(records))
	for _, r := range records {
		u, err := r.Build(cat.rules, cat.equipment, unit.NewBuilder())
		if err != nil {
			a.logger.Warn("rejected unit sheet", zap.String("unit", r.Name), zap.Error(err))
			return nil, err
		}
		a.logger.Debug("unit built", observability.UnitFields(u)...)
		units = append(units, u)
	}
	return units, nil
}
