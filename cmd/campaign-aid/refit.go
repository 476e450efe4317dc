package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign-aid/internal/observability"
)

func newRefitCmd(a *app) *cobra.Command {
	var (
		stripArmor     bool
		stripEquipment bool
		lenient        bool
		mounts         []string
	)
	cmd := &cobra.Command{
		Use:   "refit <unit.yaml>",
		Short: "Plan a refit of a unit against its tonnage budget",
		Long: "Plan a refit of a unit. The budget is the unit's free tonnage, plus its\n" +
			"equipment with --strip-equipment and its armor with --strip-armor.\n" +
			"Each --mount LOC=ID adds a catalog item to the planned loadout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			units, err := a.loadUnits(cat, args)
			if err != nil {
				return err
			}
			u := units[0]
			ctrl, err := u.LoadoutController(stripArmor, stripEquipment)
			if err != nil {
				return err
			}
			a.logger.Info("refit budget", append(observability.UnitFields(u), observability.BudgetFields(ctrl)...)...)

			strict := a.cfg.Loadout.Strict && !lenient
			plan := ctrl.NewLoadout(strict)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, u)
			_, _ = fmt.Fprintf(out, "  budget     %.1ft of %.1ft\n", ctrl.AvailableTonnage(), ctrl.MaxTonnage())
			for _, m := range mounts {
				ref, id, ok := strings.Cut(m, "=")
				if !ok {
					return fmt.Errorf("refit: mount %q is not LOC=ID", m)
				}
				loc, ok := cat.rules.Location(u.Type(), ref)
				if !ok {
					return fmt.Errorf("refit: unknown location %q for %s", ref, u.Type())
				}
				item, ok := cat.equipment.Equipment(id)
				if !ok {
					return fmt.Errorf("refit: unknown equipment %q", id)
				}
				if err := plan.AddEquipment(loc, item); err != nil {
					a.logger.Warn("mount rejected", zap.String("mount", m), zap.Error(err))
					_, _ = fmt.Fprintln(out, color.RedString("  rejected   %-3s %s: %v", loc, item, err))
					continue
				}
				_, _ = fmt.Fprintf(out, "  mounted    %-3s %s\n", loc, item)
			}
			remaining := fmt.Sprintf("%.1ft", plan.Remaining())
			if plan.OverBudget() {
				remaining = color.RedString(remaining + " over budget")
			} else {
				remaining = color.GreenString(remaining)
			}
			_, _ = fmt.Fprintf(out, "  planned    %.1ft, remaining %s\n", plan.Tonnage(), remaining)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stripArmor, "strip-armor", false, "count the unit's armor tonnage as free")
	cmd.Flags().BoolVar(&stripEquipment, "strip-equipment", false, "count the unit's equipment tonnage as free")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "allow the plan to exceed the budget")
	cmd.Flags().StringArrayVar(&mounts, "mount", nil, "mount catalog item ID at location LOC (LOC=ID, repeatable)")
	return cmd
}
