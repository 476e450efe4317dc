package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/campaign-aid/internal/game/campaign"
)

func newSystemCmd(a *app) *cobra.Command {
	var buys []string
	cmd := &cobra.Command{
		Use:   "system <system.yaml>",
		Short: "List a star system's shops and mission board",
		Long: "List a star system's shops and mission board. Shop units are matched by model\n" +
			"against the configured unit sheets. Each --buy ID takes one item from the\n" +
			"first shop stocking it before the listing is printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			units, err := a.loadUnits(cat, nil)
			if err != nil {
				return err
			}
			rec, err := campaign.LoadSystem(args[0])
			if err != nil {
				return err
			}
			sys, err := rec.Build(cat.rules, cat.equipment, units)
			if err != nil {
				return err
			}
			a.logger.Debug("system loaded",
				zap.String("system", sys.Name()),
				zap.Int("shops", len(sys.Shops())),
				zap.Int("missions", len(sys.Missions())),
			)

			out := cmd.OutOrStdout()
			for _, id := range buys {
				item, ok := cat.equipment.Equipment(id)
				if !ok {
					return fmt.Errorf("system: unknown equipment %q", id)
				}
				if buy(sys, item.ID) {
					_, _ = fmt.Fprintf(out, "bought %s\n", item)
					continue
				}
				a.logger.Warn("purchase unavailable", zap.String("equipment", id))
				_, _ = fmt.Fprintln(out, color.RedString("unavailable %s", item))
			}
			printSystem(out, sys)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&buys, "buy", nil, "buy one catalog item ID from the first shop stocking it (repeatable)")
	return cmd
}

// buy removes one copy of the item with id from the first shop stocking it.
func buy(sys *campaign.System, id string) bool {
	for _, s := range sys.Shops() {
		for _, st := range s.Equipment() {
			if st.Item.ID != id {
				continue
			}
			if ok, err := s.RemoveEquipment(st.Item, 1); ok && err == nil {
				return true
			}
		}
	}
	return false
}

func printSystem(out io.Writer, sys *campaign.System) {
	_, _ = fmt.Fprintf(out, "%s (%s)\n", sys.Name(), sys.Faction())
	for i, s := range sys.Shops() {
		_, _ = fmt.Fprintf(out, "  shop %d [%s]\n", i+1, strings.Join(s.Tags(), ", "))
		for _, st := range s.Equipment() {
			_, _ = fmt.Fprintf(out, "    %3dx %s\n", st.Count, st.Item)
		}
		for _, u := range s.Units() {
			_, _ = fmt.Fprintf(out, "    unit %s\n", u)
		}
		for _, p := range s.Parts() {
			_, _ = fmt.Fprintf(out, "    part %s %s (%d items)\n", p.Type, p.Model, len(p.Loadout))
		}
	}
	_, _ = fmt.Fprintln(out, "  missions")
	for _, m := range sys.Missions() {
		line := fmt.Sprintf("    %-14s %-8s %s vs %s, difficulty %d", m.Name, m.Type, m.Employer, m.OpFor, m.Difficulty)
		if eff := m.EffectiveDifficulty(); eff != int64(m.Difficulty) {
			line += fmt.Sprintf(" (%d in %s)", eff, m.Terrain.Name)
		}
		if m.TravelTime > 0 {
			line += fmt.Sprintf(", %s in %d days", m.System, m.TravelTime)
		}
		_, _ = fmt.Fprintln(out, line)
	}
}
