package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/campaign-aid/internal/game/inventory"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the rules hit locations and the equipment catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", cat.rules.Name, cat.rules.Mode)
			for _, t := range cat.rules.UnitTypes {
				locs := cat.rules.LocationsFor(t)
				names := make([]string, 0, len(locs))
				for _, l := range locs {
					names = append(names, fmt.Sprintf("%s[%d]", l, l.CriticalSlots))
				}
				_, _ = fmt.Fprintf(out, "  %-10s %s\n", t, strings.Join(names, " "))
			}
			_, _ = fmt.Fprintf(out, "equipment (%d)\n", cat.equipment.Len())
			for _, e := range cat.equipment.All() {
				_, _ = fmt.Fprintln(out, "  "+describeEquipment(e))
			}
			return nil
		},
	}
}

func describeEquipment(e *inventory.Equipment) string {
	return fmt.Sprintf("%-20s %-24s %5.1ft %2d slots", e.ID, e.String(), e.Mass, e.Size)
}
