package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/campaign-aid/internal/game/track"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

func newSheetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheet [unit.yaml...]",
		Short: "Reduce unit sheets to their current armor, structure, and equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			units, err := a.loadUnits(cat, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, u := range units {
				if i > 0 {
					_, _ = fmt.Fprintln(out)
				}
				printSheet(out, u)
			}
			return nil
		},
	}
}

func printSheet(out io.Writer, u *unit.Unit) {
	_, _ = fmt.Fprintln(out, u)
	printTracks(out, "armor", u.ArmorSheet())
	printTracks(out, "structure", u.StructureSheet())
	_, _ = fmt.Fprintf(out, "  equipment  %.1ft, %.1ft free\n", u.EquipmentTonnage(), u.AvailableTonnage())
	for _, e := range u.Equipment() {
		_, _ = fmt.Fprintf(out, "    %-3s %s\n", e.Location, e.Equipment)
	}
}

func printTracks(out io.Writer, label string, tracks []track.Track) {
	_, _ = fmt.Fprintf(out, "  %-10s", label)
	for _, t := range tracks {
		_, _ = fmt.Fprintf(out, " %s", t)
	}
	_, _ = fmt.Fprintln(out)
}
