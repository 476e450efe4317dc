package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/campaign-aid/internal/game/combat"
	"github.com/cory-johannsen/campaign-aid/internal/game/dice"
	"github.com/cory-johannsen/campaign-aid/internal/game/unit"
)

func newDamageCmd(a *app) *cobra.Command {
	var (
		hits []int
		at   string
		seed uint64
	)
	cmd := &cobra.Command{
		Use:   "damage <unit.yaml>",
		Short: "Apply weapon hits to a unit and print the damaged sheet",
		Long: "Apply weapon hits to a unit. Each value of --hits is one hit; its location\n" +
			"is rolled on the 2d6 hit table unless --at names it. A nonzero --seed makes\n" +
			"the rolls repeatable.",
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
			src := dice.NewCryptoSource()
			if seed != 0 {
				src = dice.NewSeededSource(seed)
			}
			r := combat.NewResolver(cat.rules, dice.NewRoller(src, a.logger), a.logger)

			u := units[0]
			var results []combat.Hit
			if at == "" {
				if u, results, err = r.Volley(u, hits); err != nil {
					return err
				}
			} else {
				loc, ok := cat.rules.Location(u.Type(), at)
				if !ok {
					return fmt.Errorf("damage: unknown location %q for %s", at, u.Type())
				}
				for _, d := range hits {
					var hit combat.Hit
					if u, hit, err = r.Apply(u, loc, d); err != nil {
						return err
					}
					results = append(results, hit)
				}
			}
			printDamage(cmd.OutOrStdout(), u, results)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&hits, "hits", nil, "damage of each hit, in order (e.g. 5,5,2)")
	cmd.Flags().StringVar(&at, "at", "", "apply every hit at this location instead of rolling")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for repeatable hit location rolls")
	_ = cmd.MarkFlagRequired("hits")
	return cmd
}

func printDamage(out io.Writer, u *unit.Unit, hits []combat.Hit) {
	for i, h := range hits {
		line := fmt.Sprintf("  hit %-2d %-3s %2d damage", i+1, h.Location, h.Damage)
		if h.Roll != nil {
			line += fmt.Sprintf(" (%s)", h.Roll)
		}
		_, _ = fmt.Fprintln(out, line)
		if len(h.Destroyed) > 0 {
			names := make([]string, len(h.Destroyed))
			for j, l := range h.Destroyed {
				names[j] = l.String()
			}
			_, _ = fmt.Fprintln(out, color.RedString("         destroyed %s", strings.Join(names, ", ")))
		}
		if h.Excess > 0 {
			_, _ = fmt.Fprintln(out, color.YellowString("         %d damage with nowhere to go", h.Excess))
		}
	}
	printSheet(out, u)
}
