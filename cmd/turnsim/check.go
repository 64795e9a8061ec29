package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/turn-authority/internal/sim"
)

var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml>...",
	Short: "Validate scenario files without playing them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			problems := checkScenario(path)
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s %s\n", okStyle.Render("ok"), path)
				continue
			}
			failed++
			fmt.Fprintf(out, "%s %s\n", failStyle.Render("FAIL"), path)
			for _, p := range problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenario(s) failed validation", failed, len(args))
		}
		return nil
	},
}

func checkScenario(path string) []string {
	sc, err := sim.Load(path)
	if err != nil {
		return []string{strings.TrimPrefix(err.Error(), "failed to parse scenario: ")}
	}
	return sc.Lint(path)
}
