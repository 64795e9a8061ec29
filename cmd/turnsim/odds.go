package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Show the complication probability breakdown for a situation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, _ := cmd.Flags().GetStringSlice("tags")
		phase, _ := cmd.Flags().GetString("phase")
		tension, _ := cmd.Flags().GetInt("tension")
		turnsSince, _ := cmd.Flags().GetInt("turns-since")
		subturnIndex, _ := cmd.Flags().GetInt("subturn")
		danger, _ := cmd.Flags().GetString("danger")

		in := complication.Inputs{
			TurnsSinceComplication: turnsSince,
			SubturnIndex:           subturnIndex,
			LocationDanger:         world.DangerLevel(strings.ToLower(danger)),
		}
		for _, t := range tags {
			in.RiskTags = in.RiskTags.Add(action.RiskTag(strings.ToLower(strings.TrimSpace(t))))
		}
		if phase != "" {
			in.Arc = &complication.Arc{Key: "cli", Phase: complication.Phase(strings.ToLower(phase)), Tension: tension}
		}

		calc := complication.NewCalculator(complication.Config{
			BaseChance: cfg.ComplicationBaseChance,
			MaxChance:  cfg.ComplicationMaxChance,
		})
		fmt.Fprint(cmd.OutOrStdout(), renderOdds(calc.Calculate(in)))
		return nil
	},
}

func init() {
	oddsCmd.Flags().StringSlice("tags", nil, "risk tags, e.g. dangerous,cursed")
	oddsCmd.Flags().String("phase", "", "active arc phase (setup, rising, climax, falling, resolution)")
	oddsCmd.Flags().Int("tension", 50, "active arc tension 0-100")
	oddsCmd.Flags().Int("turns-since", complication.NoHistory, "turns since the last complication (-1 = never)")
	oddsCmd.Flags().Int("subturn", 0, "index of the action within the turn")
	oddsCmd.Flags().String("danger", string(world.DangerNeutral), "location danger (safe, neutral, risky, dangerous, hostile)")
}

func renderOdds(p complication.Probability) string {
	var sb strings.Builder
	row := func(label string, v float64) {
		fmt.Fprintf(&sb, "  %-20s %s\n", label, dimStyle.Render(fmt.Sprintf("%+.3f", v)))
	}
	sb.WriteString(titleStyle.Render("COMPLICATION ODDS") + "\n")
	row("base", p.Base)
	row("arc phase", p.ArcPhase)
	row("arc tension", p.ArcTension)
	for _, tag := range slices.Sorted(maps.Keys(p.RiskTags)) {
		row("tag "+string(tag), p.RiskTags[tag])
	}
	row("subturn index", p.SubturnIndex)
	row("location danger", p.LocationDanger)
	fmt.Fprintf(&sb, "  %-20s %.3f\n", "subtotal", p.Subtotal)
	fmt.Fprintf(&sb, "  %-20s x%.2f\n", "cooldown", p.CooldownMultiplier)
	final := fmt.Sprintf("%.1f%%", p.FinalChance*100)
	if p.Capped {
		final += " (capped)"
	}
	fmt.Fprintf(&sb, "  %-20s %s\n", "final chance", okStyle.Render(final))
	return sb.String()
}
