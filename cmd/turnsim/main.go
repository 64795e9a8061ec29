package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/turn-authority/internal/config"
	"github.com/jwebster45206/turn-authority/internal/logger"
)

var (
	cfg *config.Config
	log *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "turnsim",
		Short: "Replay scripted turns through the rules engine",
		Long: `turnsim validates and executes scripted player turns against a scenario
world, rolling for complications between actions the way a live session would.

  turnsim run data/scenarios/old_well.yaml --seed 42
  turnsim run data/scenarios/old_well.yaml --world <uuid> --session <id> --turn 4
  turnsim check data/scenarios/*.yaml
  turnsim odds --tags dangerous,cursed --phase climax --danger risky`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			log = logger.Setup(cfg)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(oddsCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
