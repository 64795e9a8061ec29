package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/turn-authority/internal/logger"
	"github.com/jwebster45206/turn-authority/internal/services"
	"github.com/jwebster45206/turn-authority/internal/sim"
	"github.com/jwebster45206/turn-authority/internal/storage"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

const savedWorldTTL = 24 * time.Hour

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Play every turn of a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().Int64("seed", 0, "dice and complication seed (default DICE_SEED, 0 = random)")
	runCmd.Flags().Bool("accept", false, "carry remaining actions forward when a choice is offered")
	runCmd.Flags().Bool("json", false, "print the full report as JSON")
	runCmd.Flags().Bool("save", false, "save the final world to Redis and print its id")
	runCmd.Flags().String("session", "", "continue an earlier session id so its complication history applies")
	runCmd.Flags().String("world", "", "resume from a world saved with --save")
	runCmd.Flags().Int("turn", 0, "turns the session has already played")
	runCmd.Flags().Bool("discard", false, "delete the resumed world from Redis after the run")
	runCmd.Flags().Int("width", 80, "wrap width for narration")
}

func runScenario(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetInt64("seed")
	accept, _ := cmd.Flags().GetBool("accept")
	asJSON, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")
	width, _ := cmd.Flags().GetInt("width")
	sessionID, _ := cmd.Flags().GetString("session")
	worldFlag, _ := cmd.Flags().GetString("world")
	playedTurns, _ := cmd.Flags().GetInt("turn")
	discard, _ := cmd.Flags().GetBool("discard")
	if seed == 0 {
		seed = cfg.DiceSeed
	}

	var worldID uuid.UUID
	if worldFlag != "" {
		id, err := uuid.Parse(worldFlag)
		if err != nil {
			return fmt.Errorf("invalid world id %q: %w", worldFlag, err)
		}
		worldID = id
	}
	if discard && worldID == uuid.Nil {
		return errors.New("--discard needs --world")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sc, err := sim.Load(args[0])
	if err != nil {
		return err
	}

	gen, closeGen, err := services.NewGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeGen() }()

	history, closeHistory, err := storage.NewHistory(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeHistory() }()

	opts := sim.Options{
		Seed:          seed,
		AcceptChoices: accept,
		Calculator: complication.NewCalculator(complication.Config{
			BaseChance: cfg.ComplicationBaseChance,
			MaxChance:  cfg.ComplicationMaxChance,
		}),
		History:     history,
		SessionID:   sessionID,
		PlayedTurns: playedTurns,
	}
	if worldID != uuid.Nil {
		snap, err := withWorldStore(func(store *storage.RedisWorldStore) (world.Snapshot, error) {
			return store.Load(ctx, worldID)
		})
		if err != nil {
			return err
		}
		opts.World = &snap
	}
	if gen != nil {
		opts.Generator = gen
		opts.Items = services.NewGeneratedItemFactory(gen, log)
	}

	report, err := sim.Run(ctx, sc, opts, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		fmt.Fprint(out, renderReport(report, width))
	}

	if save {
		id, err := withWorldStore(func(store *storage.RedisWorldStore) (uuid.UUID, error) {
			id := uuid.New()
			return id, store.Save(ctx, id, report.Final)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved world %s (resume with --world %s --session %s --turn %d)\n",
			id, id, report.SessionID, report.LastTurn)
	}
	if discard {
		_, err := withWorldStore(func(store *storage.RedisWorldStore) (struct{}, error) {
			return struct{}{}, store.Delete(ctx, worldID)
		})
		if err != nil {
			logger.WithError(log, err).Warn("Failed to discard resumed world", "uuid", worldID)
		}
	}
	return nil
}

// withWorldStore opens a Redis connection for the duration of fn.
func withWorldStore[T any](fn func(store *storage.RedisWorldStore) (T, error)) (T, error) {
	client, err := storage.NewClient(cfg.RedisURL, log)
	if err != nil {
		var zero T
		return zero, err
	}
	defer func() { _ = client.Close() }()
	return fn(storage.NewRedisWorldStore(client, savedWorldTTL, log))
}
