package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-breaker/internal/games/ballbreaker"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagSimSave  bool
	flagNoSkip   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run seeded headless sessions",
	Long: `Play sessions without a terminal using the autoplay policy: spin while
fewer than two balls are in play, stop the reel at once and launch every
payout. Runs use consecutive seeds starting at --seed (1 when unset), so a
run is reproducible.

Examples:
  ballbreaker sim
  ballbreaker sim --runs 50 --difficulty hard
  ballbreaker sim --seed 7 --runs 1 --log-level debug
  ballbreaker sim --runs 20 --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 0, "Give up on a session after this many ticks (0 = 30 simulated minutes)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished sessions in the scores database")
	simCmd.Flags().BoolVar(&flagNoSkip, "no-skip", false, "Let reel and wheel animations play out")
}

func runSim(_ *cobra.Command, _ []string) error {
	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", flagRuns)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSimSave {
		if store = openStore(); store != nil {
			defer store.Close()
		}
	}

	first := flagSeed
	if first == 0 {
		first = 1
	}

	var wins, unfinished, total int
	start := time.Now()
	for i := range flagRuns {
		seed := first + int64(i)

		opts := ballbreaker.DefaultSimOptions(seed)
		if flagFPS > 0 {
			opts.TickMs = 1000.0 / float64(flagFPS)
		}
		if flagMaxTicks > 0 {
			opts.MaxTicks = flagMaxTicks
		}
		opts.Policy.SkipAnimations = !flagNoSkip

		res, simErr := ballbreaker.Simulate(cfg, opts, ballbreaker.WithLogger(logger.With("seed", seed)))
		if simErr != nil {
			unfinished++
			logger.Warn("session unfinished", "seed", seed, "error", simErr)
			continue
		}

		total += res.Score
		if res.Won {
			wins++
		}
		logger.Info("session finished",
			"seed", seed,
			"won", res.Won,
			"score", res.Score,
			"spins", res.SpinsUsed,
			"blocks_left", res.BlocksLeft,
			"sim_time", time.Duration(res.DurationMs)*time.Millisecond,
		)

		if store != nil {
			id, saveErr := store.SaveSession(storage.SessionRecord{
				GameID:     gameID,
				Source:     "sim",
				Seed:       seed,
				Won:        res.Won,
				Score:      res.Score,
				SpinsUsed:  res.SpinsUsed,
				BlocksLeft: res.BlocksLeft,
				DurationMs: int64(res.DurationMs),
			})
			if saveErr != nil {
				logger.Error("could not save session", "seed", seed, "error", saveErr)
			} else {
				logger.Debug("session saved", "seed", seed, "id", id)
			}
		}
	}

	finished := flagRuns - unfinished
	avg := 0.0
	if finished > 0 {
		avg = float64(total) / float64(finished)
	}
	logger.Info("simulation complete",
		"runs", flagRuns,
		"wins", wins,
		"unfinished", unfinished,
		"avg_score", fmt.Sprintf("%.1f", avg),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
