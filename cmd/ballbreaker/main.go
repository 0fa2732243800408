// ballbreaker is a terminal ball breaker: spin the reel, launch the balls it
// pays out and clear the field before the spins run out.
//
// Usage:
//
//	ballbreaker play          - Play in this terminal
//	ballbreaker sim           - Run seeded headless sessions
//	ballbreaker serve         - Start SSH server for remote play
//	ballbreaker api           - Serve scores and sessions as JSON
//	ballbreaker scores        - Show high scores and recent sessions
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.ballbreaker/scores.db)
//	--config <path>      - Load game tuning from a YAML file
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/games/ballbreaker"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

const gameID = "ballbreaker"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

// logger writes to stderr; play replaces its output so it does not draw
// over the game.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "ballbreaker",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballbreaker",
	Short: "Ball Breaker - a slot-machine brick breaker for your terminal",
	Long: `Ball Breaker is a brick breaker driven by a slot reel. Each spin pays
out colored balls; balls deal full damage to blocks of their own color and
chip everything else. Clear the field before the spins run out.

Available commands:
  play     - Play in this terminal
  sim      - Run seeded headless sessions with the autoplay policy
  serve    - Start SSH server for remote play
  api      - Serve scores and sessions over HTTP
  scores   - View high scores and recent sessions

Examples:
  ballbreaker play
  ballbreaker play --difficulty hard --seed 42
  ballbreaker sim --runs 20
  ballbreaker serve --ssh :2222
  ballbreaker api --addr :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)

		ballbreaker.SetConfigPath(flagConfig)
		ballbreaker.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballbreaker/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig resolves the game tuning the same way a new game does.
func loadConfig() (config.BallBreakerConfig, error) {
	cfg, err := config.LoadBallBreaker(flagConfig)
	if err != nil {
		return cfg, err
	}
	if preset := config.ParsePreset(flagDifficulty); preset != "" {
		config.ApplyBallBreakerPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the scores database, logging and returning nil when it
// is unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
