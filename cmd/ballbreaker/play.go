package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/platform/tui"
	"github.com/vovakirdan/ball-breaker/internal/registry"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up   - Spin the reel, stop it, launch the payout
  Enter/S    - Skip the reel or wheel animation
  Left/Right - Steer the launch angle
  Tab        - Scoreboard
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - More spins, softer blocks, a luckier reel
  normal - Default tuning with speed progression
  hard   - Fewer spins, tougher blocks, a stingier reel
  fixed  - No speed progression

Examples:
  ballbreaker play
  ballbreaker play --difficulty easy
  ballbreaker play --seed 42 --log-file ./ballbreaker.log
  ballbreaker play --config ./my-ballbreaker.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The game owns the terminal; logs go to a file or nowhere
	logger.SetOutput(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Continue without storage if the database is unavailable
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, cfg, tui.Options{
		Store:  store,
		Source: "play",
		Player: os.Getenv("USER"),
		Logger: logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
