package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ball-breaker/internal/platform/tui"
	"github.com/vovakirdan/ball-breaker/internal/registry"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent sessions",
	Long: `Display the top 10 high scores and the most recent sessions.

Examples:
  ballbreaker scores
  ballbreaker scores --interactive
  ballbreaker scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores and sessions")
}

func runScores(_ *cobra.Command, _ []string) error {
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, info, width, height)
	}

	return printScores(store, info.Title)
}

func printScores(store *storage.Store, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'ballbreaker play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	sessions, err := store.RecentSessions(gameID, 5)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}
	if len(sessions) > 0 {
		fmt.Println()
		fmt.Println("Recent sessions")
		fmt.Printf("  %-6s  %-6s  %-6s  %-8s  %s\n", "Source", "Result", "Score", "Time", "Date")
		for _, s := range sessions {
			result := "lost"
			if s.Won {
				result = "won"
			}
			d := time.Duration(s.DurationMs) * time.Millisecond
			fmt.Printf("  %-6s  %-6s  %-6d  %-8s  %s\n",
				s.Source, result, s.Score, d.Round(time.Second), s.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Played: %d  Won: %.0f%%\n", stats.HighScore, stats.GamesCount, stats.WinRate()*100)
	}
	return nil
}
