package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ball-breaker/internal/api"
	"github.com/vovakirdan/ball-breaker/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve scores and sessions over HTTP",
	Long: `Start a read-only JSON API over the scores database.

Endpoints:
  GET /health
  GET /api/scores?limit=N      - Top scores
  GET /api/sessions?limit=N    - Most recent sessions
  GET /api/sessions/{id}       - One session
  GET /api/stats               - Win rate and score aggregates

Examples:
  ballbreaker api
  ballbreaker api --addr 127.0.0.1:9000 --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
}

func runAPI(_ *cobra.Command, _ []string) error {
	// The API is useless without the database, so fail instead of degrading
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(store, gameID, logger.WithPrefix("api"))
	return srv.ListenAndServe(ctx, flagAPIAddr)
}
