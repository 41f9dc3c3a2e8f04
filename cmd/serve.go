package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/server"
)

var (
	serveAddr    string
	serveTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over a JSON HTTP API",
	Long: `Load the active dataset once and serve batter summaries, group tables,
frequency tables, risk/reward and the run-expectancy table as JSON.
Filters are query parameters (team, opposition, overs, from, to, ...).
Prometheus metrics are exposed at /metrics.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 30*time.Second, "per-request timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr == "" {
		serveAddr = cfg.Server.Addr
	}
	floor, ceil, err := cfg.DateRange()
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}
	log.Info().Int("deliveries", e.Len()).Int("batters", len(e.Batters())).Msg("dataset loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(e, server.Options{
		Addr:    serveAddr,
		MinDate: floor,
		MaxDate: ceil,
		Timeout: serveTimeout,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
