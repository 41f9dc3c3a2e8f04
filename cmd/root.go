package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/config"
)

var (
	dbPath      string
	configPath  string
	dataPath    string
	datasetHash string
	logLevel    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "crickmetrics",
	Short: "Ball-by-ball batting analytics",
	Long: `Import ball-by-ball T20 data and analyse batters: strike rate, control and
boundary rates against a match-context baseline, group-wise breakdowns, and
run-expectancy based risk/reward per shot type.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default from config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "analyse this CSV directly instead of the database")
	rootCmd.PersistentFlags().StringVar(&datasetHash, "dataset", "", "dataset hash prefix (default: latest import)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default from config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(battersCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(lineLengthCmd)
	rootCmd.AddCommand(frequencyCmd)
	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(expectancyCmd)
	rootCmd.AddCommand(progressionCmd)
	rootCmd.AddCommand(pitchMapCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the config and fills unset flags from it.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.DB
	}
	if dataPath == "" && cfg.Data != "" && !cmd.Flags().Changed("dataset") {
		dataPath = cfg.Data
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
