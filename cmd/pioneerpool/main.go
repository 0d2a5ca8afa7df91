package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "PioneerPool"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		// Pretty console output on interactive terminals, JSON otherwise.
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	rootCmd := &cobra.Command{
		Use:     "pioneerpool",
		Short:   "Pioneer-weighted pooling of expert forecast panels",
		Version: version,
		Long: `PioneerPool pools a panel of expert forecasts by detecting pioneers:
experts whose prior-period movement the rest of the group subsequently
converges toward. Pioneer periods use convergence-proportional weights;
all other periods fall back to the simple cross-sectional mean.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (optional)")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute pioneer weights and the pooled forecast from a CSV panel",
		Long:  "Loads a period × expert CSV panel, computes pioneer weights and the pooled series, and writes weights.csv and pooled.csv artifacts",
		RunE:  runCompute,
	}
	computeCmd.Flags().String("input", "", "Input panel CSV (period column first, one column per expert)")
	computeCmd.Flags().String("out", "", "Output directory for artifacts (default from config)")
	_ = computeCmd.MarkFlagRequired("input")

	synthCmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a synthetic regime-shift forecast panel",
		Long:  "Writes a deterministic synthetic panel CSV where one expert moves early to a new level and the rest converge",
		RunE:  runSynth,
	}
	synthCmd.Flags().Int("experts", 0, "Number of experts (default from config)")
	synthCmd.Flags().Int("periods", 0, "Number of periods (default from config)")
	synthCmd.Flags().Int64("seed", 0, "RNG seed (default from config)")
	synthCmd.Flags().String("out", "panel.csv", "Output CSV path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Starts the HTTP server with /v1/weights, /v1/pool, /health, and /metrics endpoints",
		RunE:  runServe,
	}
	serveCmd.Flags().String("host", "", "Listen host (default from config)")
	serveCmd.Flags().Int("port", 0, "Listen port (default from config)")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
