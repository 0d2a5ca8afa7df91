package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/pioneerpool/internal/application/pipeline"
	"github.com/sawpanic/pioneerpool/internal/config"
	httpmetrics "github.com/sawpanic/pioneerpool/internal/interfaces/http"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	return cfg, nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("out")
	if outputDir == "" {
		outputDir = cfg.Pipeline.OutputDir
	}

	log.Info().Str("input", input).Str("out", outputDir).Msg("starting compute")

	p := pipeline.New(outputDir, httpmetrics.NewMetricsRegistry())
	result, err := p.RunFile(input)
	if err != nil {
		return fmt.Errorf("compute failed: %w", err)
	}

	fmt.Printf("Pooled %d periods × %d experts: %d pioneer, %d fallback\n",
		result.Forecasts.Rows(), result.Forecasts.Cols(),
		result.PioneerPeriods, result.FallbackPeriods)
	fmt.Printf("Wrote %s and %s\n", result.WeightsPath, result.PooledPath)

	return nil
}
