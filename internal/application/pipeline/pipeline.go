// Package pipeline runs the end-to-end batch flow: load a forecast panel,
// compute pioneer weights, pool, and write the result artifacts.
package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/pioneerpool/internal/data"
	"github.com/sawpanic/pioneerpool/internal/domain/panel"
	"github.com/sawpanic/pioneerpool/internal/domain/pioneer"
	httpmetrics "github.com/sawpanic/pioneerpool/internal/interfaces/http"
)

// Result summarizes a completed pipeline run.
type Result struct {
	Forecasts       *panel.Matrix
	Weights         *panel.Matrix
	Pooled          *panel.Series
	PioneerPeriods  int
	FallbackPeriods int
	PioneerCounts   map[string]int // periods with positive weight, per expert
	WeightsPath     string
	PooledPath      string
}

// Pipeline executes the load → weights → pool → write sequence.
type Pipeline struct {
	outputDir string
	metrics   *httpmetrics.MetricsRegistry
}

// New creates a pipeline writing artifacts under outputDir. A nil metrics
// registry disables instrumentation.
func New(outputDir string, metrics *httpmetrics.MetricsRegistry) *Pipeline {
	return &Pipeline{outputDir: outputDir, metrics: metrics}
}

// RunFile loads a panel CSV and runs the pipeline on it.
func (p *Pipeline) RunFile(inputPath string) (*Result, error) {
	forecasts, err := data.ReadPanel(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast panel: %w", err)
	}
	log.Info().
		Str("input", inputPath).
		Int("periods", forecasts.Rows()).
		Int("experts", forecasts.Cols()).
		Msg("forecast panel loaded")

	return p.Run(forecasts)
}

// Run computes weights and the pooled series for an in-memory panel and
// writes weights.csv and pooled.csv artifacts.
func (p *Pipeline) Run(forecasts *panel.Matrix) (*Result, error) {
	var weightsTimer, poolTimer *httpmetrics.ComputeTimer

	if p.metrics != nil {
		weightsTimer = p.metrics.StartComputeTimer("weights")
	}
	weights := pioneer.ComputeWeights(forecasts)
	if weightsTimer != nil {
		weightsTimer.Stop()
	}

	if p.metrics != nil {
		poolTimer = p.metrics.StartComputeTimer("pool")
	}
	pooled := pioneer.Pool(forecasts, weights)
	if poolTimer != nil {
		poolTimer.Stop()
	}

	result := &Result{
		Forecasts:     forecasts,
		Weights:       weights,
		Pooled:        pooled,
		PioneerCounts: make(map[string]int),
	}
	for t := 0; t < weights.Rows(); t++ {
		sum := weights.RowSum(t)
		if math.IsNaN(sum) || sum == 0 {
			result.FallbackPeriods++
			continue
		}
		result.PioneerPeriods++
		for i, expert := range weights.Experts {
			if weights.Values[t][i] > 0 {
				result.PioneerCounts[expert]++
			}
		}
	}

	if p.metrics != nil {
		p.metrics.RecordOutcome("cli", result.PioneerPeriods, result.FallbackPeriods)
	}

	if err := p.writeArtifacts(result); err != nil {
		return nil, err
	}

	log.Info().
		Int("pioneer_periods", result.PioneerPeriods).
		Int("fallback_periods", result.FallbackPeriods).
		Any("pioneer_counts", result.PioneerCounts).
		Str("weights", result.WeightsPath).
		Str("pooled", result.PooledPath).
		Msg("pipeline completed")

	return result, nil
}

func (p *Pipeline) writeArtifacts(result *Result) error {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	result.WeightsPath = filepath.Join(p.outputDir, "weights.csv")
	if err := data.WritePanel(result.WeightsPath, result.Weights); err != nil {
		return fmt.Errorf("failed to write weights artifact: %w", err)
	}

	result.PooledPath = filepath.Join(p.outputDir, "pooled.csv")
	if err := data.WriteSeries(result.PooledPath, "pooled", result.Pooled); err != nil {
		return fmt.Errorf("failed to write pooled artifact: %w", err)
	}

	return nil
}
