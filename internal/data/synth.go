package data

import (
	"fmt"
	"math/rand"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

// SynthConfig controls the synthetic regime-shift scenario generator.
type SynthConfig struct {
	Experts     int     `yaml:"experts"`      // panel width N
	Periods     int     `yaml:"periods"`      // panel length T
	ShiftPeriod int     `yaml:"shift_period"` // period at which the pioneer moves
	BaseLevel   float64 `yaml:"base_level"`   // pre-shift consensus level
	ShiftLevel  float64 `yaml:"shift_level"`  // post-shift true level
	LearnRate   float64 `yaml:"learn_rate"`   // geometric convergence speed of laggards
	NoiseStd    float64 `yaml:"noise_std"`    // observation noise stddev
	Seed        int64   `yaml:"seed"`         // RNG seed for reproducibility
}

// DefaultSynthConfig returns the default regime-shift scenario: eight
// experts over sixty periods, one early mover, the rest converging.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		Experts:     8,
		Periods:     60,
		ShiftPeriod: 20,
		BaseLevel:   100.0,
		ShiftLevel:  130.0,
		LearnRate:   0.15,
		NoiseStd:    0.5,
		Seed:        42,
	}
}

// SynthPanel generates a deterministic synthetic forecast panel with a
// structural shift: expert E1 jumps to the post-shift level immediately at
// ShiftPeriod while the rest converge geometrically, each with its own lag.
// The same config always yields the same panel.
func SynthPanel(cfg SynthConfig) *panel.Matrix {
	rng := rand.New(rand.NewSource(cfg.Seed))

	experts := make([]string, cfg.Experts)
	for i := range experts {
		experts[i] = fmt.Sprintf("E%d", i+1)
	}
	periods := make([]string, cfg.Periods)
	for t := range periods {
		periods[t] = fmt.Sprintf("t%03d", t)
	}

	m := panel.New(periods, experts)
	level := make([]float64, cfg.Experts)
	for i := range level {
		level[i] = cfg.BaseLevel
	}

	for t := 0; t < cfg.Periods; t++ {
		for i := 0; i < cfg.Experts; i++ {
			if t >= cfg.ShiftPeriod {
				if i == 0 {
					// The pioneer snaps to the new level at the shift.
					level[i] = cfg.ShiftLevel
				} else {
					// Laggards close a fixed fraction of the remaining gap,
					// slower the further down the panel they sit.
					rate := cfg.LearnRate / (1.0 + 0.3*float64(i-1))
					level[i] += rate * (cfg.ShiftLevel - level[i])
				}
			}
			m.Values[t][i] = level[i] + rng.NormFloat64()*cfg.NoiseStd
		}
	}
	return m
}
