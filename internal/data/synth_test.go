package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/pioneerpool/internal/domain/pioneer"
)

func TestSynthPanel_ShapeAndDeterminism(t *testing.T) {
	cfg := DefaultSynthConfig()
	a := SynthPanel(cfg)
	b := SynthPanel(cfg)

	require.Equal(t, cfg.Periods, a.Rows())
	require.Equal(t, cfg.Experts, a.Cols())
	assert.Equal(t, a.Values, b.Values, "same seed must reproduce the panel")

	cfg.Seed = 7
	c := SynthPanel(cfg)
	assert.NotEqual(t, a.Values, c.Values, "different seed must change the panel")
}

func TestSynthPanel_PioneerMovesFirst(t *testing.T) {
	cfg := DefaultSynthConfig()
	cfg.NoiseStd = 0 // make the level structure exact
	m := SynthPanel(cfg)

	shift := cfg.ShiftPeriod
	assert.InDelta(t, cfg.ShiftLevel, m.Values[shift][0], 1e-9)
	for i := 1; i < cfg.Experts; i++ {
		assert.Less(t, m.Values[shift][i], cfg.ShiftLevel,
			"laggard %d should still trail the shift level", i)
	}
	// Everyone converges by the end.
	last := cfg.Periods - 1
	for i := 0; i < cfg.Experts; i++ {
		assert.InDelta(t, cfg.ShiftLevel, m.Values[last][i], 5.0)
	}
}

// The generated scenario should actually trip the detector: the early mover
// must collect pioneer weight somewhere after the shift.
func TestSynthPanel_DetectorFindsTheEarlyMover(t *testing.T) {
	cfg := DefaultSynthConfig()
	cfg.NoiseStd = 0
	m := SynthPanel(cfg)

	weights := pioneer.ComputeWeights(m)

	total := 0.0
	for tt := cfg.ShiftPeriod; tt < cfg.Periods; tt++ {
		w := weights.Values[tt][0]
		if !math.IsNaN(w) {
			total += w
		}
	}
	assert.Greater(t, total, 0.0, "E1 should receive pioneer weight after the shift")
}
