package pioneer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

func TestPool_Scenario(t *testing.T) {
	forecasts := scenarioPanel()
	weights := ComputeWeights(forecasts)
	pooled := Pool(forecasts, weights)

	require.Len(t, pooled.Values, 4)
	assert.InDelta(t, 10.0, pooled.Values[0], 1e-12)     // mean fallback
	assert.InDelta(t, 10.0, pooled.Values[1], 1e-12)     // (11+10+9)/3
	assert.InDelta(t, 32.0/3.0, pooled.Values[2], 1e-12) // (13+10+9)/3
	assert.InDelta(t, 13.0, pooled.Values[3], 1e-12)     // full weight on E1
}

func TestPool_FallbackCompleteness(t *testing.T) {
	forecasts := randomPanel(314, 50, 4)
	weights := ComputeWeights(forecasts)
	pooled := Pool(forecasts, weights)

	for tt := 0; tt < forecasts.Rows(); tt++ {
		sum := weights.RowSum(tt)
		if math.IsNaN(sum) || sum == 0 {
			assert.InDelta(t, forecasts.RowMean(tt), pooled.Values[tt], 1e-12,
				"period %d should use the mean fallback", tt)
		}
	}
}

func TestPool_WeightedSumWhenPioneerPresent(t *testing.T) {
	forecasts := randomPanel(271, 50, 5)
	weights := ComputeWeights(forecasts)
	pooled := Pool(forecasts, weights)

	checked := 0
	for tt := 0; tt < forecasts.Rows(); tt++ {
		sum := weights.RowSum(tt)
		if math.IsNaN(sum) || sum == 0 {
			continue
		}
		want := 0.0
		for i := 0; i < forecasts.Cols(); i++ {
			want += weights.Values[tt][i] * forecasts.Values[tt][i]
		}
		assert.InDelta(t, want, pooled.Values[tt], 1e-9, "period %d", tt)
		checked++
	}
	require.Greater(t, checked, 0, "seed should produce at least one pioneer period")
}

func TestPool_SingleExpertDegeneracy(t *testing.T) {
	forecasts := newPanel([]string{"solo"}, [][]float64{{3}, {5}, {8}})
	weights := ComputeWeights(forecasts)
	pooled := Pool(forecasts, weights)

	for tt := 0; tt < forecasts.Rows(); tt++ {
		assert.InDelta(t, forecasts.Values[tt][0], pooled.Values[tt], 1e-12)
	}
}

func TestPool_AllUndefinedRow(t *testing.T) {
	nan := math.NaN()
	forecasts := newPanel([]string{"E1", "E2"}, [][]float64{
		{1, 2},
		{nan, nan},
		{3, nan},
	})
	weights := ComputeWeights(forecasts)
	pooled := Pool(forecasts, weights)

	assert.InDelta(t, 1.5, pooled.Values[0], 1e-12)
	assert.True(t, math.IsNaN(pooled.Values[1]), "no forecasts at all")
	assert.InDelta(t, 3.0, pooled.Values[2], 1e-12, "mean skips the undefined entry")
}

func TestPool_SmallerWeightMatrixTreatedAsUndefined(t *testing.T) {
	forecasts := newPanel([]string{"E1", "E2"}, [][]float64{
		{1, 3},
		{2, 4},
		{5, 7},
	})
	// Weight matrix covering only the first two periods: the third period has
	// no weights and must fall back to the mean.
	weights := panel.New(forecasts.Periods[:2], forecasts.Experts)
	weights.Values[1][0] = 1.0
	weights.Values[1][1] = 0.0

	pooled := Pool(forecasts, weights)

	assert.InDelta(t, 2.0, pooled.Values[0], 1e-12) // all weights undefined at t=0
	assert.InDelta(t, 2.0, pooled.Values[1], 1e-12) // full weight on E1
	assert.InDelta(t, 6.0, pooled.Values[2], 1e-12) // out of range: fallback
}
