// Package pioneer implements convergence-based pioneer detection over a
// panel of expert forecasts: experts whose prior-period movement the rest of
// the group subsequently converges toward receive the aggregation weight.
package pioneer

import (
	"math"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

// ComputeWeights computes pioneer weights from a T×N forecast panel.
//
// For each expert i at period t, three conditions are evaluated against the
// leave-one-out group mean m_-i:
//
//	Step 1 (distance):    |x_i[t] − m_-i[t]| < |x_i[t-1] − m_-i[t-1]|
//	Step 2 (orientation): |Δm_-i[t]| > |Δx_i[t]|
//	Step 3 (proportion):  p = |Δm_-i[t]| / (|Δm_-i[t]| + |Δx_i[t]|)
//
// An expert contributes raw weight p only when Step 1 and Step 2 hold and
// the Step 3 denominator is strictly positive; otherwise it contributes
// exactly 0. Each period's raw weights are normalized to sum to 1. Periods
// where the raw sum is 0 (no pioneer, including period 0 which has no
// predecessor) come back as all-NaN rows, signaling the caller to fall back
// to the simple cross-sectional mean.
//
// Undefined inputs never error: NaN comparisons fail the conditions, so an
// expert with missing data simply contributes 0 at the affected periods.
func ComputeWeights(forecasts *panel.Matrix) *panel.Matrix {
	loo := forecasts.LeaveOneOutMeans()
	deltaX := forecasts.Diff()
	deltaM := loo.Diff()
	distance := forecasts.AbsDistance(loo)

	weights := panel.New(forecasts.Periods, forecasts.Experts)
	rows, cols := forecasts.Rows(), forecasts.Cols()

	for t := 0; t < rows; t++ {
		raw := make([]float64, cols)
		rowSum := 0.0
		if t > 0 {
			for i := 0; i < cols; i++ {
				// Strict comparisons: NaN operands fail the condition.
				closer := distance.Values[t][i] < distance.Values[t-1][i]
				groupMove := math.Abs(deltaM.Values[t][i])
				expertMove := math.Abs(deltaX.Values[t][i])
				oriented := groupMove > expertMove
				denom := groupMove + expertMove

				if closer && oriented && denom > 0 {
					raw[i] = groupMove / denom
					rowSum += raw[i]
				}
			}
		}

		if rowSum > 0 {
			for i := 0; i < cols; i++ {
				weights.Values[t][i] = raw[i] / rowSum
			}
		}
		// rowSum == 0: no pioneer, the row stays NaN.
	}

	return weights
}
