package pioneer

import (
	"math"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

// Pool computes the pooled forecast series S_t = Σ_i w_i[t]·x_i[t].
//
// At periods where the weight row sum is undefined or exactly 0 (no pioneer
// detected), the pooled value falls back to the simple cross-sectional mean
// of the forecasts, skipping undefined entries. The result is therefore
// defined at every period where at least one expert has a defined forecast.
//
// Alignment is positional over the forecast matrix's shape: a weight cell
// missing from a smaller weight matrix is treated as undefined.
func Pool(forecasts, weights *panel.Matrix) *panel.Series {
	rows, cols := forecasts.Rows(), forecasts.Cols()
	pooled := &panel.Series{
		Periods: append([]string(nil), forecasts.Periods...),
		Values:  make([]float64, rows),
	}

	for t := 0; t < rows; t++ {
		weightedSum := 0.0
		weightSum := 0.0
		definedTerms := 0
		definedWeights := 0

		for i := 0; i < cols; i++ {
			w := weightAt(weights, t, i)
			if !math.IsNaN(w) {
				weightSum += w
				definedWeights++
			}
			term := w * forecasts.Values[t][i]
			if !math.IsNaN(term) {
				weightedSum += term
				definedTerms++
			}
		}

		noPioneer := definedWeights == 0 || weightSum == 0
		if noPioneer {
			pooled.Values[t] = forecasts.RowMean(t)
			continue
		}
		if definedTerms == 0 {
			pooled.Values[t] = math.NaN()
			continue
		}
		pooled.Values[t] = weightedSum
	}

	return pooled
}

func weightAt(weights *panel.Matrix, t, i int) float64 {
	if t >= weights.Rows() || i >= weights.Cols() {
		return math.NaN()
	}
	return weights.Values[t][i]
}
