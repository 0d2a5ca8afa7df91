package panel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, experts []string, values [][]float64) *Matrix {
	t.Helper()
	periods := make([]string, len(values))
	for i := range periods {
		periods[i] = string(rune('a' + i))
	}
	m := New(periods, experts)
	for ti, row := range values {
		require.Len(t, row, len(experts))
		copy(m.Values[ti], row)
	}
	return m
}

func TestLeaveOneOutMeans_Basic(t *testing.T) {
	m := mustMatrix(t, []string{"E1", "E2", "E3"}, [][]float64{
		{10, 10, 10},
		{11, 10, 9},
	})

	loo := m.LeaveOneOutMeans()

	assert.InDelta(t, 10.0, loo.Values[0][0], 1e-12)
	assert.InDelta(t, 9.5, loo.Values[1][0], 1e-12) // (10+9)/2
	assert.InDelta(t, 10.0, loo.Values[1][1], 1e-12) // (11+9)/2
	assert.InDelta(t, 10.5, loo.Values[1][2], 1e-12) // (11+10)/2
}

func TestLeaveOneOutMeans_SkipsUndefined(t *testing.T) {
	nan := math.NaN()
	m := mustMatrix(t, []string{"E1", "E2", "E3"}, [][]float64{
		{4, nan, 8},
	})

	loo := m.LeaveOneOutMeans()

	// E1's others: only E3 is defined.
	assert.InDelta(t, 8.0, loo.Values[0][0], 1e-12)
	// E2 is undefined itself; mean of the two defined others.
	assert.InDelta(t, 6.0, loo.Values[0][1], 1e-12)
	assert.InDelta(t, 4.0, loo.Values[0][2], 1e-12)
}

func TestLeaveOneOutMeans_SingleExpert(t *testing.T) {
	m := mustMatrix(t, []string{"only"}, [][]float64{{1}, {2}, {3}})

	loo := m.LeaveOneOutMeans()

	for ti := 0; ti < m.Rows(); ti++ {
		assert.True(t, math.IsNaN(loo.Values[ti][0]), "period %d", ti)
	}
}

func TestDiff(t *testing.T) {
	nan := math.NaN()
	m := mustMatrix(t, []string{"E1", "E2"}, [][]float64{
		{1, 5},
		{3, nan},
		{6, 2},
	})

	d := m.Diff()

	assert.True(t, math.IsNaN(d.Values[0][0]))
	assert.True(t, math.IsNaN(d.Values[0][1]))
	assert.InDelta(t, 2.0, d.Values[1][0], 1e-12)
	assert.True(t, math.IsNaN(d.Values[1][1]))
	assert.InDelta(t, 3.0, d.Values[2][0], 1e-12)
	assert.True(t, math.IsNaN(d.Values[2][1]), "diff against undefined predecessor")
}

func TestRowSumAndMean(t *testing.T) {
	nan := math.NaN()
	m := mustMatrix(t, []string{"E1", "E2", "E3"}, [][]float64{
		{1, 2, 3},
		{nan, 4, nan},
		{nan, nan, nan},
	})

	assert.InDelta(t, 6.0, m.RowSum(0), 1e-12)
	assert.InDelta(t, 2.0, m.RowMean(0), 1e-12)
	assert.InDelta(t, 4.0, m.RowSum(1), 1e-12)
	assert.InDelta(t, 4.0, m.RowMean(1), 1e-12)
	assert.True(t, math.IsNaN(m.RowSum(2)))
	assert.True(t, math.IsNaN(m.RowMean(2)))
}

func TestClone_Independent(t *testing.T) {
	m := mustMatrix(t, []string{"E1"}, [][]float64{{1}, {2}})
	c := m.Clone()
	c.Values[0][0] = 99

	assert.InDelta(t, 1.0, m.Values[0][0], 1e-12)
}
