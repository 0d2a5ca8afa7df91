// Package panel provides the forecast panel data model: a T×N matrix of
// expert forecasts indexed by ordered period labels and named experts.
// Undefined entries are represented as NaN and propagate through every
// derived operation rather than raising errors.
package panel

import "math"

// Matrix is a T-period by N-expert panel of real values. Periods are in
// chronological order; Values[t][i] is expert Experts[i] at period Periods[t].
// NaN marks an undefined entry. Operations never mutate the receiver.
type Matrix struct {
	Periods []string    `json:"periods"`
	Experts []string    `json:"experts"`
	Values  [][]float64 `json:"values"`
}

// Series is a length-T labeled sequence of real values (NaN = undefined).
type Series struct {
	Periods []string  `json:"periods"`
	Values  []float64 `json:"values"`
}

// New creates a matrix of the given shape with every entry undefined.
func New(periods, experts []string) *Matrix {
	values := make([][]float64, len(periods))
	for t := range values {
		row := make([]float64, len(experts))
		for i := range row {
			row[i] = math.NaN()
		}
		values[t] = row
	}
	return &Matrix{Periods: periods, Experts: experts, Values: values}
}

// Rows returns the number of periods T.
func (m *Matrix) Rows() int { return len(m.Periods) }

// Cols returns the number of experts N.
func (m *Matrix) Cols() int { return len(m.Experts) }

// Clone returns a deep copy sharing no backing storage with the receiver.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Periods: append([]string(nil), m.Periods...),
		Experts: append([]string(nil), m.Experts...),
		Values:  make([][]float64, len(m.Values)),
	}
	for t, row := range m.Values {
		out.Values[t] = append([]float64(nil), row...)
	}
	return out
}

// LeaveOneOutMeans computes, for each expert i and period t, the mean of all
// other experts' defined values at t. The entry is NaN when fewer than one
// other expert is defined (always the case for N=1). A single running
// sum/count per row replaces the N separate drop-one-column passes; the
// semantics are identical.
func (m *Matrix) LeaveOneOutMeans() *Matrix {
	out := New(m.Periods, m.Experts)
	for t, row := range m.Values {
		sum := 0.0
		count := 0
		for _, v := range row {
			if !math.IsNaN(v) {
				sum += v
				count++
			}
		}
		for i, v := range row {
			others := count
			total := sum
			if !math.IsNaN(v) {
				others--
				total -= v
			}
			if others >= 1 {
				out.Values[t][i] = total / float64(others)
			}
		}
	}
	return out
}

// Diff returns one-period first differences down each column. Row 0 is
// undefined (no predecessor), as is any entry with an undefined operand.
func (m *Matrix) Diff() *Matrix {
	out := New(m.Periods, m.Experts)
	for t := 1; t < len(m.Values); t++ {
		for i := range m.Values[t] {
			out.Values[t][i] = m.Values[t][i] - m.Values[t-1][i]
		}
	}
	return out
}

// AbsDistance returns the elementwise absolute difference |m - other|.
// Shapes are assumed equal; NaN operands propagate.
func (m *Matrix) AbsDistance(other *Matrix) *Matrix {
	out := New(m.Periods, m.Experts)
	for t := range m.Values {
		for i := range m.Values[t] {
			out.Values[t][i] = math.Abs(m.Values[t][i] - other.Values[t][i])
		}
	}
	return out
}

// RowSum returns the sum of defined entries in row t, and NaN when no entry
// in the row is defined.
func (m *Matrix) RowSum(t int) float64 {
	sum := 0.0
	defined := 0
	for _, v := range m.Values[t] {
		if !math.IsNaN(v) {
			sum += v
			defined++
		}
	}
	if defined == 0 {
		return math.NaN()
	}
	return sum
}

// RowMean returns the mean of defined entries in row t, skipping undefined
// ones, and NaN when no entry is defined.
func (m *Matrix) RowMean(t int) float64 {
	sum := 0.0
	defined := 0
	for _, v := range m.Values[t] {
		if !math.IsNaN(v) {
			sum += v
			defined++
		}
	}
	if defined == 0 {
		return math.NaN()
	}
	return sum / float64(defined)
}
