package http

import (
	"math"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
)

// PanelPayload is the JSON wire form of a forecast or weight matrix.
// Undefined entries travel as null, since JSON has no NaN literal.
type PanelPayload struct {
	Periods []string     `json:"periods"`
	Experts []string     `json:"experts"`
	Values  [][]*float64 `json:"values"`
}

// SeriesPayload is the JSON wire form of a pooled series.
type SeriesPayload struct {
	Periods []string   `json:"periods"`
	Values  []*float64 `json:"values"`
}

// WeightsResponse is returned by POST /v1/weights.
type WeightsResponse struct {
	Weights        PanelPayload `json:"weights"`
	PioneerPeriods int          `json:"pioneer_periods"`
}

// PoolRequest is the body of POST /v1/pool. Weights are optional; when
// omitted they are computed from the forecasts.
type PoolRequest struct {
	Forecasts PanelPayload  `json:"forecasts"`
	Weights   *PanelPayload `json:"weights,omitempty"`
}

// PoolResponse is returned by POST /v1/pool.
type PoolResponse struct {
	Weights         PanelPayload  `json:"weights"`
	Pooled          SeriesPayload `json:"pooled"`
	PioneerPeriods  int           `json:"pioneer_periods"`
	FallbackPeriods int           `json:"fallback_periods"`
}

// ToMatrix converts the wire form to a panel matrix, mapping null to NaN.
func (p PanelPayload) ToMatrix() *panel.Matrix {
	m := panel.New(p.Periods, p.Experts)
	for t := 0; t < len(p.Values) && t < m.Rows(); t++ {
		for i := 0; i < len(p.Values[t]) && i < m.Cols(); i++ {
			if v := p.Values[t][i]; v != nil {
				m.Values[t][i] = *v
			}
		}
	}
	return m
}

// PayloadFromMatrix converts a panel matrix to the wire form, mapping NaN to null.
func PayloadFromMatrix(m *panel.Matrix) PanelPayload {
	p := PanelPayload{
		Periods: m.Periods,
		Experts: m.Experts,
		Values:  make([][]*float64, m.Rows()),
	}
	for t := range p.Values {
		row := make([]*float64, m.Cols())
		for i := range row {
			if v := m.Values[t][i]; !math.IsNaN(v) {
				value := v
				row[i] = &value
			}
		}
		p.Values[t] = row
	}
	return p
}

// PayloadFromSeries converts a series to the wire form, mapping NaN to null.
func PayloadFromSeries(s *panel.Series) SeriesPayload {
	p := SeriesPayload{
		Periods: s.Periods,
		Values:  make([]*float64, len(s.Values)),
	}
	for t, v := range s.Values {
		if !math.IsNaN(v) {
			value := v
			p.Values[t] = &value
		}
	}
	return p
}
