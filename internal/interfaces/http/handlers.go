package http

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sawpanic/pioneerpool/internal/domain/panel"
	"github.com/sawpanic/pioneerpool/internal/domain/pioneer"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "pioneerpool",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleWeights computes pioneer weights for a posted forecast panel.
func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	var payload PanelPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid panel JSON: "+err.Error())
		return
	}

	timer := s.metrics.StartComputeTimer("weights")
	weights := pioneer.ComputeWeights(payload.ToMatrix())
	timer.Stop()

	pioneerPeriods, fallbackPeriods := countOutcomes(weights)
	s.metrics.RecordOutcome("http", pioneerPeriods, fallbackPeriods)

	writeJSON(w, http.StatusOK, WeightsResponse{
		Weights:        PayloadFromMatrix(weights),
		PioneerPeriods: pioneerPeriods,
	})
}

// handlePool computes (or accepts) weights and returns the pooled series.
func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	var req PoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid pool request JSON: "+err.Error())
		return
	}

	forecasts := req.Forecasts.ToMatrix()

	var weights *panel.Matrix
	if req.Weights != nil {
		weights = req.Weights.ToMatrix()
	} else {
		timer := s.metrics.StartComputeTimer("weights")
		weights = pioneer.ComputeWeights(forecasts)
		timer.Stop()
	}

	timer := s.metrics.StartComputeTimer("pool")
	pooled := pioneer.Pool(forecasts, weights)
	timer.Stop()

	pioneerPeriods, fallbackPeriods := countOutcomes(weights)
	s.metrics.RecordOutcome("http", pioneerPeriods, fallbackPeriods)

	writeJSON(w, http.StatusOK, PoolResponse{
		Weights:         PayloadFromMatrix(weights),
		Pooled:          PayloadFromSeries(pooled),
		PioneerPeriods:  pioneerPeriods,
		FallbackPeriods: fallbackPeriods,
	})
}

// handleNotFound returns a JSON 404 for unknown routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeError(w, http.StatusNotFound, "unknown route: "+r.URL.Path)
}

// countOutcomes tallies pioneer versus fallback periods in a weight matrix.
func countOutcomes(weights *panel.Matrix) (pioneerPeriods, fallbackPeriods int) {
	for t := 0; t < weights.Rows(); t++ {
		sum := weights.RowSum(t)
		if math.IsNaN(sum) || sum == 0 {
			fallbackPeriods++
		} else {
			pioneerPeriods++
		}
	}
	return pioneerPeriods, fallbackPeriods
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
