package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

func (s *Server) monteCarlo(w http.ResponseWriter, r *http.Request) {
	var input usecase.MonteCarloInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.uc.Analysis.MonteCarlo(r.Context(), profileID(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) whatIf(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Changes []model.WhatIfChange `json:"changes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	results, err := s.uc.Analysis.WhatIf(r.Context(), profileID(r), req.Changes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) sensitivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Parameters []model.SensitivityParameter `json:"parameters"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	results, err := s.uc.Analysis.Sensitivity(r.Context(), profileID(r), req.Parameters)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) threat(w http.ResponseWriter, r *http.Request) {
	var level types.ThreatLevel
	if raw := chi.URLParam(r, "level"); raw != "" {
		parsed, err := types.ParseThreatLevel(raw)
		if err != nil {
			writeError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "unknown threat level", goerr.V(usecase.ThreatLevelKey, raw)))
			return
		}
		level = parsed
	}

	scenarios, err := s.uc.Analysis.Threat(r.Context(), profileID(r), level)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"scenarios": scenarios})
}

// simulationQuery reads Monte Carlo overrides from query parameters
func simulationQuery(r *http.Request) (usecase.MonteCarloInput, error) {
	var input usecase.MonteCarloInput
	q := r.URL.Query()

	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, goerr.Wrap(usecase.ErrInvalidInput, "iterations must be an integer", goerr.V("iterations", v))
		}
		input.Iterations = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return input, goerr.Wrap(usecase.ErrInvalidInput, "seed must be an unsigned integer", goerr.V("seed", v))
		}
		input.Seed = n
	}
	if v := q.Get("bins"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return input, goerr.Wrap(usecase.ErrInvalidInput, "bins must be an integer", goerr.V("bins", v))
		}
		input.Bins = n
	}
	return input, nil
}

func (s *Server) portfolio(w http.ResponseWriter, r *http.Request) {
	input, err := simulationQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := s.uc.Analysis.Portfolio(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"entries": entries})
}
