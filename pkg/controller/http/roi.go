package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

type investmentSelection struct {
	// InvestmentIDs limits the evaluation; empty means every stored investment
	InvestmentIDs []model.InvestmentID `json:"investmentIds"`
	Criterion     string               `json:"criterion,omitempty"`
}

func readSelection(w http.ResponseWriter, r *http.Request) (*investmentSelection, bool) {
	var sel investmentSelection
	if err := decodeJSON(r, &sel); err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return &sel, true
}

func (s *Server) roi(w http.ResponseWriter, r *http.Request) {
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}
	calcs, err := s.uc.Analysis.ROI(r.Context(), profileID(r), sel.InvestmentIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"calculations": calcs})
}

func (s *Server) optimal(w http.ResponseWriter, r *http.Request) {
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}
	calc, err := s.uc.Analysis.Optimal(r.Context(), profileID(r), sel.InvestmentIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// null recommendation means no investment has a positive ROI
	writeJSON(w, r, http.StatusOK, map[string]any{"recommendation": calc})
}

func (s *Server) combined(w http.ResponseWriter, r *http.Request) {
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}
	combined, err := s.uc.Analysis.Combined(r.Context(), profileID(r), sel.InvestmentIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, combined)
}

func (s *Server) costBenefit(w http.ResponseWriter, r *http.Request) {
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}
	rows, err := s.uc.Analysis.CostBenefit(r.Context(), profileID(r), sel.InvestmentIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request) {
	sel, ok := readSelection(w, r)
	if !ok {
		return
	}
	criterion, err := types.ParseCriterion(sel.Criterion)
	if err != nil {
		writeError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "unknown criterion", goerr.V(usecase.CriterionKey, sel.Criterion)))
		return
	}

	calc, err := s.uc.Analysis.Recommend(r.Context(), profileID(r), sel.InvestmentIDs, criterion)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"criterion": criterion, "recommendation": calc})
}

func (s *Server) target(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "score must be a number", goerr.V("score", raw)))
		return
	}

	target, err := s.uc.Analysis.RequiredEffectiveness(r.Context(), profileID(r), score)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, target)
}
