package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

func investmentID(r *http.Request) model.InvestmentID {
	return model.InvestmentID(chi.URLParam(r, "investmentID"))
}

func (s *Server) listInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := s.uc.Investment.ListInvestments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"investments": investments})
}

func (s *Server) createInvestment(w http.ResponseWriter, r *http.Request) {
	var investment model.SecurityInvestment
	if err := decodeJSON(r, &investment); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.Investment.CreateInvestment(r.Context(), &investment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getInvestment(w http.ResponseWriter, r *http.Request) {
	investment, err := s.uc.Investment.GetInvestment(r.Context(), investmentID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, investment)
}

func (s *Server) updateInvestment(w http.ResponseWriter, r *http.Request) {
	var investment model.SecurityInvestment
	if err := decodeJSON(r, &investment); err != nil {
		writeError(w, r, err)
		return
	}
	investment.ID = investmentID(r)

	updated, err := s.uc.Investment.UpdateInvestment(r.Context(), &investment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Investment.DeleteInvestment(r.Context(), investmentID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
