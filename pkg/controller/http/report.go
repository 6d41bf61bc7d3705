package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	mc, err := simulationQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	input := usecase.ReportInput{MonteCarloInput: mc}

	q := r.URL.Query()
	if v := q.Get("target"); v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "target must be a number", goerr.V("target", v)))
			return
		}
		input.TargetRiskScore = target
	}
	if v := q.Get("investments"); v != "" {
		for _, id := range strings.Split(v, ",") {
			input.InvestmentIDs = append(input.InvestmentIDs, model.InvestmentID(strings.TrimSpace(id)))
		}
	}

	report, err := s.uc.Report.Build(r.Context(), profileID(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
	var input usecase.ReportInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	ticket, err := s.uc.Report.ExportAsync(r.Context(), profileID(r), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, ticket)
}
