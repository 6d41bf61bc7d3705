package usecase

import (
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// DefaultPortfolioConcurrency bounds concurrent Monte Carlo runs of Portfolio
const DefaultPortfolioConcurrency = 4

type UseCases struct {
	repo                 interfaces.Repository
	settings             model.SimulationSettings
	reportWriter         interfaces.ReportWriter
	portfolioConcurrency int

	Profile    *ProfileUseCase
	Investment *InvestmentUseCase
	Analysis   *AnalysisUseCase
	Report     *ReportUseCase
}

type Option func(*UseCases)

// WithSimulationSettings overrides the analysis defaults. Zero fields keep
// the built-in defaults.
func WithSimulationSettings(settings model.SimulationSettings) Option {
	return func(uc *UseCases) {
		uc.settings = uc.settings.Override(settings)
	}
}

// WithReportWriter enables report export
func WithReportWriter(w interfaces.ReportWriter) Option {
	return func(uc *UseCases) {
		uc.reportWriter = w
	}
}

// WithPortfolioConcurrency sets how many profiles Portfolio simulates at once
func WithPortfolioConcurrency(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.portfolioConcurrency = n
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:                 repo,
		settings:             model.DefaultSimulationSettings(),
		portfolioConcurrency: DefaultPortfolioConcurrency,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Profile = NewProfileUseCase(repo, uc.settings.ImpactCap)
	uc.Investment = NewInvestmentUseCase(repo)
	uc.Analysis = NewAnalysisUseCase(repo, uc.settings, uc.portfolioConcurrency)
	uc.Report = NewReportUseCase(uc.Analysis, uc.reportWriter)

	return uc
}

// Settings returns the effective analysis defaults
func (uc *UseCases) Settings() model.SimulationSettings {
	return uc.settings
}
