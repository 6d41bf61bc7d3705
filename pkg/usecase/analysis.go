package usecase

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/service/roi"
	"github.com/secmon-lab/riskquant/pkg/service/simulation"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultHistogramBins is used when a Monte Carlo request does not ask for a bin count
	DefaultHistogramBins = 20
	// MaxSensitivitySteps bounds a single parameter sweep
	MaxSensitivitySteps = 1000
	// MaxHistogramBins bounds the histogram size of one request
	MaxHistogramBins = 1000
)

type AnalysisUseCase struct {
	repo        interfaces.Repository
	settings    model.SimulationSettings
	concurrency int
}

func NewAnalysisUseCase(repo interfaces.Repository, settings model.SimulationSettings, concurrency int) *AnalysisUseCase {
	return &AnalysisUseCase{
		repo:        repo,
		settings:    settings,
		concurrency: max(concurrency, 1),
	}
}

// MonteCarloInput overrides the configured defaults for one run. Zero fields
// keep the defaults.
type MonteCarloInput struct {
	model.SimulationSettings
	Bins int `json:"bins"`
	// IncludeResults keeps every simulated scenario in the output
	IncludeResults bool `json:"includeResults"`
}

// MonteCarloResult is one Monte Carlo run with its derived statistics
type MonteCarloResult struct {
	Profile            *model.RiskProfile        `json:"profile"`
	Settings           model.SimulationSettings  `json:"settings"`
	ConfidenceInterval model.Interval            `json:"confidenceInterval"`
	Metrics            *model.RiskMetrics        `json:"metrics"`
	Histogram          []model.HistogramBin      `json:"histogram"`
	Results            []*model.SimulationResult `json:"results,omitempty"`
}

func (uc *AnalysisUseCase) getProfile(ctx context.Context, id model.ProfileID) (*model.RiskProfile, error) {
	profile, err := uc.repo.Profile().Get(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "failed to get profile", ProfileIDKey, id)
	}
	return profile, nil
}

// getInvestments returns the investments of ids in that order, or every
// stored investment when ids is empty
func (uc *AnalysisUseCase) getInvestments(ctx context.Context, ids []model.InvestmentID) ([]*model.SecurityInvestment, error) {
	if len(ids) == 0 {
		investments, err := uc.repo.Investment().List(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list investments")
		}
		return investments, nil
	}

	investments, err := uc.repo.Investment().GetMany(ctx, ids)
	if err != nil {
		return nil, repositoryError(err, "failed to get investments", InvestmentIDKey, ids)
	}
	return investments, nil
}

func (uc *AnalysisUseCase) settingsFor(input model.SimulationSettings) (model.SimulationSettings, error) {
	settings := uc.settings.Override(input)
	if err := settings.Validate(); err != nil {
		return settings, invalidInput(err, "invalid simulation settings")
	}
	return settings, nil
}

func simulationOptions(settings model.SimulationSettings, seedOffset uint64) []simulation.Option {
	probabilityVariance, impactVariance := settings.Variances()
	opts := []simulation.Option{
		simulation.WithIterations(settings.Iterations),
		simulation.WithVariance(probabilityVariance, impactVariance),
		simulation.WithImpactCap(settings.ImpactCap),
	}
	if settings.Seed != 0 {
		opts = append(opts, simulation.WithSampler(simulation.NewSampler(settings.Seed+seedOffset)))
	}
	return opts
}

func (uc *AnalysisUseCase) runMonteCarlo(profile *model.RiskProfile, settings model.SimulationSettings, bins int, seedOffset uint64) *MonteCarloResult {
	results := simulation.MonteCarlo(profile, simulationOptions(settings, seedOffset)...)
	results = simulation.ConfidenceIntervals(results, settings.ConfidenceLevel)

	return &MonteCarloResult{
		Profile:            profile,
		Settings:           settings,
		ConfidenceInterval: simulation.ExpectedLossInterval(results, settings.ConfidenceLevel),
		Metrics:            simulation.Metrics(results, settings.VaRPercentile),
		Histogram:          simulation.Histogram(results, bins),
		Results:            results,
	}
}

// monteCarloSettings resolves the settings and histogram size of a request
func (uc *AnalysisUseCase) monteCarloSettings(input MonteCarloInput) (model.SimulationSettings, int, error) {
	settings, err := uc.settingsFor(input.SimulationSettings)
	if err != nil {
		return settings, 0, err
	}
	bins := input.Bins
	if bins == 0 {
		bins = DefaultHistogramBins
	}
	if bins < 0 || bins > MaxHistogramBins {
		return settings, 0, goerr.Wrap(ErrInvalidInput, "histogram bins out of range", goerr.V("bins", bins))
	}
	return settings, bins, nil
}

// MonteCarlo simulates the profile and summarises the batch
func (uc *AnalysisUseCase) MonteCarlo(ctx context.Context, id model.ProfileID, input MonteCarloInput) (*MonteCarloResult, error) {
	settings, bins, err := uc.monteCarloSettings(input)
	if err != nil {
		return nil, err
	}

	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	result := uc.runMonteCarlo(profile, settings, bins, 0)
	if !input.IncludeResults {
		result.Results = nil
	}
	logging.From(ctx).Debug("monte carlo finished",
		"profile_id", id,
		"iterations", settings.Iterations,
		"var", result.Metrics.ValueAtRisk,
	)
	return result, nil
}

func (uc *AnalysisUseCase) WhatIf(ctx context.Context, id model.ProfileID, changes []model.WhatIfChange) ([]*model.SimulationResult, error) {
	for _, change := range changes {
		if !change.Parameter.IsValid() {
			return nil, goerr.Wrap(ErrInvalidInput, "unknown what-if parameter", goerr.V(ParameterKey, change.Parameter))
		}
		if math.IsNaN(change.NewValue) || math.IsInf(change.NewValue, 0) {
			return nil, goerr.Wrap(ErrInvalidInput, "what-if value must be finite", goerr.V(ParameterKey, change.Parameter))
		}
	}

	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return simulation.WhatIf(profile, changes, simulation.WithImpactCap(uc.settings.ImpactCap)), nil
}

func (uc *AnalysisUseCase) Sensitivity(ctx context.Context, id model.ProfileID, params []model.SensitivityParameter) ([]*model.SimulationResult, error) {
	for _, param := range params {
		if !param.Name.IsValid() {
			return nil, goerr.Wrap(ErrInvalidInput, "unknown sensitivity parameter", goerr.V(ParameterKey, param.Name))
		}
		if param.Steps < 0 || param.Steps > MaxSensitivitySteps {
			return nil, goerr.Wrap(ErrInvalidInput, "sensitivity steps out of range",
				goerr.V(ParameterKey, param.Name), goerr.V("steps", param.Steps))
		}
		for _, v := range []float64{param.Range.Low, param.Range.High} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, goerr.Wrap(ErrInvalidInput, "sensitivity range must be finite", goerr.V(ParameterKey, param.Name))
			}
		}
	}

	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return simulation.Sensitivity(profile, params, simulation.WithImpactCap(uc.settings.ImpactCap)), nil
}

// Threat applies one threat level, or every level when level is empty
func (uc *AnalysisUseCase) Threat(ctx context.Context, id model.ProfileID, level types.ThreatLevel) ([]*model.ThreatScenario, error) {
	if level != "" && !level.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "unknown threat level", goerr.V(ThreatLevelKey, level))
	}

	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	return threatScenarios(profile, level, uc.settings.ImpactCap), nil
}

func threatScenarios(profile *model.RiskProfile, level types.ThreatLevel, impactCap float64) []*model.ThreatScenario {
	opt := simulation.WithImpactCap(impactCap)
	if level == "" {
		return simulation.ThreatScenarios(profile, opt)
	}
	return []*model.ThreatScenario{simulation.ThreatScenario(profile, level, opt)}
}

func (uc *AnalysisUseCase) load(ctx context.Context, id model.ProfileID, ids []model.InvestmentID) (*model.RiskProfile, []*model.SecurityInvestment, error) {
	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	investments, err := uc.getInvestments(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return profile, investments, nil
}

// ROI evaluates investments against the profile. An empty ids evaluates every
// stored investment.
func (uc *AnalysisUseCase) ROI(ctx context.Context, id model.ProfileID, ids []model.InvestmentID) ([]*model.ROICalculation, error) {
	profile, investments, err := uc.load(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	return roi.CalculateAll(profile, investments), nil
}

// Optimal returns nil when no investment has a positive ROI
func (uc *AnalysisUseCase) Optimal(ctx context.Context, id model.ProfileID, ids []model.InvestmentID) (*model.ROICalculation, error) {
	profile, investments, err := uc.load(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	return roi.Optimal(profile, investments), nil
}

func (uc *AnalysisUseCase) Combined(ctx context.Context, id model.ProfileID, ids []model.InvestmentID) (*model.CombinedROI, error) {
	profile, investments, err := uc.load(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	if len(investments) == 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "combined ROI needs at least one investment", goerr.V(ProfileIDKey, id))
	}
	return roi.Combined(profile, investments), nil
}

func (uc *AnalysisUseCase) CostBenefit(ctx context.Context, id model.ProfileID, ids []model.InvestmentID) ([]*model.CostBenefit, error) {
	profile, investments, err := uc.load(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	return roi.CostBenefit(profile, investments), nil
}

// Recommend returns nil when there is no investment to choose from
func (uc *AnalysisUseCase) Recommend(ctx context.Context, id model.ProfileID, ids []model.InvestmentID, criterion types.Criterion) (*model.ROICalculation, error) {
	if !criterion.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "unknown recommendation criterion", goerr.V(CriterionKey, criterion))
	}
	profile, investments, err := uc.load(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	return roi.Recommend(profile, investments, criterion), nil
}

func validateTarget(target float64) error {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return goerr.Wrap(ErrInvalidInput, "target risk score must be finite", goerr.V("target", target))
	}
	return nil
}

func (uc *AnalysisUseCase) RequiredEffectiveness(ctx context.Context, id model.ProfileID, target float64) (*model.EffectivenessTarget, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	profile, err := uc.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return roi.RequiredEffectiveness(profile, target, roi.WithImpactCap(uc.settings.ImpactCap)), nil
}

// Portfolio runs a Monte Carlo for every stored profile, at most
// uc.concurrency at a time, and orders the entries by Value-at-Risk, highest
// first. Per-run results are not kept.
func (uc *AnalysisUseCase) Portfolio(ctx context.Context, input MonteCarloInput) ([]*model.PortfolioEntry, error) {
	settings, err := uc.settingsFor(input.SimulationSettings)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.repo.Profile().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}

	entries := make([]*model.PortfolioEntry, len(profiles))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)
	for i, profile := range profiles {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return goerr.Wrap(err, "portfolio analysis cancelled")
			}
			// Each profile gets its own seed so that a seeded portfolio is reproducible
			result := uc.runMonteCarlo(profile, settings, 0, uint64(i))
			entries[i] = &model.PortfolioEntry{
				Profile: profile,
				Metrics: result.Metrics,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b *model.PortfolioEntry) int {
		return cmp.Compare(b.Metrics.ValueAtRisk, a.Metrics.ValueAtRisk)
	})

	logging.From(ctx).Info("portfolio analysed", "profiles", len(entries), "iterations", settings.Iterations)
	return entries, nil
}
