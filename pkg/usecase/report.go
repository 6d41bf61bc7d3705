package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/service/roi"
	"github.com/secmon-lab/riskquant/pkg/utils/async"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

// ReportInput selects what goes into a report. Empty InvestmentIDs means all
// stored investments; a zero TargetRiskScore skips the effectiveness search.
type ReportInput struct {
	MonteCarloInput
	InvestmentIDs   []model.InvestmentID `json:"investmentIds"`
	TargetRiskScore float64              `json:"targetRiskScore"`
}

type ReportUseCase struct {
	analysis *AnalysisUseCase
	writer   interfaces.ReportWriter
}

func NewReportUseCase(analysis *AnalysisUseCase, writer interfaces.ReportWriter) *ReportUseCase {
	return &ReportUseCase{
		analysis: analysis,
		writer:   writer,
	}
}

// Build assembles the full analysis of one profile. The profile and the
// investments are read once and every section is scored with the same
// settings, including any ImpactCap override of input.
func (uc *ReportUseCase) Build(ctx context.Context, id model.ProfileID, input ReportInput) (*model.RiskReport, error) {
	settings, bins, err := uc.analysis.monteCarloSettings(input.MonteCarloInput)
	if err != nil {
		return nil, err
	}
	if err := validateTarget(input.TargetRiskScore); err != nil {
		return nil, err
	}

	profile, investments, err := uc.analysis.load(ctx, id, input.InvestmentIDs)
	if err != nil {
		return nil, err
	}
	profile = profile.Clone()
	profile.RiskScore = model.RiskScoreWithCap(profile.Probability, profile.Impact, settings.ImpactCap)

	mc := uc.analysis.runMonteCarlo(profile, settings, bins, 0)
	ci := mc.ConfidenceInterval
	report := &model.RiskReport{
		ID:                 model.NewReportID(),
		GeneratedAt:        time.Now().UTC(),
		Profile:            profile,
		Iterations:         settings.Iterations,
		ConfidenceLevel:    settings.ConfidenceLevel,
		ImpactCap:          settings.ImpactCap,
		ConfidenceInterval: &ci,
		Metrics:            mc.Metrics,
		Histogram:          mc.Histogram,
		Threats:            threatScenarios(profile, "", settings.ImpactCap),
		Investments:        roi.CalculateAll(profile, investments),
		Optimal:            roi.Optimal(profile, investments),
		Combined:           roi.Combined(profile, investments),
		CostBenefit:        roi.CostBenefit(profile, investments),
	}

	if input.TargetRiskScore != 0 {
		report.Target = roi.RequiredEffectiveness(profile, input.TargetRiskScore, roi.WithImpactCap(settings.ImpactCap))
	}

	return report, nil
}

// ReportName is the object name a report is exported under
func ReportName(report *model.RiskReport) string {
	return fmt.Sprintf("riskreport-%s-%s.json", report.Profile.ID, report.ID)
}

// Export writes report as indented JSON and returns where it was written
func (uc *ReportUseCase) Export(ctx context.Context, report *model.RiskReport) (string, error) {
	if uc.writer == nil {
		return "", goerr.Wrap(ErrExportDisabled, "cannot export report", goerr.V("report_id", report.ID))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal report", goerr.V("report_id", report.ID))
	}

	location, err := uc.writer.Write(ctx, ReportName(report), data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to write report",
			goerr.V("report_id", report.ID), goerr.V(ProfileIDKey, report.Profile.ID))
	}

	logging.From(ctx).Info("report exported",
		"report_id", report.ID,
		"profile_id", report.Profile.ID,
		"location", location,
	)
	return location, nil
}

// ExportTicket identifies a report whose export runs in the background
type ExportTicket struct {
	ReportID  model.ReportID  `json:"reportId"`
	ProfileID model.ProfileID `json:"profileId"`
	Name      string          `json:"name"`

	done <-chan struct{}
}

// Done is closed when the background export has finished, successfully or not
func (t *ExportTicket) Done() <-chan struct{} {
	return t.done
}

// ExportAsync builds the report synchronously, so that a bad request fails
// immediately, and writes it in the background
func (uc *ReportUseCase) ExportAsync(ctx context.Context, id model.ProfileID, input ReportInput) (*ExportTicket, error) {
	if uc.writer == nil {
		return nil, goerr.Wrap(ErrExportDisabled, "cannot export report", goerr.V(ProfileIDKey, id))
	}

	report, err := uc.Build(ctx, id, input)
	if err != nil {
		return nil, err
	}

	done := async.Dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.Export(ctx, report)
		return err
	})

	return &ExportTicket{
		ReportID:  report.ID,
		ProfileID: id,
		Name:      ReportName(report),
		done:      done,
	}, nil
}
