package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

// workbookUseCases loads a workbook into an in-memory repository so that the
// offline commands share the code paths of the server
func workbookUseCases(ctx context.Context, wb *config.Workbook, opts ...usecase.Option) (*usecase.UseCases, error) {
	opts = append([]usecase.Option{usecase.WithSimulationSettings(wb.Settings())}, opts...)
	uc := usecase.New(memory.New(), opts...)

	if _, err := uc.Seed(ctx, wb.RiskProfiles(), wb.SecurityInvestments()); err != nil {
		return nil, goerr.Wrap(err, "failed to load workbook records")
	}
	return uc, nil
}
