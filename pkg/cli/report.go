package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var wbCfg config.WorkbookConfig
	var exportCfg config.Export
	var profileID string
	var investmentIDs []string
	var iterations int
	var seed uint64
	var target float64

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Aliases:     []string{"p"},
			Usage:       "Profile ID in the workbook",
			Required:    true,
			Destination: &profileID,
		},
		&cli.StringSliceFlag{
			Name:        "investment",
			Aliases:     []string{"i"},
			Usage:       "Investment IDs to include (default: all in the workbook)",
			Destination: &investmentIDs,
		},
		&cli.IntFlag{
			Name:        "iterations",
			Aliases:     []string{"n"},
			Usage:       "Monte Carlo iterations (overrides the workbook)",
			Destination: &iterations,
		},
		&cli.Uint64Flag{
			Name:        "seed",
			Usage:       "Random seed for reproducible runs (overrides the workbook)",
			Destination: &seed,
		},
		&cli.FloatFlag{
			Name:        "target",
			Usage:       "Target risk score for the required effectiveness section",
			Destination: &target,
		},
	}
	flags = append(flags, wbCfg.Flags(true)...)
	flags = append(flags, exportCfg.Flags()...)

	return &cli.Command{
		Name:  "report",
		Usage: "Build a risk report for one profile and write it as JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			wb, err := wbCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workbook")
			}

			writer, err := exportCfg.Configure(ctx)
			if err != nil {
				return err
			}
			var opts []usecase.Option
			if writer != nil {
				defer safe.Close(ctx, writer)
				opts = append(opts, usecase.WithReportWriter(writer))
			}

			uc, err := workbookUseCases(ctx, wb, opts...)
			if err != nil {
				return err
			}

			input := usecase.ReportInput{
				MonteCarloInput: usecase.MonteCarloInput{
					SimulationSettings: model.SimulationSettings{Iterations: iterations, Seed: seed},
				},
				TargetRiskScore: target,
			}
			for _, id := range investmentIDs {
				input.InvestmentIDs = append(input.InvestmentIDs, model.InvestmentID(id))
			}

			report, err := uc.Report.Build(ctx, model.ProfileID(profileID), input)
			if err != nil {
				return goerr.Wrap(err, "failed to build report")
			}

			if writer == nil {
				return writeJSON(c.Root().Writer, report)
			}

			location, err := uc.Report.Export(ctx, report)
			if err != nil {
				return err
			}
			logging.Default().Info("Report written", "location", location)
			return nil
		},
	}
}
