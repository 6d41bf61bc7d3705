package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type simulateOutput struct {
	MonteCarlo *usecase.MonteCarloResult `json:"monteCarlo"`
	Threats    []*model.ThreatScenario   `json:"threats"`
}

func cmdSimulate() *cli.Command {
	var wbCfg config.WorkbookConfig
	var profileID string
	var iterations int
	var seed uint64
	var bins int
	var format string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Aliases:     []string{"p"},
			Usage:       "Profile ID in the workbook",
			Required:    true,
			Destination: &profileID,
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
		&cli.IntFlag{
			Name:        "bins",
			Usage:       "Histogram bins",
			Value:       usecase.DefaultHistogramBins,
			Destination: &bins,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text or json)",
			Value:       formatText,
			Destination: &format,
		},
	}
	flags = append(flags, wbCfg.Flags(true)...)

	return &cli.Command{
		Name:    "simulate",
		Aliases: []string{"sim"},
		Usage:   "Run a Monte Carlo simulation and threat level scenarios for one profile",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			wb, err := wbCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workbook")
			}
			uc, err := workbookUseCases(ctx, wb)
			if err != nil {
				return err
			}

			id := model.ProfileID(profileID)
			input := usecase.MonteCarloInput{
				SimulationSettings: model.SimulationSettings{Iterations: iterations, Seed: seed},
				Bins:               bins,
			}
			result, err := uc.Analysis.MonteCarlo(ctx, id, input)
			if err != nil {
				return goerr.Wrap(err, "failed to run monte carlo simulation")
			}
			threats, err := uc.Analysis.Threat(ctx, id, "")
			if err != nil {
				return goerr.Wrap(err, "failed to evaluate threat levels")
			}

			w := c.Root().Writer
			if format == formatJSON {
				return writeJSON(w, &simulateOutput{MonteCarlo: result, Threats: threats})
			}

			renderProfile(w, result.Profile)
			renderMonteCarlo(w, result)
			renderThreats(w, threats)
			return nil
		},
	}
}
