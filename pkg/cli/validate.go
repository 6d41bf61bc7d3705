package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var wbCfg config.WorkbookConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a workbook file",
		Flags:   wbCfg.Flags(true),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			wb, err := wbCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "workbook validation failed")
			}

			settings := wb.Settings()
			logger.Info("Workbook validation passed",
				"path", wbCfg.Path(),
				"profile_count", len(wb.Profiles),
				"investment_count", len(wb.Investments),
				"iterations", settings.Iterations,
				"seed", settings.Seed,
			)
			for _, p := range wb.RiskProfiles() {
				logger.Info("Profile validated",
					"id", p.ID,
					"name", p.Name,
					"expected_loss", p.ExpectedLoss(),
				)
			}
			return nil
		},
	}
}
