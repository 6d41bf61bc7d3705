package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskquant/pkg/controller/http"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var requestTimeout time.Duration
	var concurrency int
	var repoCfg config.Repository
	var wbCfg config.WorkbookConfig
	var exportCfg config.Export

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKQUANT_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "request-timeout",
			Usage:       "Maximum duration of one API request (0 disables the limit)",
			Value:       time.Minute,
			Sources:     cli.EnvVars("RISKQUANT_REQUEST_TIMEOUT"),
			Destination: &requestTimeout,
		},
		&cli.IntFlag{
			Name:        "portfolio-concurrency",
			Usage:       "Number of profiles simulated in parallel by the portfolio endpoint",
			Value:       usecase.DefaultPortfolioConcurrency,
			Sources:     cli.EnvVars("RISKQUANT_PORTFOLIO_CONCURRENCY"),
			Destination: &concurrency,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, wbCfg.Flags(false)...)
	flags = append(flags, exportCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			wb, err := wbCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load workbook")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := []usecase.Option{
				usecase.WithPortfolioConcurrency(concurrency),
			}
			if wb != nil {
				ucOpts = append(ucOpts, usecase.WithSimulationSettings(wb.Settings()))
			}

			writer, err := exportCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if writer != nil {
				defer safe.Close(ctx, writer)
				ucOpts = append(ucOpts, usecase.WithReportWriter(writer))
			} else {
				logging.Default().Info("Report output not configured, export endpoint is disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			if wb != nil {
				if _, err := uc.Seed(ctx, wb.RiskProfiles(), wb.SecurityInvestments()); err != nil {
					return goerr.Wrap(err, "failed to seed repository from workbook", goerr.V(config.WorkbookPathKey, wbCfg.Path()))
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithRequestTimeout(requestTimeout)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "settings", uc.Settings())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
