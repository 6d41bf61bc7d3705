package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/service/storage"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Export holds CLI flags for the report destination
type Export struct {
	output string
}

// Flags returns CLI flags for report export
func (e *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Report destination: a local directory or gs://bucket/prefix",
			Sources:     cli.EnvVars("RISKQUANT_OUTPUT"),
			Destination: &e.output,
		},
	}
}

// Output returns the configured destination
func (e *Export) Output() string {
	return e.output
}

// Configure returns the report writer, or nil when no destination is set.
// The caller is responsible for calling Close() on the returned writer.
func (e *Export) Configure(ctx context.Context) (storage.Writer, error) {
	if e.output == "" {
		return nil, nil
	}

	w, err := storage.New(ctx, e.output)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize report writer", goerr.V("output", e.output))
	}
	logging.Default().Info("Report export enabled", "output", e.output, "gcs", storage.IsGCS(e.output))
	return w, nil
}
