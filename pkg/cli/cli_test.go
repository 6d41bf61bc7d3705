package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/cli"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

const workbook = `
[simulation]
iterations = 500
seed = 42

[[profile]]
id = "payment-breach"
name = "Payment gateway breach"
category = "data-breach"
probability = 0.35
impact = 750000

[[investment]]
id = "waf"
name = "Web application firewall"
cost = 50000
effectiveness = 0.3
implementation_time = 2
lifecycle = 3

[[investment]]
id = "mfa"
name = "Multi-factor authentication"
cost = 20000
effectiveness = 0.5
implementation_time = 1
lifecycle = 3
`

func writeWorkbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workbook.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(), append([]string{"riskquant", "--log-level", "error"}, args...), &buf)
	return buf.String(), err
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid workbook", func(t *testing.T) {
		_, err := runCLI(t, "validate", "--workbook", writeWorkbook(t, workbook))
		gt.NoError(t, err)
	})

	t.Run("invalid workbook", func(t *testing.T) {
		path := writeWorkbook(t, `
[[profile]]
id = "INVALID_ID"
name = "Bad"
probability = 0.1
impact = 1
`)
		_, err := runCLI(t, "validate", "--workbook", path)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidWorkbook)).True()
	})

	t.Run("missing workbook", func(t *testing.T) {
		_, err := runCLI(t, "validate", "--workbook", filepath.Join(t.TempDir(), "none.toml"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrWorkbookNotFound)).True()
	})
}

func TestSimulateCommand(t *testing.T) {
	path := writeWorkbook(t, workbook)

	t.Run("json output is reproducible with a seed", func(t *testing.T) {
		first, err := runCLI(t, "simulate", "-w", path, "-p", "payment-breach", "--format", "json", "--bins", "5")
		gt.NoError(t, err).Required()
		second, err := runCLI(t, "simulate", "-w", path, "-p", "payment-breach", "--format", "json", "--bins", "5")
		gt.NoError(t, err).Required()

		var a, b struct {
			MonteCarlo struct {
				Metrics   model.RiskMetrics    `json:"metrics"`
				Histogram []model.HistogramBin `json:"histogram"`
			} `json:"monteCarlo"`
			Threats []*model.ThreatScenario `json:"threats"`
		}
		gt.NoError(t, json.Unmarshal([]byte(first), &a)).Required()
		gt.NoError(t, json.Unmarshal([]byte(second), &b)).Required()

		gt.Value(t, a.MonteCarlo.Metrics.Count).Equal(500)
		gt.A(t, a.MonteCarlo.Histogram).Length(5)
		gt.A(t, a.Threats).Length(4)
		gt.Value(t, a.MonteCarlo.Metrics.ValueAtRisk).Equal(b.MonteCarlo.Metrics.ValueAtRisk)
	})

	t.Run("text output", func(t *testing.T) {
		out, err := runCLI(t, "simulate", "-w", path, "-p", "payment-breach", "-n", "100")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Monte Carlo (100 iterations)")
		gt.String(t, out).Contains("Threat levels")
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := runCLI(t, "simulate", "-w", path, "-p", "missing")
		gt.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := runCLI(t, "simulate", "-w", path, "-p", "payment-breach", "--format", "yaml")
		gt.Error(t, err)
	})
}

func TestROICommand(t *testing.T) {
	path := writeWorkbook(t, workbook)

	t.Run("json output", func(t *testing.T) {
		out, err := runCLI(t, "roi", "-w", path, "-p", "payment-breach", "--format", "json", "--target", "2")
		gt.NoError(t, err).Required()

		var result struct {
			Calculations []*model.ROICalculation   `json:"calculations"`
			Optimal      *model.ROICalculation     `json:"optimal"`
			Combined     *model.CombinedROI        `json:"combined"`
			Target       *model.EffectivenessTarget `json:"target"`
		}
		gt.NoError(t, json.Unmarshal([]byte(out), &result)).Required()
		gt.A(t, result.Calculations).Length(2)
		gt.Value(t, result.Optimal.Investment.ID).Equal(model.InvestmentID("mfa"))
		gt.Value(t, result.Combined).NotNil()
		gt.Value(t, result.Target).NotNil()
	})

	t.Run("text output for one investment", func(t *testing.T) {
		out, err := runCLI(t, "roi", "-w", path, "-p", "payment-breach", "-i", "waf")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("waf")
		gt.String(t, out).Contains("Optimal")
	})

	t.Run("bad criterion", func(t *testing.T) {
		_, err := runCLI(t, "roi", "-w", path, "-p", "payment-breach", "--criterion", "vibes")
		gt.Error(t, err)
	})
}

func TestReportCommand(t *testing.T) {
	path := writeWorkbook(t, workbook)

	t.Run("stdout", func(t *testing.T) {
		out, err := runCLI(t, "report", "-w", path, "-p", "payment-breach", "-n", "100")
		gt.NoError(t, err).Required()

		var report model.RiskReport
		gt.NoError(t, json.Unmarshal([]byte(out), &report)).Required()
		gt.Value(t, report.Iterations).Equal(100)
		gt.A(t, report.Investments).Length(2)
	})

	t.Run("directory output", func(t *testing.T) {
		dir := t.TempDir()
		_, err := runCLI(t, "report", "-w", path, "-p", "payment-breach", "-n", "100", "--output", dir)
		gt.NoError(t, err).Required()

		entries, err := os.ReadDir(dir)
		gt.NoError(t, err).Required()
		gt.A(t, entries).Length(1)
	})
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1234.567, "1,234.57"},
		{750000, "750,000.00"},
		{-1234567.8, "-1,234,567.80"},
	}
	for _, tt := range tests {
		gt.Value(t, cli.Money(tt.in)).Equal(tt.want)
	}
}
