package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return goerr.New("output format must be text or json", goerr.V("format", format))
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

// money formats an amount with two decimals and thousands separators
func money(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

func percent(v float64) string {
	return decimal.NewFromFloat(v * 100).StringFixed(1) + "%"
}

func years(y model.Years) string {
	if y.IsInf() {
		return y.String()
	}
	return decimal.NewFromFloat(float64(y)).StringFixed(2) + "y"
}

// scoreColor bands a 1..10 risk score
func scoreColor(score float64) *color.Color {
	switch {
	case score >= 7:
		return color.New(color.FgRed, color.Bold)
	case score >= 4:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func score(v float64) string {
	return scoreColor(v).Sprint(decimal.NewFromFloat(v).StringFixed(2))
}

func signed(v float64, s string) string {
	if v > 0 {
		return color.GreenString(s)
	}
	if v < 0 {
		return color.RedString(s)
	}
	return s
}

func heading(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w)
	_, _ = color.New(color.Bold, color.Underline).Fprintln(w, title)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderProfile(w io.Writer, p *model.RiskProfile) {
	heading(w, "Profile")
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	_, _ = fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	if p.Category != "" {
		_, _ = fmt.Fprintf(tw, "Category\t%s\n", p.Category)
	}
	_, _ = fmt.Fprintf(tw, "Probability\t%s\n", percent(p.Probability))
	_, _ = fmt.Fprintf(tw, "Impact\t%s\n", money(p.Impact))
	_, _ = fmt.Fprintf(tw, "Expected loss\t%s\n", money(p.ExpectedLoss()))
	_, _ = fmt.Fprintf(tw, "Risk score\t%s\n", score(p.RiskScore))
	_ = tw.Flush()
}

func renderMonteCarlo(w io.Writer, result *usecase.MonteCarloResult) {
	m := result.Metrics
	heading(w, fmt.Sprintf("Monte Carlo (%d iterations)", m.Count))
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "\tMean\tMedian\tStd dev\tMin\tMax")
	_, _ = fmt.Fprintf(tw, "Expected loss\t%s\t%s\t%s\t%s\t%s\n",
		money(m.ExpectedLoss.Mean), money(m.ExpectedLoss.Median), money(m.ExpectedLoss.StdDev),
		money(m.ExpectedLoss.Min), money(m.ExpectedLoss.Max))
	_, _ = fmt.Fprintf(tw, "Probability\t%s\t%s\t%s\t%s\t%s\n",
		percent(m.Probability.Mean), percent(m.Probability.Median), percent(m.Probability.StdDev),
		percent(m.Probability.Min), percent(m.Probability.Max))
	_, _ = fmt.Fprintf(tw, "Impact\t%s\t%s\t%s\t%s\t%s\n",
		money(m.Impact.Mean), money(m.Impact.Median), money(m.Impact.StdDev),
		money(m.Impact.Min), money(m.Impact.Max))
	_ = tw.Flush()

	tw = newTable(w)
	ci := result.ConfidenceInterval
	_, _ = fmt.Fprintf(tw, "Confidence interval (%s)\t%s .. %s\n",
		percent(result.Settings.ConfidenceLevel), money(ci.Low), money(ci.High))
	_, _ = fmt.Fprintf(tw, "VaR (%s)\t%s\n", percent(m.Percentile), money(m.ValueAtRisk))
	_, _ = fmt.Fprintf(tw, "Expected shortfall\t%s\n", money(m.ExpectedShortfall))
	_ = tw.Flush()
}

func renderThreats(w io.Writer, scenarios []*model.ThreatScenario) {
	heading(w, "Threat levels")
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "Level\tProbability\tImpact\tExpected loss\tScore")
	for _, s := range scenarios {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.Level.Title(), percent(s.Result.Probability), money(s.Result.Impact),
			money(s.Result.ExpectedLoss), score(s.Result.RiskScore))
	}
	_ = tw.Flush()
}

func renderROI(w io.Writer, calcs []*model.ROICalculation) {
	heading(w, "Investments")
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tCost\tEffectiveness\tRisk reduction\tNet benefit\tROI\tPayback\tBreakeven")
	for _, c := range calcs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Investment.ID, money(c.Investment.Cost), percent(c.Investment.Effectiveness),
			money(c.RiskReduction), signed(c.NetBenefit, money(c.NetBenefit)),
			signed(c.ROI, decimal.NewFromFloat(c.ROI).StringFixed(1)+"%"),
			years(c.PaybackPeriod), years(c.BreakevenTime))
	}
	_ = tw.Flush()
}

func renderCostBenefit(w io.Writer, rows []*model.CostBenefit) {
	heading(w, "Cost-benefit over lifecycle")
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTotal benefit\tTotal cost\tNet benefit\tRatio")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Investment.ID, money(r.TotalBenefit), money(r.TotalCost),
			signed(r.NetBenefit, money(r.NetBenefit)), decimal.NewFromFloat(r.Ratio).StringFixed(2))
	}
	_ = tw.Flush()
}

func renderRecommendation(w io.Writer, title string, calc *model.ROICalculation) {
	if calc == nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", title, color.YellowString("none"))
		return
	}
	_, _ = fmt.Fprintf(w, "%s: %s (ROI %s)\n", title, calc.Investment.ID,
		signed(calc.ROI, decimal.NewFromFloat(calc.ROI).StringFixed(1)+"%"))
}

func renderCombined(w io.Writer, combined *model.CombinedROI) {
	if combined == nil {
		return
	}
	heading(w, "Combined investment")
	tw := newTable(w)
	ids := make([]string, len(combined.Investments))
	for i, inv := range combined.Investments {
		ids[i] = string(inv.ID)
	}
	_, _ = fmt.Fprintf(tw, "Layers\t%s\n", strings.Join(ids, ", "))
	_, _ = fmt.Fprintf(tw, "Cumulative effectiveness\t%s\n", percent(combined.CumulativeEffectiveness))
	_, _ = fmt.Fprintf(tw, "Annual cost\t%s\n", money(combined.Combined.Cost))
	_, _ = fmt.Fprintf(tw, "ROI\t%s\n", signed(combined.Calculation.ROI, decimal.NewFromFloat(combined.Calculation.ROI).StringFixed(1)+"%"))
	_ = tw.Flush()
}

func renderTarget(w io.Writer, target *model.EffectivenessTarget) {
	if target == nil {
		return
	}
	heading(w, "Target risk score")
	tw := newTable(w)
	_, _ = fmt.Fprintf(tw, "Target\t%s\n", decimal.NewFromFloat(target.TargetRiskScore).StringFixed(2))
	_, _ = fmt.Fprintf(tw, "Current\t%s\n", score(target.CurrentRiskScore))
	if !target.Feasible {
		_, _ = fmt.Fprintf(tw, "Required effectiveness\t%s\n", color.RedString("not reachable"))
	} else {
		_, _ = fmt.Fprintf(tw, "Required effectiveness\t%s\n", percent(target.RequiredEffectiveness))
		_, _ = fmt.Fprintf(tw, "Mitigated score\t%s\n", score(target.MitigatedRiskScore))
		_, _ = fmt.Fprintf(tw, "Estimated investment\t%s\n", money(target.EstimatedInvestment))
	}
	_ = tw.Flush()
}
