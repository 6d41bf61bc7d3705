package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/cli/config"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type roiOutput struct {
	Profile        *model.RiskProfile         `json:"profile"`
	Calculations   []*model.ROICalculation    `json:"calculations"`
	Optimal        *model.ROICalculation      `json:"optimal"`
	Criterion      types.Criterion            `json:"criterion"`
	Recommendation *model.ROICalculation      `json:"recommendation"`
	Combined       *model.CombinedROI         `json:"combined,omitempty"`
	CostBenefit    []*model.CostBenefit       `json:"costBenefit"`
	Target         *model.EffectivenessTarget `json:"target,omitempty"`
}

func cmdROI() *cli.Command {
	var wbCfg config.WorkbookConfig
	var profileID string
	var investmentIDs []string
	var criterionName string
	var target float64
	var format string

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
			Usage:       "Investment IDs to evaluate (default: all in the workbook)",
			Destination: &investmentIDs,
		},
		&cli.StringFlag{
			Name:        "criterion",
			Usage:       "Recommendation criterion (roi, payback, risk_reduction)",
			Value:       string(types.CriterionROI),
			Destination: &criterionName,
		},
		&cli.FloatFlag{
			Name:        "target",
			Usage:       "Target risk score; reports the effectiveness needed to reach it",
			Destination: &target,
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
		Name:  "roi",
		Usage: "Evaluate the return of security investments against one profile",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			criterion, err := types.ParseCriterion(criterionName)
			if err != nil {
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
			ids := make([]model.InvestmentID, len(investmentIDs))
			for i, v := range investmentIDs {
				ids[i] = model.InvestmentID(v)
			}

			out := &roiOutput{Criterion: criterion}
			if out.Profile, err = uc.Profile.GetProfile(ctx, id); err != nil {
				return goerr.Wrap(err, "failed to get profile")
			}
			if out.Calculations, err = uc.Analysis.ROI(ctx, id, ids); err != nil {
				return goerr.Wrap(err, "failed to calculate ROI")
			}
			if out.Optimal, err = uc.Analysis.Optimal(ctx, id, ids); err != nil {
				return goerr.Wrap(err, "failed to find optimal investment")
			}
			if out.Recommendation, err = uc.Analysis.Recommend(ctx, id, ids, criterion); err != nil {
				return goerr.Wrap(err, "failed to recommend investment")
			}
			if out.CostBenefit, err = uc.Analysis.CostBenefit(ctx, id, ids); err != nil {
				return goerr.Wrap(err, "failed to build cost-benefit table")
			}
			if len(out.Calculations) > 1 {
				if out.Combined, err = uc.Analysis.Combined(ctx, id, ids); err != nil {
					return goerr.Wrap(err, "failed to combine investments")
				}
			}
			if target > 0 {
				if out.Target, err = uc.Analysis.RequiredEffectiveness(ctx, id, target); err != nil {
					return goerr.Wrap(err, "failed to search required effectiveness")
				}
			}

			w := c.Root().Writer
			if format == formatJSON {
				return writeJSON(w, out)
			}

			renderProfile(w, out.Profile)
			renderROI(w, out.Calculations)
			renderCostBenefit(w, out.CostBenefit)
			renderCombined(w, out.Combined)
			heading(w, "Recommendation")
			renderRecommendation(w, "Optimal", out.Optimal)
			renderRecommendation(w, fmt.Sprintf("By %s", criterion), out.Recommendation)
			renderTarget(w, out.Target)
			return nil
		},
	}
}
