package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// WorkbookConfig holds the CLI flag pointing at a workbook file
type WorkbookConfig struct {
	path     string
	required bool
}

// Flags returns CLI flags for the workbook. When required is true the flag
// must be given.
func (w *WorkbookConfig) Flags(required bool) []cli.Flag {
	w.required = required
	usage := "Path to a TOML workbook with simulation settings, profiles and investments"
	if !required {
		usage += " (optional, seeds the repository)"
	}
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workbook",
			Aliases:     []string{"w"},
			Usage:       usage,
			Required:    required,
			Sources:     cli.EnvVars("RISKQUANT_WORKBOOK"),
			Destination: &w.path,
		},
	}
}

// Path returns the configured workbook path
func (w *WorkbookConfig) Path() string {
	return w.path
}

// Configure loads the workbook. It returns nil without error when the flag
// is optional and unset.
func (w *WorkbookConfig) Configure() (*Workbook, error) {
	if w.path == "" {
		if w.required {
			return nil, goerr.Wrap(ErrWorkbookNotFound, "workbook path is required")
		}
		return nil, nil
	}
	return LoadWorkbook(w.path)
}

// Workbook is the domain configuration of an analysis: simulation defaults,
// risk profiles and candidate investments
type Workbook struct {
	Simulation  model.SimulationSettings `toml:"simulation"`
	Profiles    []ProfileEntry           `toml:"profile"`
	Investments []InvestmentEntry        `toml:"investment"`
}

// ProfileEntry is one [[profile]] table
type ProfileEntry struct {
	ID            string  `toml:"id"`
	Name          string  `toml:"name"`
	Description   string  `toml:"description"`
	Category      string  `toml:"category"`
	Probability   float64 `toml:"probability"`
	Impact        float64 `toml:"impact"`
	ThreatActor   string  `toml:"threat_actor"`
	Vulnerability string  `toml:"vulnerability"`
	BusinessUnit  string  `toml:"business_unit"`
}

// ToModel converts the entry to a RiskProfile. RiskScore is left for the
// use case to derive.
func (e *ProfileEntry) ToModel() *model.RiskProfile {
	return &model.RiskProfile{
		ID:            model.ProfileID(e.ID),
		Name:          e.Name,
		Description:   e.Description,
		Category:      types.CategoryID(e.Category),
		Probability:   e.Probability,
		Impact:        e.Impact,
		ThreatActor:   e.ThreatActor,
		Vulnerability: e.Vulnerability,
		BusinessUnit:  e.BusinessUnit,
	}
}

// InvestmentEntry is one [[investment]] table
type InvestmentEntry struct {
	ID                 string  `toml:"id"`
	Name               string  `toml:"name"`
	Cost               float64 `toml:"cost"`
	Effectiveness      float64 `toml:"effectiveness"`
	ImplementationTime float64 `toml:"implementation_time"`
	Lifecycle          float64 `toml:"lifecycle"`
}

// ToModel converts the entry to a SecurityInvestment
func (e *InvestmentEntry) ToModel() *model.SecurityInvestment {
	return &model.SecurityInvestment{
		ID:                 model.InvestmentID(e.ID),
		Name:               e.Name,
		Cost:               e.Cost,
		Effectiveness:      e.Effectiveness,
		ImplementationTime: e.ImplementationTime,
		Lifecycle:          e.Lifecycle,
	}
}

// LoadWorkbook reads, parses and validates the workbook at path
func LoadWorkbook(path string) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrWorkbookNotFound, "workbook does not exist", goerr.V(WorkbookPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read workbook", goerr.V(WorkbookPathKey, path))
	}

	wb, err := ParseWorkbook(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load workbook", goerr.V(WorkbookPathKey, path))
	}
	return wb, nil
}

// ParseWorkbook decodes and validates TOML workbook data. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func ParseWorkbook(data []byte) (*Workbook, error) {
	var wb Workbook
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wb); err != nil {
		return nil, goerr.Wrap(ErrInvalidWorkbook, "failed to parse workbook", goerr.V("reason", err.Error()))
	}

	if err := wb.Validate(); err != nil {
		return nil, err
	}
	return &wb, nil
}

// Validate checks identifiers, uniqueness and the ranges of every entry
func (wb *Workbook) Validate() error {
	if err := wb.Settings().Validate(); err != nil {
		return goerr.Wrap(ErrInvalidSimulation, "invalid [simulation] table", goerr.V("reason", err.Error()))
	}

	profileIDs := make(map[string]bool, len(wb.Profiles))
	for i, entry := range wb.Profiles {
		if err := types.ValidateSlug("profile", entry.ID); err != nil {
			return goerr.Wrap(ErrInvalidWorkbook, "invalid profile ID",
				goerr.V(ProfileIndexKey, i), goerr.V(ProfileIDKey, entry.ID), goerr.V("reason", err.Error()))
		}
		if profileIDs[entry.ID] {
			return goerr.Wrap(ErrDuplicateProfileID, "profile ID is used twice",
				goerr.V(ProfileIndexKey, i), goerr.V(ProfileIDKey, entry.ID))
		}
		profileIDs[entry.ID] = true

		if err := entry.ToModel().Validate(); err != nil {
			return goerr.Wrap(ErrInvalidWorkbook, "invalid profile",
				goerr.V(ProfileIndexKey, i), goerr.V(ProfileIDKey, entry.ID), goerr.V("reason", err.Error()))
		}
	}

	investmentIDs := make(map[string]bool, len(wb.Investments))
	for i, entry := range wb.Investments {
		if err := types.ValidateSlug("investment", entry.ID); err != nil {
			return goerr.Wrap(ErrInvalidWorkbook, "invalid investment ID",
				goerr.V(InvestIndexKey, i), goerr.V(InvestmentIDKey, entry.ID), goerr.V("reason", err.Error()))
		}
		if investmentIDs[entry.ID] {
			return goerr.Wrap(ErrDuplicateInvestmentID, "investment ID is used twice",
				goerr.V(InvestIndexKey, i), goerr.V(InvestmentIDKey, entry.ID))
		}
		investmentIDs[entry.ID] = true

		if err := entry.ToModel().Validate(); err != nil {
			return goerr.Wrap(ErrInvalidWorkbook, "invalid investment",
				goerr.V(InvestIndexKey, i), goerr.V(InvestmentIDKey, entry.ID), goerr.V("reason", err.Error()))
		}
	}

	return nil
}

// Settings returns the [simulation] table with defaults filled in
func (wb *Workbook) Settings() model.SimulationSettings {
	return wb.Simulation.WithDefaults()
}

// RiskProfiles converts every [[profile]] table
func (wb *Workbook) RiskProfiles() []*model.RiskProfile {
	out := make([]*model.RiskProfile, len(wb.Profiles))
	for i := range wb.Profiles {
		out[i] = wb.Profiles[i].ToModel()
	}
	return out
}

// SecurityInvestments converts every [[investment]] table
func (wb *Workbook) SecurityInvestments() []*model.SecurityInvestment {
	out := make([]*model.SecurityInvestment, len(wb.Investments))
	for i := range wb.Investments {
		out[i] = wb.Investments[i].ToModel()
	}
	return out
}
