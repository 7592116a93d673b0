package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// RefData holds the CLI flag for the reference data file: the authored
// sector risk profiles, geography regulatory profiles, and evidence
// requirements the engines consume.
type RefData struct {
	path string
}

// Flags returns CLI flags for reference data configuration
func (r *RefData) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "refdata",
			Usage:       "Path to reference data TOML file (sectors, geographies, requirements)",
			Sources:     cli.EnvVars("ESGRADAR_REFDATA"),
			Destination: &r.path,
		},
	}
}

// Sector is the TOML shape of one sector risk profile
type Sector struct {
	Code          string       `toml:"code"`
	Environmental []RiskFactor `toml:"environmental"`
	Social        []RiskFactor `toml:"social"`
	Governance    []RiskFactor `toml:"governance"`
	Regulations   []Regulation `toml:"regulation"`
}

// RiskFactor is the TOML shape of one authored risk factor
type RiskFactor struct {
	Category           string   `toml:"category"`
	Severity           string   `toml:"severity"`
	Description        string   `toml:"description"`
	Indicators         []string `toml:"indicators"`
	RegulatoryTriggers []string `toml:"regulatory_triggers"`
}

// Geography is the TOML shape of one geography regulatory profile
type Geography struct {
	Code                string       `toml:"code"`
	Intensity           Intensity    `toml:"intensity"`
	ActiveRegulations   []Regulation `toml:"active_regulation"`
	UpcomingRegulations []Regulation `toml:"upcoming_regulation"`
}

// Intensity is the per-pillar regulatory strictness of a geography
type Intensity struct {
	Environmental int `toml:"environmental"`
	Social        int `toml:"social"`
	Governance    int `toml:"governance"`
}

// Regulation is the TOML shape of one authored regulatory exposure. The
// regulatory pillar scores exclusively from these entries, so a sector or
// geography without them contributes no regulatory pressure.
type Regulation struct {
	Name           string   `toml:"name"`
	Region         string   `toml:"region"`
	Applicability  string   `toml:"applicability"`
	Pressure       string   `toml:"pressure"`
	Deadline       string   `toml:"deadline"`
	Requirements   []string `toml:"requirements"`
	EvidenceNeeded []string `toml:"evidence_needed"`
}

// Requirement is the TOML shape of one evidence requirement
type Requirement struct {
	ID            string    `toml:"id"`
	Regulation    string    `toml:"regulation"`
	Requirement   string    `toml:"requirement"`
	Category      string    `toml:"category"`
	EvidenceTypes []string  `toml:"evidence_types"`
	Mandatory     bool      `toml:"mandatory"`
	Frequency     string    `toml:"frequency"`
	AppliesTo     AppliesTo `toml:"applies_to"`
}

// AppliesTo filters a requirement by sector and geography
type AppliesTo struct {
	Sectors     []string `toml:"sectors"`
	Geographies []string `toml:"geographies"`
}

// RefDataFile is the root of the reference data TOML document
type RefDataFile struct {
	Sectors      []Sector      `toml:"sector"`
	Geographies  []Geography   `toml:"geography"`
	Requirements []Requirement `toml:"requirement"`
}

// Validate checks the Sector entry
func (s *Sector) Validate() error {
	if s.Code == "" {
		return goerr.Wrap(ErrMissingCode, "sector code is required")
	}
	for _, factors := range [][]RiskFactor{s.Environmental, s.Social, s.Governance} {
		for _, f := range factors {
			if _, err := types.ParseFactorSeverity(f.Severity); err != nil {
				return goerr.Wrap(err, "invalid risk factor severity", goerr.V(SectorCodeKey, s.Code))
			}
		}
	}
	for _, r := range s.Regulations {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid sector regulation", goerr.V(SectorCodeKey, s.Code))
		}
	}
	return nil
}

// Validate checks the Regulation entry
func (r *Regulation) Validate() error {
	if r.Name == "" {
		return goerr.Wrap(ErrMissingCode, "regulation name is required")
	}
	if _, err := types.ParsePressureLevel(r.Pressure); err != nil {
		return goerr.Wrap(err, "invalid regulation pressure", goerr.V(RegulationNameKey, r.Name))
	}
	if r.Applicability != "" {
		if _, err := types.ParseApplicability(r.Applicability); err != nil {
			return goerr.Wrap(err, "invalid regulation applicability", goerr.V(RegulationNameKey, r.Name))
		}
	}
	return nil
}

// Validate checks the Geography entry
func (g *Geography) Validate() error {
	if g.Code == "" {
		return goerr.Wrap(ErrMissingCode, "geography code is required")
	}
	for _, v := range []int{g.Intensity.Environmental, g.Intensity.Social, g.Intensity.Governance} {
		if v < 0 || v > 100 {
			return goerr.Wrap(ErrInvalidConfig, "regulatory intensity must be between 0 and 100",
				goerr.V(GeographyCodeKey, g.Code), goerr.V("intensity", v))
		}
	}
	for _, regs := range [][]Regulation{g.ActiveRegulations, g.UpcomingRegulations} {
		for _, r := range regs {
			if err := r.Validate(); err != nil {
				return goerr.Wrap(err, "invalid geography regulation", goerr.V(GeographyCodeKey, g.Code))
			}
		}
	}
	return nil
}

// Validate checks the Requirement entry
func (r *Requirement) Validate() error {
	if r.ID == "" {
		return goerr.Wrap(ErrMissingCode, "requirement ID is required")
	}
	if r.Regulation == "" {
		return goerr.Wrap(ErrInvalidConfig, "requirement regulation is required", goerr.V(RequirementIDKey, r.ID))
	}
	if _, err := types.ParsePillar(r.Category); err != nil {
		return goerr.Wrap(err, "invalid requirement category", goerr.V(RequirementIDKey, r.ID))
	}
	if r.Frequency != "" {
		if _, err := types.ParseFrequency(r.Frequency); err != nil {
			return goerr.Wrap(err, "invalid requirement frequency", goerr.V(RequirementIDKey, r.ID))
		}
	}
	return nil
}

// Validate checks the whole document, including cross-entry uniqueness
func (f *RefDataFile) Validate() error {
	sectorCodes := make(map[string]bool)
	for _, s := range f.Sectors {
		if err := s.Validate(); err != nil {
			return goerr.Wrap(err, "invalid sector")
		}
		if sectorCodes[s.Code] {
			return goerr.Wrap(ErrDuplicateSector, "sector codes must be unique", goerr.V(SectorCodeKey, s.Code))
		}
		sectorCodes[s.Code] = true
	}

	geoCodes := make(map[string]bool)
	for _, g := range f.Geographies {
		if err := g.Validate(); err != nil {
			return goerr.Wrap(err, "invalid geography")
		}
		if geoCodes[g.Code] {
			return goerr.Wrap(ErrDuplicateGeography, "geography codes must be unique", goerr.V(GeographyCodeKey, g.Code))
		}
		geoCodes[g.Code] = true
	}

	reqIDs := make(map[string]bool)
	for _, r := range f.Requirements {
		if err := r.Validate(); err != nil {
			return goerr.Wrap(err, "invalid requirement")
		}
		if reqIDs[r.ID] {
			return goerr.Wrap(ErrDuplicateReqID, "requirement IDs must be unique", goerr.V(RequirementIDKey, r.ID))
		}
		reqIDs[r.ID] = true
	}

	return nil
}

// Configure loads, validates, and converts the reference data file. When no
// path is configured the service runs with empty tables and every assessment
// degrades to zero scores.
func (r *RefData) Configure() (*model.ReferenceData, error) {
	if r.path == "" {
		logging.Default().Warn("No reference data configured, assessments will score zero")
		return &model.ReferenceData{}, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "reference data file does not exist",
				goerr.V(ConfigPathKey, r.path))
		}
		return nil, goerr.Wrap(err, "failed to read reference data file", goerr.V(ConfigPathKey, r.path))
	}

	return ParseRefData(data)
}

// ParseRefData parses and validates a reference data TOML document
func ParseRefData(data []byte) (*model.ReferenceData, error) {
	var file RefDataFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse reference data TOML")
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return file.toModel(), nil
}

func (f *RefDataFile) toModel() *model.ReferenceData {
	out := &model.ReferenceData{
		Sectors:     make(map[string]model.SectorProfile, len(f.Sectors)),
		Geographies: make(map[string]model.GeographyProfile, len(f.Geographies)),
	}

	for _, s := range f.Sectors {
		out.Sectors[s.Code] = model.SectorProfile{
			SectorCode:    s.Code,
			Environmental: toFactors(s.Environmental),
			Social:        toFactors(s.Social),
			Governance:    toFactors(s.Governance),
			Regulations:   toRegulations(s.Regulations, ""),
		}
	}

	for _, g := range f.Geographies {
		out.Geographies[g.Code] = model.GeographyProfile{
			Code: g.Code,
			RegulatoryIntensity: model.RegulatoryIntensity{
				Environmental: g.Intensity.Environmental,
				Social:        g.Intensity.Social,
				Governance:    g.Intensity.Governance,
			},
			ActiveRegulations:   toRegulations(g.ActiveRegulations, g.Code),
			UpcomingRegulations: toRegulations(g.UpcomingRegulations, g.Code),
		}
	}

	for _, r := range f.Requirements {
		evidenceTypes := make([]types.EvidenceType, 0, len(r.EvidenceTypes))
		for _, t := range r.EvidenceTypes {
			evidenceTypes = append(evidenceTypes, types.EvidenceType(t).Normalize())
		}
		out.Requirements = append(out.Requirements, model.EvidenceRequirement{
			ID:            r.ID,
			Regulation:    r.Regulation,
			Requirement:   r.Requirement,
			Category:      types.Pillar(r.Category),
			EvidenceTypes: evidenceTypes,
			Mandatory:     r.Mandatory,
			Frequency:     types.Frequency(r.Frequency),
			AppliesTo: model.RequirementApplicability{
				Sectors:     r.AppliesTo.Sectors,
				Geographies: r.AppliesTo.Geographies,
			},
		})
	}

	return out
}

// toRegulations converts authored regulation entries. An omitted region
// inherits the enclosing geography's code; an omitted applicability
// defaults to direct.
func toRegulations(regs []Regulation, defaultRegion string) []model.RegulatoryExposure {
	if len(regs) == 0 {
		return nil
	}

	out := make([]model.RegulatoryExposure, 0, len(regs))
	for _, r := range regs {
		region := r.Region
		if region == "" {
			region = defaultRegion
		}
		applicability := types.Applicability(r.Applicability)
		if applicability == "" {
			applicability = types.ApplicabilityDirect
		}
		out = append(out, model.RegulatoryExposure{
			Regulation:     r.Name,
			Region:         region,
			Applicability:  applicability,
			Pressure:       types.PressureLevel(r.Pressure),
			Deadline:       r.Deadline,
			Requirements:   r.Requirements,
			EvidenceNeeded: r.EvidenceNeeded,
		})
	}
	return out
}

func toFactors(factors []RiskFactor) []model.RiskFactor {
	out := make([]model.RiskFactor, 0, len(factors))
	for _, f := range factors {
		out = append(out, model.RiskFactor{
			Category:           f.Category,
			Severity:           types.FactorSeverity(f.Severity),
			Description:        f.Description,
			Indicators:         f.Indicators,
			RegulatoryTriggers: f.RegulatoryTriggers,
		})
	}
	return out
}
