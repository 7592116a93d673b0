package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/repository/memory"
	"github.com/sustain-lab/esgradar/pkg/usecase"
)

func testReferenceData() *model.ReferenceData {
	return &model.ReferenceData{
		Sectors: map[string]model.SectorProfile{
			"C": {
				SectorCode: "C",
				Environmental: []model.RiskFactor{
					{Category: "emissions", Severity: types.FactorSeverityHigh, Description: "High scope 1 emissions"},
					{Category: "water", Severity: types.FactorSeverityMedium, Description: "Water-intensive processes"},
				},
				Social: []model.RiskFactor{
					{Category: "labor", Severity: types.FactorSeverityMedium, Description: "Supply chain labor conditions"},
				},
				Governance: []model.RiskFactor{
					{Category: "transparency", Severity: types.FactorSeverityLow, Description: "Disclosure maturity varies"},
				},
			},
		},
		Geographies: map[string]model.GeographyProfile{
			"EU": {
				Code: "EU",
				RegulatoryIntensity: model.RegulatoryIntensity{
					Environmental: 90, Social: 80, Governance: 85,
				},
				ActiveRegulations: []model.RegulatoryExposure{
					{Regulation: "CSRD", Region: "EU", Applicability: types.ApplicabilityDirect, Pressure: types.PressureCritical},
					{Regulation: "EUDR", Region: "EU", Applicability: types.ApplicabilityUpstream, Pressure: types.PressureHigh},
				},
			},
			"US": {
				Code: "US",
				RegulatoryIntensity: model.RegulatoryIntensity{
					Environmental: 40, Social: 35, Governance: 50,
				},
				UpcomingRegulations: []model.RegulatoryExposure{
					{Regulation: "SEC Climate Disclosure", Region: "US", Applicability: types.ApplicabilityDirect, Pressure: types.PressureMedium},
				},
			},
		},
		Requirements: []model.EvidenceRequirement{
			{
				ID:          "req-csrd-1",
				Regulation:  "CSRD",
				Requirement: "Double materiality assessment",
				Category:    types.PillarEnvironmental,
				Mandatory:   true,
				Frequency:   types.FrequencyAnnual,
				AppliesTo:   model.RequirementApplicability{Geographies: []string{"EU"}},
			},
			{
				ID:          "req-eudr-1",
				Regulation:  "EUDR",
				Requirement: "Supply chain due diligence statement",
				Category:    types.PillarEnvironmental,
				Mandatory:   true,
				AppliesTo:   model.RequirementApplicability{Sectors: []string{"A", "C"}, Geographies: []string{"EU"}},
			},
		},
	}
}

func TestSaveConfigSanitizesAndValidates(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	t.Run("valid config is sanitized before save", func(t *testing.T) {
		saved, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
			SectorCode:       " C ",
			Geographies:      []string{"EU", " EU", "US"},
			SupplyChainTiers: 2,
		})
		gt.NoError(t, err).Required()
		gt.S(t, saved.SectorCode).Equal("C")
		gt.A(t, saved.Geographies).Length(2)
		gt.V(t, saved.OrganizationID).Equal("acme")
	})

	t.Run("invalid config reports all problems at once", func(t *testing.T) {
		_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
			SupplyChainTiers: 9,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidConfig)
		gt.S(t, err.Error()).Contains("sector code is required")
		gt.S(t, err.Error()).Contains("at least one geography is required")
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		_, err := uc.Assessment.SaveConfig(ctx, "acme", nil)
		gt.Error(t, err).Is(usecase.ErrInvalidConfig)
	})

	t.Run("tier depth is clamped not rejected after sanitize", func(t *testing.T) {
		saved, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
			SectorCode:       "C",
			Geographies:      []string{"EU"},
			SupplyChainTiers: 99,
		})
		gt.NoError(t, err).Required()
		gt.Number(t, saved.SupplyChainTiers).Equal(model.MaxSupplyChainTiers)
	})
}

func TestRunAssessment(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
		SectorCode:       "C",
		Geographies:      []string{"EU", "US"},
		SupplyChainTiers: 3,
	})
	gt.NoError(t, err).Required()

	t.Run("assessment uses stored config and reference data", func(t *testing.T) {
		output, err := uc.Assessment.Run(ctx, "acme", nil)
		gt.NoError(t, err).Required()

		gt.V(t, output.OrganizationID).Equal("acme")

		env := output.OverallExposure[types.PillarEnvironmental]
		// one high (30) + one medium (15) factor
		gt.Number(t, env.Score).Equal(45)

		reg := output.OverallExposure[types.PillarRegulatory]
		gt.B(t, reg.Score > 0).True()
		gt.A(t, output.RegulatoryPressure).Length(2)
	})

	t.Run("footprint hotspots pass through", func(t *testing.T) {
		output, err := uc.Assessment.Run(ctx, "acme", &model.SupplyChainFootprint{
			Hotspots: []model.RiskHotspot{
				{Geography: "BR", Sector: "A", RiskLevel: "high", Factors: []string{"deforestation"}},
			},
		})
		gt.NoError(t, err).Required()
		gt.A(t, output.RiskHotspots).Length(1)
		gt.S(t, output.RiskHotspots[0].Geography).Equal("BR")
	})

	t.Run("missing config is an error", func(t *testing.T) {
		_, err := uc.Assessment.Run(ctx, "unknown-org", nil)
		gt.Error(t, err)
	})
}

func TestRegulations(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
		SectorCode:       "C",
		Geographies:      []string{"EU"},
		SupplyChainTiers: 2,
	})
	gt.NoError(t, err).Required()

	regs, err := uc.Assessment.Regulations(ctx, "acme")
	gt.NoError(t, err).Required()

	names := make(map[string]bool, len(regs))
	for _, reg := range regs {
		names[reg.Regulation] = true
	}
	gt.B(t, names["CSRD"]).True()
	gt.B(t, names["EUDR"]).True()
}
