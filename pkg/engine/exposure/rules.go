package exposure

import (
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// RegulatoryRule maps a geography (and optionally a sector subset) to a
// regulation template. The mapping is a declarative policy table: adding a
// jurisdiction is a data change, not a new code path.
type RegulatoryRule struct {
	Geography string
	Sectors   []string // empty means any sector
	Template  model.RegulatoryExposure
}

func (r RegulatoryRule) matches(sector, geography string) bool {
	if r.Geography != geography {
		return false
	}
	if len(r.Sectors) == 0 {
		return true
	}
	for _, s := range r.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in regulatory policy table
func DefaultRules() []RegulatoryRule {
	return []RegulatoryRule{
		{
			Geography: "EU",
			Template: model.RegulatoryExposure{
				Regulation:    "CSRD",
				Region:        "EU",
				Applicability: types.ApplicabilityDirect,
				Pressure:      types.PressureHigh,
				Requirements: []string{
					"Double materiality assessment",
					"Sustainability reporting per ESRS",
				},
				EvidenceNeeded: []string{
					"sustainability report",
					"materiality assessment",
				},
			},
		},
		{
			Geography: "EU",
			Sectors:   []string{"A", "C"},
			Template: model.RegulatoryExposure{
				Regulation:    "EUDR",
				Region:        "EU",
				Applicability: types.ApplicabilityUpstream,
				Pressure:      types.PressureCritical,
				Requirements: []string{
					"Deforestation-free supply chain due diligence",
					"Geolocation of production plots",
				},
				EvidenceNeeded: []string{
					"due diligence statement",
					"supplier geolocation data",
				},
			},
		},
		{
			Geography: "UK",
			Template: model.RegulatoryExposure{
				Regulation:    "UK Modern Slavery Act",
				Region:        "UK",
				Applicability: types.ApplicabilityDirect,
				Pressure:      types.PressureMedium,
				Requirements: []string{
					"Annual slavery and human trafficking statement",
				},
				EvidenceNeeded: []string{
					"modern slavery statement",
				},
			},
		},
		{
			Geography: "US",
			Template: model.RegulatoryExposure{
				Regulation:    "SEC Climate Disclosure",
				Region:        "US",
				Applicability: types.ApplicabilityDirect,
				Pressure:      types.PressureHigh,
				Requirements: []string{
					"Climate-related risk disclosure in annual filings",
					"Scope 1 and 2 GHG emissions reporting",
				},
				EvidenceNeeded: []string{
					"emissions inventory",
					"climate risk disclosure",
				},
			},
		},
	}
}

// MapRegulatoryExposure returns the known regulations applicable to the
// given sector and geographies per the engine's rule table. Supply chain
// tier depth is accepted for signature parity with the assessment input but
// does not change which rules fire: depth amplification must be visible in
// the supplied data, not hidden in a coefficient.
func (e *Engine) MapRegulatoryExposure(sector string, geographies []string, supplyChainTiers int) []model.RegulatoryExposure {
	_ = supplyChainTiers

	var out []model.RegulatoryExposure
	for _, geo := range geographies {
		for _, rule := range e.rules {
			if rule.matches(sector, geo) {
				out = append(out, rule.Template)
			}
		}
	}
	return out
}
