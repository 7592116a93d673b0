package model

import "github.com/sustain-lab/esgradar/pkg/domain/types"

// SectorProfile holds the authored risk factors for one sector, one list per
// ESG pillar, plus the regulations that apply to the sector as a whole.
type SectorProfile struct {
	SectorCode    string               `json:"sectorCode"`
	Environmental []RiskFactor         `json:"environmental"`
	Social        []RiskFactor         `json:"social"`
	Governance    []RiskFactor         `json:"governance"`
	Regulations   []RegulatoryExposure `json:"regulations,omitempty"`
}

// Factors returns the risk factor list for the given ESG pillar.
// The regulatory pillar carries no authored factors.
func (p *SectorProfile) Factors(pillar types.Pillar) []RiskFactor {
	if p == nil {
		return nil
	}
	switch pillar {
	case types.PillarEnvironmental:
		return p.Environmental
	case types.PillarSocial:
		return p.Social
	case types.PillarGovernance:
		return p.Governance
	default:
		return nil
	}
}

// RegulatoryIntensity is the baseline regulatory strictness of a geography,
// 0-100 per ESG pillar.
type RegulatoryIntensity struct {
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Governance    int `json:"governance"`
}

// GeographyProfile holds the regulatory landscape of one region or country
type GeographyProfile struct {
	Code                string               `json:"code"`
	RegulatoryIntensity RegulatoryIntensity  `json:"regulatoryIntensity"`
	ActiveRegulations   []RegulatoryExposure `json:"activeRegulations,omitempty"`
	UpcomingRegulations []RegulatoryExposure `json:"upcomingRegulations,omitempty"`
}
