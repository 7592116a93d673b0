package model

import "github.com/sustain-lab/esgradar/pkg/domain/types"

// RiskFactor is one identified hazard within a sector and pillar.
// Reference data authored by a domain expert; never mutated at runtime.
type RiskFactor struct {
	Category           string               `json:"category"`
	Severity           types.FactorSeverity `json:"severity"`
	Description        string               `json:"description"`
	Indicators         []string             `json:"indicators,omitempty"`
	RegulatoryTriggers []string             `json:"regulatoryTriggers,omitempty"`
}
