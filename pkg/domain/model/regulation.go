package model

import "github.com/sustain-lab/esgradar/pkg/domain/types"

// RegulatoryExposure describes one regulation's applicability to the
// organization. Deadline is an ISO-8601 date string, empty when the
// regulation has no fixed deadline.
type RegulatoryExposure struct {
	Regulation     string              `json:"regulation"`
	Region         string              `json:"region"`
	Applicability  types.Applicability `json:"applicability"`
	Pressure       types.PressureLevel `json:"pressure"`
	Deadline       string              `json:"deadline,omitempty"`
	Requirements   []string            `json:"requirements,omitempty"`
	EvidenceNeeded []string            `json:"evidenceNeeded,omitempty"`
}
