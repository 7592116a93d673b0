package model

import (
	"time"

	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// EvidenceFile is an opaque descriptor of an uploaded artifact. The bytes
// themselves live in the host's file storage, never here.
type EvidenceFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	URL         string `json:"url,omitempty"`
}

// EvidenceMetadata carries classification tags for an evidence item.
// An item may belong to multiple frameworks and regulations at once.
type EvidenceMetadata struct {
	Frameworks  []string `json:"framework,omitempty"`
	Regulations []string `json:"regulation,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      string   `json:"author,omitempty"`
}

// EvidenceItem is one evidence artifact held by the organization.
// ReadinessScore is assigned by the caller; the readiness engine aggregates
// it but never produces it per item.
type EvidenceItem struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Type           types.EvidenceType   `json:"type"`
	Category       types.Pillar         `json:"category"`
	Status         types.EvidenceStatus `json:"status"`
	UploadedAt     time.Time            `json:"uploadedAt"`
	ExpiresAt      *time.Time           `json:"expiresAt,omitempty"`
	File           *EvidenceFile        `json:"file,omitempty"`
	Metadata       EvidenceMetadata     `json:"metadata"`
	Links          []string             `json:"links,omitempty"`
	ReadinessScore int                  `json:"readinessScore"`
}

// CoverageMetrics is a tally over a set of evidence items. Items with an
// unrecognized status count toward Total only.
type CoverageMetrics struct {
	Total              int `json:"total"`
	Complete           int `json:"complete"`
	Partial            int `json:"partial"`
	Missing            int `json:"missing"`
	Expired            int `json:"expired"`
	CoveragePercentage int `json:"coveragePercentage"`
}

// PillarCoverage partitions coverage by ESG pillar. An item belongs to
// exactly one pillar via its category field.
type PillarCoverage struct {
	Environmental CoverageMetrics `json:"environmental"`
	Social        CoverageMetrics `json:"social"`
	Governance    CoverageMetrics `json:"governance"`
}

// InventoryCoverage is the aggregated coverage of an evidence inventory
type InventoryCoverage struct {
	Overall      CoverageMetrics            `json:"overall"`
	ByPillar     PillarCoverage             `json:"byPillar"`
	ByRegulation map[string]CoverageMetrics `json:"byRegulation"`
}

// EvidenceInventory is the full evidence set with precomputed coverage
type EvidenceInventory struct {
	Items    []EvidenceItem    `json:"items"`
	Coverage InventoryCoverage `json:"coverage"`
}

// EvidenceGap is a derived shortfall: a requirement with no complete
// evidence, or an item past its expiry.
type EvidenceGap struct {
	ID             string               `json:"id"`
	Category       types.Pillar         `json:"category"`
	Regulation     string               `json:"regulation,omitempty"`
	Framework      string               `json:"framework,omitempty"`
	Requirement    string               `json:"requirement"`
	Severity       types.SignalSeverity `json:"severity"`
	Description    string               `json:"description"`
	EvidenceNeeded []types.EvidenceType `json:"evidenceNeeded,omitempty"`
	Deadline       *time.Time           `json:"deadline,omitempty"`
	SignalID       string               `json:"signalId,omitempty"`
}

// PillarScores holds one percentage per ESG pillar
type PillarScores struct {
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Governance    int `json:"governance"`
}

// ReadinessSnapshot is the readiness engine's headline result
type ReadinessSnapshot struct {
	Timestamp      time.Time      `json:"timestamp"`
	Overall        int            `json:"overall"`
	ByPillar       PillarScores   `json:"byPillar"`
	ByRegulation   map[string]int `json:"byRegulation"`
	Trend          []TrendPoint   `json:"trend"`
	NextReviewDate time.Time      `json:"nextReviewDate"`
}

// RequirementApplicability filters which organizations a requirement
// applies to. Empty lists mean "applies to all".
type RequirementApplicability struct {
	Sectors          []string `json:"sectors,omitempty"`
	Geographies      []string `json:"geographies,omitempty"`
	OrganizationSize []string `json:"organizationSize,omitempty"`
}

// EvidenceRequirement is reference data describing what evidence a
// regulation demands.
type EvidenceRequirement struct {
	ID            string                   `json:"id"`
	Regulation    string                   `json:"regulation"`
	Requirement   string                   `json:"requirement"`
	Category      types.Pillar             `json:"category"`
	EvidenceTypes []types.EvidenceType     `json:"evidenceTypes,omitempty"`
	Mandatory     bool                     `json:"mandatory"`
	Frequency     types.Frequency          `json:"frequency,omitempty"`
	AppliesTo     RequirementApplicability `json:"appliesTo,omitzero"`
}
