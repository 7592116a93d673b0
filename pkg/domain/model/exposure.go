package model

import (
	"time"

	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// ExposureSignal is one derived finding. Signals are created fresh on every
// engine run; IDs are unique within a run only.
type ExposureSignal struct {
	ID                string               `json:"id"`
	Type              types.Pillar         `json:"type"`
	Category          string               `json:"category"`
	Severity          types.SignalSeverity `json:"severity"`
	Description       string               `json:"description"`
	Source            string               `json:"source"`
	Timestamp         time.Time            `json:"timestamp"`
	RelatedRegulation string               `json:"relatedRegulation,omitempty"`
	EvidenceRequired  bool                 `json:"evidenceRequired"`
}

// TrendPoint is one entry of a score series, labeled by calendar month
type TrendPoint struct {
	Period string `json:"period"` // YYYY-MM
	Score  int    `json:"score"`
}

// ExposureLevel is one pillar's result: a bucketed level derived from the
// clamped 0-100 score, plus the signals that contributed to it.
type ExposureLevel struct {
	Level   types.SignalSeverity `json:"level"`
	Score   int                  `json:"score"`
	Signals []ExposureSignal     `json:"signals"`
	Trend   []TrendPoint         `json:"trend,omitempty"`
}

// RegionPressure aggregates regulatory pressure for one region
type RegionPressure struct {
	Region      string               `json:"region"`
	Intensity   int                  `json:"intensity"`
	Regulations []RegulatoryExposure `json:"regulations"`
}

// RiskHotspot is a supply-chain location flagged by the caller's footprint
// data. Hotspots pass through the exposure engine unscored.
type RiskHotspot struct {
	Geography string   `json:"geography"`
	Sector    string   `json:"sector"`
	RiskLevel string   `json:"riskLevel"`
	Factors   []string `json:"factors,omitempty"`
}

// SupplyChainFootprint is optional caller-supplied supply chain data
type SupplyChainFootprint struct {
	Hotspots []RiskHotspot `json:"hotspots,omitempty"`
}

// RiskRadarOutput is the exposure engine's full result
type RiskRadarOutput struct {
	OrganizationID     string                         `json:"organizationId"`
	GeneratedAt        time.Time                      `json:"generatedAt"`
	OverallExposure    map[types.Pillar]ExposureLevel `json:"overallExposure"`
	ExposureSignals    []ExposureSignal               `json:"exposureSignals"`
	RegulatoryPressure []RegionPressure               `json:"regulatoryPressure"`
	RiskHotspots       []RiskHotspot                  `json:"riskHotspots"`
}
