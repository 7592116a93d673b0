package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// MinSupplyChainTiers and MaxSupplyChainTiers bound the tier depth at the
	// configuration boundary. The engine itself accepts any positive value.
	MinSupplyChainTiers = 1
	MaxSupplyChainTiers = 4
)

// RiskRadarConfig is the organization's assessment input: which sector it
// operates in, where, and how deep its supply chain goes.
type RiskRadarConfig struct {
	OrganizationID   string    `json:"organizationId,omitempty"`
	SectorCode       string    `json:"sectorCode"`
	Geographies      []string  `json:"geographies"`
	SupplyChainTiers int       `json:"supplyChainTiers"`
	CreatedAt        time.Time `json:"createdAt,omitzero"`
	UpdatedAt        time.Time `json:"updatedAt,omitzero"`
}

// Validate returns a flat list of human-readable problems with the config.
// An empty list means the config is acceptable. Validation failures are
// reported as strings rather than an error so the host can surface all of
// them at once.
func (c *RiskRadarConfig) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.SectorCode) == "" {
		errs = append(errs, "sector code is required")
	}
	if len(c.Geographies) == 0 {
		errs = append(errs, "at least one geography is required")
	}
	if c.SupplyChainTiers < MinSupplyChainTiers || c.SupplyChainTiers > MaxSupplyChainTiers {
		errs = append(errs, "supply chain tiers must be between 1 and 4")
	}
	return errs
}

// Sanitize returns a normalized copy: sector code trimmed, geographies
// trimmed and deduplicated with empty entries dropped, tier depth clamped to
// the configuration bounds. Relative entry order is preserved.
func (c RiskRadarConfig) Sanitize() RiskRadarConfig {
	out := c
	out.SectorCode = strings.TrimSpace(c.SectorCode)

	seen := make(map[string]bool, len(c.Geographies))
	geos := make([]string, 0, len(c.Geographies))
	for _, g := range c.Geographies {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		geos = append(geos, g)
	}
	out.Geographies = geos

	if out.SupplyChainTiers < MinSupplyChainTiers {
		out.SupplyChainTiers = MinSupplyChainTiers
	}
	if out.SupplyChainTiers > MaxSupplyChainTiers {
		out.SupplyChainTiers = MaxSupplyChainTiers
	}
	return out
}

// ParseRiskRadarConfig parses a stored JSON blob into a config. Malformed
// JSON is returned as an error value, never as a panic.
func ParseRiskRadarConfig(data []byte) (*RiskRadarConfig, error) {
	var cfg RiskRadarConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse risk radar config")
	}
	return &cfg, nil
}
