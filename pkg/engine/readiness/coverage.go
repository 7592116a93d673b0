// Package readiness computes evidence coverage metrics, an overall readiness
// score, and a ranked list of evidence gaps from an evidence inventory.
//
// Like the exposure engine it is pure: no I/O, no internal state, total over
// its inputs. Empty inventories degrade to zero metrics, not errors.
package readiness

import (
	"math"

	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// Coverage tallies evidence items by status. Items with an unrecognized
// status count toward Total but none of the four buckets, so the bucket sum
// may be less than Total.
func Coverage(items []model.EvidenceItem) model.CoverageMetrics {
	m := model.CoverageMetrics{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case types.EvidenceStatusComplete:
			m.Complete++
		case types.EvidenceStatusPartial:
			m.Partial++
		case types.EvidenceStatusMissing:
			m.Missing++
		case types.EvidenceStatusExpired:
			m.Expired++
		}
	}
	if m.Total > 0 {
		m.CoveragePercentage = int(math.Round(100 * float64(m.Complete) / float64(m.Total)))
	}
	return m
}

// CoverageByPillar partitions items by category and tallies each partition
// independently. An item belongs to exactly one pillar; items with a
// category outside the three ESG pillars are not counted anywhere.
func CoverageByPillar(items []model.EvidenceItem) model.PillarCoverage {
	byPillar := make(map[types.Pillar][]model.EvidenceItem, 3)
	for _, item := range items {
		byPillar[item.Category] = append(byPillar[item.Category], item)
	}
	return model.PillarCoverage{
		Environmental: Coverage(byPillar[types.PillarEnvironmental]),
		Social:        Coverage(byPillar[types.PillarSocial]),
		Governance:    Coverage(byPillar[types.PillarGovernance]),
	}
}

// CoverageByRegulation tallies items per regulation tag. Unlike the pillar
// partition this is a many-to-many fan-out: an item tagged with two
// regulations is counted in both buckets.
func CoverageByRegulation(items []model.EvidenceItem) map[string]model.CoverageMetrics {
	byRegulation := make(map[string][]model.EvidenceItem)
	for _, item := range items {
		for _, reg := range item.Metadata.Regulations {
			byRegulation[reg] = append(byRegulation[reg], item)
		}
	}

	out := make(map[string]model.CoverageMetrics, len(byRegulation))
	for reg, regItems := range byRegulation {
		out[reg] = Coverage(regItems)
	}
	return out
}

// BuildInventory assembles an inventory with all coverage aggregates
// precomputed from the raw item list.
func BuildInventory(items []model.EvidenceItem) model.EvidenceInventory {
	return model.EvidenceInventory{
		Items: items,
		Coverage: model.InventoryCoverage{
			Overall:      Coverage(items),
			ByPillar:     CoverageByPillar(items),
			ByRegulation: CoverageByRegulation(items),
		},
	}
}
