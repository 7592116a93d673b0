package readiness

import (
	"fmt"
	"sort"

	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
)

// IdentifyGaps diffs the evidence requirements against the inventory and
// returns the shortfalls, most urgent first.
//
// A requirement is satisfied only by a complete item tagged with its
// regulation (or carrying it as a framework). Expired items additionally
// produce renewal gaps; for that check the expiry date is trusted over the
// status field, since the two can disagree until the host catches up.
func IdentifyGaps(inventory model.EvidenceInventory, requirements []model.EvidenceRequirement, signals []model.ExposureSignal, opts ...Option) []model.EvidenceGap {
	o := applyOptions(opts)
	now := o.clock().UTC()

	var gaps []model.EvidenceGap
	seq := 0
	for _, req := range requirements {
		matches := matchItems(inventory.Items, req.Regulation)
		if anyComplete(matches) {
			continue
		}

		seq++
		severity := types.SignalSeverityMedium
		if req.Mandatory {
			severity = types.SignalSeverityHigh
		}

		gap := model.EvidenceGap{
			ID:             fmt.Sprintf("gap-%03d", seq),
			Category:       req.Category,
			Regulation:     req.Regulation,
			Requirement:    req.Requirement,
			Severity:       severity,
			Description:    fmt.Sprintf("No complete evidence for %q under %s", req.Requirement, req.Regulation),
			EvidenceNeeded: req.EvidenceTypes,
		}
		if req.Frequency == types.FrequencyAnnual {
			deadline := now.AddDate(1, 0, 0)
			gap.Deadline = &deadline
		}
		if sig := signalFor(signals, req.Regulation); sig != nil {
			gap.SignalID = sig.ID
		}
		gaps = append(gaps, gap)
	}

	for _, item := range inventory.Items {
		expired := item.Status == types.EvidenceStatusExpired ||
			(item.ExpiresAt != nil && item.ExpiresAt.Before(now))
		if !expired {
			continue
		}

		gaps = append(gaps, model.EvidenceGap{
			ID:             "gap-exp-" + item.ID,
			Category:       item.Category,
			Requirement:    "Renew expired evidence: " + item.Title,
			Severity:       types.SignalSeverityMedium,
			Description:    fmt.Sprintf("Evidence %q is expired and must be renewed", item.Title),
			EvidenceNeeded: []types.EvidenceType{item.Type.Normalize()},
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Severity.Rank() < gaps[j].Severity.Rank()
	})
	return gaps
}

// MapEvidenceToRequirements collects, per requirement, the items that could
// satisfy it. Matching is looser than gap detection: regulation tag,
// framework tag, or same pillar category all count. Requirements with no
// match do not appear in the result.
func MapEvidenceToRequirements(items []model.EvidenceItem, requirements []model.EvidenceRequirement) map[string][]model.EvidenceItem {
	out := make(map[string][]model.EvidenceItem)
	for _, req := range requirements {
		var matched []model.EvidenceItem
		for _, item := range items {
			if itemMatches(item, req.Regulation) || item.Category == req.Category {
				matched = append(matched, item)
			}
		}
		if len(matched) > 0 {
			out[req.ID] = matched
		}
	}
	return out
}

func matchItems(items []model.EvidenceItem, regulation string) []model.EvidenceItem {
	var out []model.EvidenceItem
	for _, item := range items {
		if itemMatches(item, regulation) {
			out = append(out, item)
		}
	}
	return out
}

func itemMatches(item model.EvidenceItem, regulation string) bool {
	for _, reg := range item.Metadata.Regulations {
		if reg == regulation {
			return true
		}
	}
	for _, fw := range item.Metadata.Frameworks {
		if fw == regulation {
			return true
		}
	}
	return false
}

func anyComplete(items []model.EvidenceItem) bool {
	for _, item := range items {
		if item.Status == types.EvidenceStatusComplete {
			return true
		}
	}
	return false
}

func signalFor(signals []model.ExposureSignal, regulation string) *model.ExposureSignal {
	for i := range signals {
		if signals[i].RelatedRegulation == regulation {
			return &signals[i]
		}
	}
	return nil
}
