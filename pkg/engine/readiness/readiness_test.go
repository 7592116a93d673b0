package readiness_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/engine/readiness"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func testInventory() model.EvidenceInventory {
	return readiness.BuildInventory([]model.EvidenceItem{
		item("1", types.PillarEnvironmental, types.EvidenceStatusComplete, "CSRD"),
		item("2", types.PillarEnvironmental, types.EvidenceStatusComplete),
		item("3", types.PillarSocial, types.EvidenceStatusComplete),
		item("4", types.PillarSocial, types.EvidenceStatusPartial),
		item("5", types.PillarGovernance, types.EvidenceStatusMissing),
	})
}

func TestCalculateOverallScore(t *testing.T) {
	inv := testInventory()
	snap := readiness.Calculate(inv, nil, readiness.WithClock(fixedClock))

	// env 100, social 50, governance 0 -> round(150/3) = 50
	gt.Number(t, snap.ByPillar.Environmental).Equal(100)
	gt.Number(t, snap.ByPillar.Social).Equal(50)
	gt.Number(t, snap.ByPillar.Governance).Equal(0)
	gt.Number(t, snap.Overall).Equal(50)

	gt.Number(t, snap.ByRegulation["CSRD"]).Equal(100)
	gt.Value(t, snap.Timestamp).Equal(fixedClock())
}

func TestCalculateNextReviewDate(t *testing.T) {
	snap := readiness.Calculate(model.EvidenceInventory{}, nil, readiness.WithClock(fixedClock))
	gt.Value(t, snap.NextReviewDate).Equal(fixedClock().AddDate(0, 0, 30))
}

func TestCalculateUncoveredRequirementIsZero(t *testing.T) {
	reqs := []model.EvidenceRequirement{
		{ID: "r1", Regulation: "EUDR", Requirement: "Due diligence statement", Category: types.PillarEnvironmental},
	}
	snap := readiness.Calculate(testInventory(), reqs, readiness.WithClock(fixedClock))

	score, ok := snap.ByRegulation["EUDR"]
	gt.Value(t, ok).Equal(true)
	gt.Number(t, score).Equal(0)
}

func TestCalculateTrend(t *testing.T) {
	t.Run("six points ending at current month", func(t *testing.T) {
		snap := readiness.Calculate(testInventory(), nil, readiness.WithClock(fixedClock))

		gt.Number(t, len(snap.Trend)).Equal(6)
		gt.Value(t, snap.Trend[0].Period).Equal("2025-10")
		gt.Value(t, snap.Trend[5].Period).Equal("2026-03")
		gt.Number(t, snap.Trend[5].Score).Equal(snap.Overall)
	})

	t.Run("no fabricated scores without explicit opt-in", func(t *testing.T) {
		snap := readiness.Calculate(testInventory(), nil, readiness.WithClock(fixedClock))

		for _, p := range snap.Trend {
			gt.Number(t, p.Score).Equal(snap.Overall)
		}
	})

	t.Run("synthesized points stay within the jitter band", func(t *testing.T) {
		snap := readiness.Calculate(testInventory(), nil,
			readiness.WithClock(fixedClock),
			readiness.WithSynthesizedTrend(7),
		)

		for _, p := range snap.Trend {
			if p.Score < 0 || p.Score > 100 {
				t.Errorf("trend score %d for %s out of bounds", p.Score, p.Period)
			}
			diff := p.Score - snap.Overall
			if diff < -5 || diff > 5 {
				t.Errorf("trend score %d for %s deviates more than 5 from %d", p.Score, p.Period, snap.Overall)
			}
		}
		gt.Number(t, snap.Trend[5].Score).Equal(snap.Overall)
	})

	t.Run("stored history wins over synthesis", func(t *testing.T) {
		history := []model.TrendPoint{
			{Period: "2025-12", Score: 31},
			{Period: "2026-01", Score: 37},
		}
		snap := readiness.Calculate(testInventory(), nil,
			readiness.WithClock(fixedClock),
			readiness.WithHistory(history),
		)

		byPeriod := make(map[string]int, len(snap.Trend))
		for _, p := range snap.Trend {
			byPeriod[p.Period] = p.Score
		}
		gt.Number(t, byPeriod["2025-12"]).Equal(31)
		gt.Number(t, byPeriod["2026-01"]).Equal(37)
		gt.Number(t, byPeriod["2026-03"]).Equal(snap.Overall)
	})
}

func TestCalculateDeterminism(t *testing.T) {
	inv := testInventory()
	variants := [][]readiness.Option{
		{readiness.WithClock(fixedClock)},
		{readiness.WithClock(fixedClock), readiness.WithSynthesizedTrend(3)},
	}

	for _, opts := range variants {
		first, err := json.Marshal(readiness.Calculate(inv, nil, opts...))
		gt.NoError(t, err).Required()
		second, err := json.Marshal(readiness.Calculate(inv, nil, opts...))
		gt.NoError(t, err).Required()

		gt.Value(t, string(second)).Equal(string(first))
	}
}

func TestCalculateScoreBounds(t *testing.T) {
	inventories := []model.EvidenceInventory{
		{},
		testInventory(),
		readiness.BuildInventory([]model.EvidenceItem{
			item("1", types.PillarEnvironmental, types.EvidenceStatusComplete),
		}),
	}

	for _, inv := range inventories {
		snap := readiness.Calculate(inv, nil, readiness.WithClock(fixedClock))
		for _, score := range []int{snap.Overall, snap.ByPillar.Environmental, snap.ByPillar.Social, snap.ByPillar.Governance} {
			if score < 0 || score > 100 {
				t.Errorf("score %d out of [0,100]", score)
			}
		}
	}
}
