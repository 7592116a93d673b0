package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/repository/memory"
	"github.com/sustain-lab/esgradar/pkg/usecase"
)

type recordingNotifier struct {
	orgID string
	gaps  []model.EvidenceGap
	calls int
}

func (n *recordingNotifier) NotifyGaps(ctx context.Context, orgID string, gaps []model.EvidenceGap) error {
	n.orgID = orgID
	n.gaps = gaps
	n.calls++
	return nil
}

func TestRecordEvidence(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	t.Run("assigns ID, upload time, and normalized type", func(t *testing.T) {
		created, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
			Title:    "Emissions inventory 2026",
			Category: types.PillarEnvironmental,
			Status:   types.EvidenceStatusComplete,
		})
		gt.NoError(t, err).Required()
		gt.B(t, created.ID != "").True()
		gt.B(t, created.UploadedAt.IsZero()).False()
		gt.V(t, created.Type).Equal(types.EvidenceTypeOther)
	})

	t.Run("empty status defaults to partial", func(t *testing.T) {
		created, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
			Title:    "Draft policy",
			Category: types.PillarGovernance,
		})
		gt.NoError(t, err).Required()
		gt.V(t, created.Status).Equal(types.EvidenceStatusPartial)
	})

	t.Run("title is required", func(t *testing.T) {
		_, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
			Category: types.PillarSocial,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidEvidence)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		_, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
			Title:    "Mystery document",
			Category: types.Pillar("financial"),
		})
		gt.Error(t, err).Is(usecase.ErrInvalidEvidence)
	})
}

func TestInventory(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	for _, item := range []*model.EvidenceItem{
		{Title: "Emissions report", Category: types.PillarEnvironmental, Status: types.EvidenceStatusComplete},
		{Title: "Labor audit", Category: types.PillarSocial, Status: types.EvidenceStatusPartial},
		{Title: "Board charter", Category: types.PillarGovernance, Status: types.EvidenceStatusComplete},
	} {
		_, err := uc.Evidence.Record(ctx, "acme", item)
		gt.NoError(t, err).Required()
	}

	inv, err := uc.Evidence.Inventory(ctx, "acme")
	gt.NoError(t, err).Required()

	gt.A(t, inv.Items).Length(3)
	gt.Number(t, inv.Coverage.Overall.Total).Equal(3)
	gt.Number(t, inv.Coverage.Overall.Complete).Equal(2)
	gt.Number(t, inv.Coverage.ByPillar.Environmental.Complete).Equal(1)
}

func TestReadinessPersistsSnapshots(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo, usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
		SectorCode:       "C",
		Geographies:      []string{"EU"},
		SupplyChainTiers: 2,
	})
	gt.NoError(t, err).Required()

	_, err = uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
		Title:    "Double materiality assessment",
		Category: types.PillarEnvironmental,
		Status:   types.EvidenceStatusComplete,
		Metadata: model.EvidenceMetadata{Regulations: []string{"CSRD"}},
	})
	gt.NoError(t, err).Required()

	snapshot, err := uc.Evidence.Readiness(ctx, "acme")
	gt.NoError(t, err).Required()

	// EUDR applies to sector C in the EU but has no evidence
	gt.Number(t, snapshot.ByRegulation["EUDR"]).Equal(0)
	gt.Number(t, snapshot.ByRegulation["CSRD"]).Equal(100)
	gt.A(t, snapshot.Trend).Length(6)

	stored, err := repo.Snapshot().List(ctx, "acme", 10)
	gt.NoError(t, err).Required()
	gt.A(t, stored).Length(1)
	gt.Number(t, stored[0].Overall).Equal(snapshot.Overall)

	// second run appends another snapshot
	_, err = uc.Evidence.Readiness(ctx, "acme")
	gt.NoError(t, err).Required()
	stored, err = repo.Snapshot().List(ctx, "acme", 10)
	gt.NoError(t, err).Required()
	gt.A(t, stored).Length(2)
}

func TestReadinessWithoutConfig(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	_, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
		Title:    "Board charter",
		Category: types.PillarGovernance,
		Status:   types.EvidenceStatusComplete,
	})
	gt.NoError(t, err).Required()

	snapshot, err := uc.Evidence.Readiness(ctx, "acme")
	gt.NoError(t, err).Required()
	gt.Number(t, snapshot.ByPillar.Governance).Equal(100)
}

func TestGaps(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
		SectorCode:       "C",
		Geographies:      []string{"EU"},
		SupplyChainTiers: 2,
	})
	gt.NoError(t, err).Required()

	expired := time.Now().UTC().Add(-24 * time.Hour)
	_, err = uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
		ID:         "ev-old",
		Title:      "Stale certification",
		Category:   types.PillarEnvironmental,
		Status:     types.EvidenceStatusComplete,
		ExpiresAt:  &expired,
		UploadedAt: expired.AddDate(-1, 0, 0),
	})
	gt.NoError(t, err).Required()

	gaps, err := uc.Evidence.Gaps(ctx, "acme")
	gt.NoError(t, err).Required()

	byReg := make(map[string]model.EvidenceGap)
	var hasExpiry bool
	for _, gap := range gaps {
		if gap.Regulation != "" {
			byReg[gap.Regulation] = gap
		}
		if gap.ID == "gap-exp-ev-old" {
			hasExpiry = true
		}
	}

	// both mandatory requirements lack complete evidence
	gt.V(t, byReg["CSRD"].Severity).Equal(types.SignalSeverityHigh)
	gt.V(t, byReg["EUDR"].Severity).Equal(types.SignalSeverityHigh)
	gt.B(t, hasExpiry).True()

	// the EU regulations emit exposure signals, so the gaps link back to them
	gt.B(t, byReg["CSRD"].SignalID != "").True()
	gt.B(t, byReg["EUDR"].SignalID != "").True()
}

func TestGapsWithoutConfig(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	expired := time.Now().UTC().Add(-24 * time.Hour)
	_, err := uc.Evidence.Record(ctx, "acme", &model.EvidenceItem{
		ID:        "ev-exp",
		Title:     "Expired audit",
		Category:  types.PillarSocial,
		Status:    types.EvidenceStatusComplete,
		ExpiresAt: &expired,
	})
	gt.NoError(t, err).Required()

	gaps, err := uc.Evidence.Gaps(ctx, "acme")
	gt.NoError(t, err).Required()
	gt.A(t, gaps).Length(1)
	gt.S(t, gaps[0].ID).Equal("gap-exp-ev-exp")
}

func TestReviewNotifiesUrgentGaps(t *testing.T) {
	notifier := &recordingNotifier{}
	uc := usecase.New(memory.New(),
		usecase.WithReferenceData(testReferenceData()),
		usecase.WithNotifier(notifier))
	ctx := context.Background()

	_, err := uc.Assessment.SaveConfig(ctx, "acme", &model.RiskRadarConfig{
		SectorCode:       "C",
		Geographies:      []string{"EU"},
		SupplyChainTiers: 2,
	})
	gt.NoError(t, err).Required()

	gaps, err := uc.Evidence.Review(ctx, "acme")
	gt.NoError(t, err).Required()
	gt.B(t, len(gaps) > 0).True()

	gt.Number(t, notifier.calls).Equal(1)
	gt.S(t, notifier.orgID).Equal("acme")
	for _, gap := range notifier.gaps {
		gt.B(t, gap.Severity == types.SignalSeverityCritical || gap.Severity == types.SignalSeverityHigh).True()
	}
}

func TestReviewWithoutNotifier(t *testing.T) {
	uc := usecase.New(memory.New(), usecase.WithReferenceData(testReferenceData()))
	ctx := context.Background()

	gaps, err := uc.Evidence.Review(ctx, "acme")
	gt.NoError(t, err).Required()
	gt.A(t, gaps).Length(0)
}
