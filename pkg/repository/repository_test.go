package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/repository/firestore"
	"github.com/sustain-lab/esgradar/pkg/repository/memory"
)

const testOrgID = "test-org"

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("RadarConfig save and get round-trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cfg := &model.RiskRadarConfig{
			SectorCode:       "C",
			Geographies:      []string{"EU", "US"},
			SupplyChainTiers: 2,
		}

		saved, err := repo.RadarConfig().Save(ctx, testOrgID, cfg)
		if err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
		if saved.OrganizationID != testOrgID {
			t.Errorf("expected org ID %s, got %s", testOrgID, saved.OrganizationID)
		}
		if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}

		got, err := repo.RadarConfig().Get(ctx, testOrgID)
		if err != nil {
			t.Fatalf("failed to get config: %v", err)
		}
		if got.SectorCode != "C" {
			t.Errorf("expected sector C, got %s", got.SectorCode)
		}
		if len(got.Geographies) != 2 {
			t.Errorf("expected 2 geographies, got %d", len(got.Geographies))
		}
	})

	t.Run("RadarConfig overwrite keeps creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.RadarConfig().Save(ctx, testOrgID, &model.RiskRadarConfig{SectorCode: "A", Geographies: []string{"EU"}, SupplyChainTiers: 1})
		if err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		second, err := repo.RadarConfig().Save(ctx, testOrgID, &model.RiskRadarConfig{SectorCode: "C", Geographies: []string{"EU"}, SupplyChainTiers: 2})
		if err != nil {
			t.Fatalf("failed to re-save config: %v", err)
		}
		if !second.CreatedAt.Equal(first.CreatedAt) {
			t.Errorf("expected CreatedAt to survive overwrite, got %v != %v", second.CreatedAt, first.CreatedAt)
		}
		if second.SectorCode != "C" {
			t.Errorf("expected updated sector C, got %s", second.SectorCode)
		}
	})

	t.Run("RadarConfig get missing returns not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.RadarConfig().Get(context.Background(), "no-such-org")
		if err == nil {
			t.Fatal("expected error for missing config")
		}
	})

	t.Run("Evidence CRUD", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		expiry := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
		item := &model.EvidenceItem{
			ID:         "ev-1",
			Title:      "Emissions inventory 2026",
			Type:       types.EvidenceTypeReport,
			Category:   types.PillarEnvironmental,
			Status:     types.EvidenceStatusComplete,
			UploadedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			ExpiresAt:  &expiry,
			Metadata: model.EvidenceMetadata{
				Regulations: []string{"CSRD"},
				Author:      "sustainability team",
			},
			ReadinessScore: 90,
		}

		created, err := repo.Evidence().Create(ctx, testOrgID, item)
		if err != nil {
			t.Fatalf("failed to create evidence: %v", err)
		}
		if created.ID != "ev-1" {
			t.Errorf("expected ID ev-1, got %s", created.ID)
		}

		got, err := repo.Evidence().Get(ctx, testOrgID, "ev-1")
		if err != nil {
			t.Fatalf("failed to get evidence: %v", err)
		}
		if got.Title != item.Title {
			t.Errorf("expected title %q, got %q", item.Title, got.Title)
		}
		if got.ExpiresAt == nil || !got.ExpiresAt.Equal(expiry) {
			t.Errorf("expected expiry %v, got %v", expiry, got.ExpiresAt)
		}
		if len(got.Metadata.Regulations) != 1 || got.Metadata.Regulations[0] != "CSRD" {
			t.Errorf("unexpected metadata regulations: %v", got.Metadata.Regulations)
		}

		got.Status = types.EvidenceStatusExpired
		updated, err := repo.Evidence().Update(ctx, testOrgID, got)
		if err != nil {
			t.Fatalf("failed to update evidence: %v", err)
		}
		if updated.Status != types.EvidenceStatusExpired {
			t.Errorf("expected expired status, got %s", updated.Status)
		}

		if err := repo.Evidence().Delete(ctx, testOrgID, "ev-1"); err != nil {
			t.Fatalf("failed to delete evidence: %v", err)
		}
		if _, err := repo.Evidence().Get(ctx, testOrgID, "ev-1"); err == nil {
			t.Fatal("expected error after delete")
		}
	})

	t.Run("Evidence duplicate create fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := &model.EvidenceItem{ID: "dup-1", Title: "Policy", Category: types.PillarGovernance, Status: types.EvidenceStatusComplete, UploadedAt: time.Now().UTC()}
		if _, err := repo.Evidence().Create(ctx, testOrgID, item); err != nil {
			t.Fatalf("failed to create evidence: %v", err)
		}
		if _, err := repo.Evidence().Create(ctx, testOrgID, item); err == nil {
			t.Fatal("expected duplicate create to fail")
		}
	})

	t.Run("Evidence list orders by upload time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, id := range []string{"b", "a", "c"} {
			item := &model.EvidenceItem{
				ID:         id,
				Title:      fmt.Sprintf("Evidence %s", id),
				Category:   types.PillarSocial,
				Status:     types.EvidenceStatusPartial,
				UploadedAt: base.Add(time.Duration(i) * time.Hour),
			}
			if _, err := repo.Evidence().Create(ctx, testOrgID, item); err != nil {
				t.Fatalf("failed to create evidence %s: %v", id, err)
			}
		}

		items, err := repo.Evidence().List(ctx, testOrgID)
		if err != nil {
			t.Fatalf("failed to list evidence: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		for i, want := range []string{"b", "a", "c"} {
			if items[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, items[i].ID)
			}
		}
	})

	t.Run("Evidence is isolated per organization", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item := &model.EvidenceItem{ID: "iso-1", Title: "Report", Category: types.PillarEnvironmental, Status: types.EvidenceStatusComplete, UploadedAt: time.Now().UTC()}
		if _, err := repo.Evidence().Create(ctx, "org-a", item); err != nil {
			t.Fatalf("failed to create evidence: %v", err)
		}

		items, err := repo.Evidence().List(ctx, "org-b")
		if err != nil {
			t.Fatalf("failed to list evidence: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected empty list for other org, got %d items", len(items))
		}
	})

	t.Run("Snapshot history lists newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			snap := &model.ReadinessSnapshot{
				Timestamp: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
				Overall:   40 + i,
				Trend:     []model.TrendPoint{{Period: "2026-01", Score: 40 + i}},
			}
			if err := repo.Snapshot().Put(ctx, testOrgID, snap); err != nil {
				t.Fatalf("failed to put snapshot: %v", err)
			}
		}

		snaps, err := repo.Snapshot().List(ctx, testOrgID, 2)
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}
		if len(snaps) != 2 {
			t.Fatalf("expected 2 snapshots, got %d", len(snaps))
		}
		if snaps[0].Overall != 42 || snaps[1].Overall != 41 {
			t.Errorf("expected newest first, got overall %d, %d", snaps[0].Overall, snaps[1].Overall)
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT is not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, databaseID,
			firestore.WithCollectionPrefix(fmt.Sprintf("test_%d", time.Now().UnixNano())))
		if err != nil {
			t.Fatalf("failed to create firestore repository: %v", err)
		}
		t.Cleanup(func() {
			if err := repo.Close(); err != nil {
				t.Logf("failed to close firestore repository: %v", err)
			}
		})
		return repo
	})
}

func TestMemoryNotFoundError(t *testing.T) {
	repo := memory.New()
	_, err := repo.Evidence().Get(context.Background(), "org", "missing")
	if !errors.Is(err, memory.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
