package usecase

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"github.com/sustain-lab/esgradar/pkg/engine/exposure"
	"github.com/sustain-lab/esgradar/pkg/engine/readiness"
	"github.com/sustain-lab/esgradar/pkg/service/notify"
	"golang.org/x/sync/errgroup"
)

// snapshotHistoryLimit bounds how many stored snapshots feed the trend
// series. One per month is used, so this comfortably covers the window.
const snapshotHistoryLimit = 12

// EvidenceUseCase manages the evidence inventory and derives readiness
// snapshots and gap lists from it.
type EvidenceUseCase struct {
	repo     interfaces.Repository
	refData  *model.ReferenceData
	notifier notify.Service
	engine   *exposure.Engine
}

func NewEvidenceUseCase(repo interfaces.Repository, refData *model.ReferenceData, notifier notify.Service) *EvidenceUseCase {
	return &EvidenceUseCase{
		repo:     repo,
		refData:  refData,
		notifier: notifier,
		engine:   exposure.New(),
	}
}

// Record stores a new evidence item. A missing ID is assigned, a missing
// upload time defaults to now, and an empty type normalizes to "other".
func (uc *EvidenceUseCase) Record(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	if item == nil {
		return nil, goerr.Wrap(ErrInvalidEvidence, "evidence item is required", goerr.V(OrgIDKey, orgID))
	}
	if strings.TrimSpace(item.Title) == "" {
		return nil, goerr.Wrap(ErrInvalidEvidence, "evidence title is required", goerr.V(OrgIDKey, orgID))
	}
	if !item.Category.IsValid() {
		return nil, goerr.Wrap(ErrInvalidEvidence, "unknown evidence category",
			goerr.V(OrgIDKey, orgID), goerr.V("category", item.Category))
	}
	if item.Status == "" {
		item.Status = types.EvidenceStatusPartial
	}
	if !item.Status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidEvidence, "unknown evidence status",
			goerr.V(OrgIDKey, orgID), goerr.V("status", item.Status))
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.UploadedAt.IsZero() {
		item.UploadedAt = time.Now().UTC()
	}
	item.Type = item.Type.Normalize()

	created, err := uc.repo.Evidence().Create(ctx, orgID, item)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create evidence item",
			goerr.V(OrgIDKey, orgID), goerr.V(EvidenceIDKey, item.ID))
	}

	return created, nil
}

// Get retrieves a single evidence item
func (uc *EvidenceUseCase) Get(ctx context.Context, orgID, itemID string) (*model.EvidenceItem, error) {
	item, err := uc.repo.Evidence().Get(ctx, orgID, itemID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get evidence item",
			goerr.V(OrgIDKey, orgID), goerr.V(EvidenceIDKey, itemID))
	}

	return item, nil
}

// List retrieves the organization's full inventory, oldest upload first
func (uc *EvidenceUseCase) List(ctx context.Context, orgID string) ([]*model.EvidenceItem, error) {
	items, err := uc.repo.Evidence().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence items", goerr.V(OrgIDKey, orgID))
	}

	return items, nil
}

// Update replaces an existing evidence item
func (uc *EvidenceUseCase) Update(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	if item == nil || item.ID == "" {
		return nil, goerr.Wrap(ErrInvalidEvidence, "evidence item with ID is required", goerr.V(OrgIDKey, orgID))
	}
	if !item.Status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidEvidence, "unknown evidence status",
			goerr.V(OrgIDKey, orgID), goerr.V("status", item.Status))
	}

	updated, err := uc.repo.Evidence().Update(ctx, orgID, item)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update evidence item",
			goerr.V(OrgIDKey, orgID), goerr.V(EvidenceIDKey, item.ID))
	}

	return updated, nil
}

// Delete removes an evidence item
func (uc *EvidenceUseCase) Delete(ctx context.Context, orgID, itemID string) error {
	if err := uc.repo.Evidence().Delete(ctx, orgID, itemID); err != nil {
		return goerr.Wrap(err, "failed to delete evidence item",
			goerr.V(OrgIDKey, orgID), goerr.V(EvidenceIDKey, itemID))
	}

	return nil
}

// Inventory builds the organization's evidence inventory with coverage
// metrics computed over the stored items.
func (uc *EvidenceUseCase) Inventory(ctx context.Context, orgID string) (*model.EvidenceInventory, error) {
	items, err := uc.repo.Evidence().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence items", goerr.V(OrgIDKey, orgID))
	}

	inv := readiness.BuildInventory(deref(items))
	return &inv, nil
}

// Readiness computes a fresh readiness snapshot and appends it to the
// organization's history. Stored snapshots feed the trend series, so the
// series becomes real as the history accumulates. A missing radar config
// only means no requirement filter applies; it is not an error.
func (uc *EvidenceUseCase) Readiness(ctx context.Context, orgID string) (*model.ReadinessSnapshot, error) {
	items, cfg, history, err := uc.loadReadinessInputs(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var requirements []model.EvidenceRequirement
	if cfg != nil {
		requirements = uc.refData.RequirementsFor(cfg.SectorCode, cfg.Geographies)
	}

	inv := readiness.BuildInventory(deref(items))
	snapshot := readiness.Calculate(inv, requirements,
		readiness.WithHistory(history),
		readiness.WithSynthesizedTrend(trendSeed(inv)),
	)

	if err := uc.repo.Snapshot().Put(ctx, orgID, &snapshot); err != nil {
		return nil, goerr.Wrap(err, "failed to store readiness snapshot", goerr.V(OrgIDKey, orgID))
	}

	return &snapshot, nil
}

// Gaps identifies evidence gaps against the applicable requirements,
// cross-linked to the signals of a fresh exposure run when a radar config
// exists.
func (uc *EvidenceUseCase) Gaps(ctx context.Context, orgID string) ([]model.EvidenceGap, error) {
	items, err := uc.repo.Evidence().List(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list evidence items", goerr.V(OrgIDKey, orgID))
	}

	var requirements []model.EvidenceRequirement
	var signals []model.ExposureSignal

	cfg, err := uc.repo.RadarConfig().Get(ctx, orgID)
	switch {
	case err == nil:
		requirements = uc.refData.RequirementsFor(cfg.SectorCode, cfg.Geographies)
		output := uc.engine.Calculate(cfg,
			uc.refData.Sector(cfg.SectorCode),
			uc.refData.GeographyList(cfg.Geographies),
			nil)
		signals = output.ExposureSignals
	case errors.Is(err, interfaces.ErrNotFound):
		// no config yet: expiry gaps still apply
	default:
		return nil, goerr.Wrap(err, "failed to load radar config", goerr.V(OrgIDKey, orgID))
	}

	inv := readiness.BuildInventory(deref(items))
	return readiness.IdentifyGaps(inv, requirements, signals), nil
}

// Review refreshes the readiness snapshot, identifies gaps, and alerts
// the notifier about critical and high severity ones. Used by the
// periodic review worker and the manual review endpoint.
func (uc *EvidenceUseCase) Review(ctx context.Context, orgID string) ([]model.EvidenceGap, error) {
	if _, err := uc.Readiness(ctx, orgID); err != nil {
		return nil, err
	}

	gaps, err := uc.Gaps(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		urgent := urgentGaps(gaps)
		if len(urgent) > 0 {
			if err := uc.notifier.NotifyGaps(ctx, orgID, urgent); err != nil {
				return nil, goerr.Wrap(err, "failed to notify gaps", goerr.V(OrgIDKey, orgID))
			}
		}
	}

	return gaps, nil
}

func (uc *EvidenceUseCase) loadReadinessInputs(ctx context.Context, orgID string) ([]*model.EvidenceItem, *model.RiskRadarConfig, []model.TrendPoint, error) {
	var (
		items   []*model.EvidenceItem
		cfg     *model.RiskRadarConfig
		history []model.TrendPoint
	)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		items, err = uc.repo.Evidence().List(ctx, orgID)
		if err != nil {
			return goerr.Wrap(err, "failed to list evidence items", goerr.V(OrgIDKey, orgID))
		}
		return nil
	})

	eg.Go(func() error {
		got, err := uc.repo.RadarConfig().Get(ctx, orgID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil
			}
			return goerr.Wrap(err, "failed to load radar config", goerr.V(OrgIDKey, orgID))
		}
		cfg = got
		return nil
	})

	eg.Go(func() error {
		snaps, err := uc.repo.Snapshot().List(ctx, orgID, snapshotHistoryLimit)
		if err != nil {
			return goerr.Wrap(err, "failed to list readiness snapshots", goerr.V(OrgIDKey, orgID))
		}
		history = trendHistory(snaps)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return items, cfg, history, nil
}

// trendHistory reduces stored snapshots to one trend point per calendar
// month. Snapshots arrive newest first, so the first snapshot seen for a
// month is the most recent one.
func trendHistory(snaps []*model.ReadinessSnapshot) []model.TrendPoint {
	seen := make(map[string]bool, len(snaps))
	points := make([]model.TrendPoint, 0, len(snaps))
	for _, snap := range snaps {
		period := snap.Timestamp.UTC().Format("2006-01")
		if seen[period] {
			continue
		}
		seen[period] = true
		points = append(points, model.TrendPoint{Period: period, Score: snap.Overall})
	}
	return points
}

// trendSeed derives the synthesis seed from the inventory's item IDs so
// repeated runs over the same evidence set produce identical trends.
func trendSeed(inv model.EvidenceInventory) uint32 {
	h := fnv.New32a()
	for _, item := range inv.Items {
		h.Write([]byte(item.ID)) //nolint:errcheck // fnv never fails
	}
	return h.Sum32()
}

func urgentGaps(gaps []model.EvidenceGap) []model.EvidenceGap {
	var urgent []model.EvidenceGap
	for _, gap := range gaps {
		if gap.Severity == types.SignalSeverityCritical || gap.Severity == types.SignalSeverityHigh {
			urgent = append(urgent, gap)
		}
	}
	return urgent
}

func deref(items []*model.EvidenceItem) []model.EvidenceItem {
	out := make([]model.EvidenceItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}
