package interfaces

import (
	"context"

	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

// RadarConfigRepository defines persistence for organization assessment
// configurations, keyed by organization ID.
type RadarConfigRepository interface {
	// Save creates or replaces the config for its organization
	Save(ctx context.Context, orgID string, cfg *model.RiskRadarConfig) (*model.RiskRadarConfig, error)

	// Get retrieves the config for an organization
	Get(ctx context.Context, orgID string) (*model.RiskRadarConfig, error)
}

// EvidenceRepository defines persistence for the evidence inventory
type EvidenceRepository interface {
	// Create stores a new evidence item. The item ID must already be set.
	Create(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error)

	// Get retrieves an evidence item by ID
	Get(ctx context.Context, orgID, itemID string) (*model.EvidenceItem, error)

	// List retrieves the full inventory for an organization, oldest upload first
	List(ctx context.Context, orgID string) ([]*model.EvidenceItem, error)

	// Update replaces an existing evidence item
	Update(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error)

	// Delete removes an evidence item by ID
	Delete(ctx context.Context, orgID, itemID string) error
}

// SnapshotRepository defines persistence for readiness snapshot history.
// Stored snapshots feed the real trend series of later calculations.
type SnapshotRepository interface {
	// Put appends a readiness snapshot to the organization's history
	Put(ctx context.Context, orgID string, snapshot *model.ReadinessSnapshot) error

	// List retrieves up to limit snapshots, newest first
	List(ctx context.Context, orgID string, limit int) ([]*model.ReadinessSnapshot, error)
}

// Repository bundles all persistence concerns behind one handle
type Repository interface {
	RadarConfig() RadarConfigRepository
	Evidence() EvidenceRepository
	Snapshot() SnapshotRepository
	Close() error
}
