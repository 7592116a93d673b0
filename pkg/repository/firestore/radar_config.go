package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type radarConfigDocument struct {
	OrganizationID   string    `firestore:"organization_id"`
	SectorCode       string    `firestore:"sector_code"`
	Geographies      []string  `firestore:"geographies"`
	SupplyChainTiers int       `firestore:"supply_chain_tiers"`
	CreatedAt        time.Time `firestore:"created_at"`
	UpdatedAt        time.Time `firestore:"updated_at"`
}

func (d *radarConfigDocument) toModel() *model.RiskRadarConfig {
	return &model.RiskRadarConfig{
		OrganizationID:   d.OrganizationID,
		SectorCode:       d.SectorCode,
		Geographies:      d.Geographies,
		SupplyChainTiers: d.SupplyChainTiers,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type radarConfigRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRadarConfigRepository(client *firestore.Client) *radarConfigRepository {
	return &radarConfigRepository{client: client}
}

func (r *radarConfigRepository) collection() string {
	return collection(r.collectionPrefix, "radar_configs")
}

func (r *radarConfigRepository) Save(ctx context.Context, orgID string, cfg *model.RiskRadarConfig) (*model.RiskRadarConfig, error) {
	if orgID == "" {
		return nil, goerr.New("organization ID is required")
	}

	ref := r.client.Collection(r.collection()).Doc(orgID)

	now := time.Now().UTC()
	doc := radarConfigDocument{
		OrganizationID:   orgID,
		SectorCode:       cfg.SectorCode,
		Geographies:      cfg.Geographies,
		SupplyChainTiers: cfg.SupplyChainTiers,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// keep the original creation time on overwrite
	if snap, err := ref.Get(ctx); err == nil {
		var existing radarConfigDocument
		if err := snap.DataTo(&existing); err == nil && !existing.CreatedAt.IsZero() {
			doc.CreatedAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check existing radar config", goerr.V("orgID", orgID))
	}

	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to save radar config", goerr.V("orgID", orgID))
	}
	return doc.toModel(), nil
}

func (r *radarConfigRepository) Get(ctx context.Context, orgID string) (*model.RiskRadarConfig, error) {
	snap, err := r.client.Collection(r.collection()).Doc(orgID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "radar config not found", goerr.V("orgID", orgID))
		}
		return nil, goerr.Wrap(err, "failed to get radar config", goerr.V("orgID", orgID))
	}

	var doc radarConfigDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode radar config", goerr.V("orgID", orgID))
	}
	return doc.toModel(), nil
}
