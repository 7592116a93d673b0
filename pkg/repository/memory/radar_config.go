package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

type radarConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]*model.RiskRadarConfig
}

func newRadarConfigRepository() *radarConfigRepository {
	return &radarConfigRepository{
		configs: make(map[string]*model.RiskRadarConfig),
	}
}

func (r *radarConfigRepository) Save(ctx context.Context, orgID string, cfg *model.RiskRadarConfig) (*model.RiskRadarConfig, error) {
	if orgID == "" {
		return nil, goerr.New("organization ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	saved := *cfg
	saved.OrganizationID = orgID
	saved.UpdatedAt = now
	if existing, ok := r.configs[orgID]; ok {
		saved.CreatedAt = existing.CreatedAt
	} else {
		saved.CreatedAt = now
	}

	r.configs[orgID] = &saved

	out := saved
	return &out, nil
}

func (r *radarConfigRepository) Get(ctx context.Context, orgID string) (*model.RiskRadarConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[orgID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "radar config not found", goerr.V("orgID", orgID))
	}

	// Return a copy to prevent external modification
	out := *cfg
	return &out, nil
}
