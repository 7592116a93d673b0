package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]*model.ReadinessSnapshot // orgID -> append-only history
}

func newSnapshotRepository() *snapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[string][]*model.ReadinessSnapshot),
	}
}

func (r *snapshotRepository) Put(ctx context.Context, orgID string, snapshot *model.ReadinessSnapshot) error {
	if orgID == "" {
		return goerr.New("organization ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *snapshot
	r.snapshots[orgID] = append(r.snapshots[orgID], &stored)
	return nil
}

func (r *snapshotRepository) List(ctx context.Context, orgID string, limit int) ([]*model.ReadinessSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.snapshots[orgID]
	n := len(history)
	if limit > 0 && limit < n {
		n = limit
	}

	// newest first
	out := make([]*model.ReadinessSnapshot, 0, n)
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		copied := *history[i]
		out = append(out, &copied)
	}
	return out, nil
}
