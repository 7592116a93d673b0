package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

type evidenceRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]*model.EvidenceItem // orgID -> itemID -> item
}

func newEvidenceRepository() *evidenceRepository {
	return &evidenceRepository{
		items: make(map[string]map[string]*model.EvidenceItem),
	}
}

func (r *evidenceRepository) Create(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	if item.ID == "" {
		return nil, goerr.New("evidence item ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	org, ok := r.items[orgID]
	if !ok {
		org = make(map[string]*model.EvidenceItem)
		r.items[orgID] = org
	}
	if _, exists := org[item.ID]; exists {
		return nil, goerr.Wrap(ErrAlreadyExists, "evidence item already exists", goerr.V("id", item.ID))
	}

	stored := *item
	org[item.ID] = &stored

	out := stored
	return &out, nil
}

func (r *evidenceRepository) Get(ctx context.Context, orgID, itemID string) (*model.EvidenceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orgID][itemID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", itemID))
	}

	out := *item
	return &out, nil
}

func (r *evidenceRepository) List(ctx context.Context, orgID string) ([]*model.EvidenceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org := r.items[orgID]
	items := make([]*model.EvidenceItem, 0, len(org))
	for _, item := range org {
		copied := *item
		items = append(items, &copied)
	}

	// deterministic order: oldest upload first, ID as tiebreak
	sort.Slice(items, func(i, j int) bool {
		if !items[i].UploadedAt.Equal(items[j].UploadedAt) {
			return items[i].UploadedAt.Before(items[j].UploadedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *evidenceRepository) Update(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	org := r.items[orgID]
	if _, ok := org[item.ID]; !ok {
		return nil, goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", item.ID))
	}

	stored := *item
	org[item.ID] = &stored

	out := stored
	return &out, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, orgID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	org := r.items[orgID]
	if _, ok := org[itemID]; !ok {
		return goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", itemID))
	}

	delete(org, itemID)
	return nil
}
