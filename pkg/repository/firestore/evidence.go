package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type evidenceFileDocument struct {
	Name        string `firestore:"name"`
	Size        int64  `firestore:"size"`
	ContentType string `firestore:"content_type"`
	URL         string `firestore:"url"`
}

type evidenceMetadataDocument struct {
	Frameworks  []string `firestore:"frameworks"`
	Regulations []string `firestore:"regulations"`
	Tags        []string `firestore:"tags"`
	Version     string   `firestore:"version"`
	Author      string   `firestore:"author"`
}

type evidenceDocument struct {
	ID             string                   `firestore:"id"`
	OrganizationID string                   `firestore:"organization_id"`
	Title          string                   `firestore:"title"`
	Description    string                   `firestore:"description"`
	Type           string                   `firestore:"type"`
	Category       string                   `firestore:"category"`
	Status         string                   `firestore:"status"`
	UploadedAt     time.Time                `firestore:"uploaded_at"`
	ExpiresAt      *time.Time               `firestore:"expires_at"`
	File           *evidenceFileDocument    `firestore:"file"`
	Metadata       evidenceMetadataDocument `firestore:"metadata"`
	Links          []string                 `firestore:"links"`
	ReadinessScore int                      `firestore:"readiness_score"`
}

func toEvidenceDocument(orgID string, item *model.EvidenceItem) evidenceDocument {
	doc := evidenceDocument{
		ID:             item.ID,
		OrganizationID: orgID,
		Title:          item.Title,
		Description:    item.Description,
		Type:           item.Type.String(),
		Category:       item.Category.String(),
		Status:         item.Status.String(),
		UploadedAt:     item.UploadedAt,
		ExpiresAt:      item.ExpiresAt,
		Metadata: evidenceMetadataDocument{
			Frameworks:  item.Metadata.Frameworks,
			Regulations: item.Metadata.Regulations,
			Tags:        item.Metadata.Tags,
			Version:     item.Metadata.Version,
			Author:      item.Metadata.Author,
		},
		Links:          item.Links,
		ReadinessScore: item.ReadinessScore,
	}
	if item.File != nil {
		doc.File = &evidenceFileDocument{
			Name:        item.File.Name,
			Size:        item.File.Size,
			ContentType: item.File.ContentType,
			URL:         item.File.URL,
		}
	}
	return doc
}

func (d *evidenceDocument) toModel() *model.EvidenceItem {
	item := &model.EvidenceItem{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Type:        types.EvidenceType(d.Type),
		Category:    types.Pillar(d.Category),
		Status:      types.EvidenceStatus(d.Status),
		UploadedAt:  d.UploadedAt,
		ExpiresAt:   d.ExpiresAt,
		Metadata: model.EvidenceMetadata{
			Frameworks:  d.Metadata.Frameworks,
			Regulations: d.Metadata.Regulations,
			Tags:        d.Metadata.Tags,
			Version:     d.Metadata.Version,
			Author:      d.Metadata.Author,
		},
		Links:          d.Links,
		ReadinessScore: d.ReadinessScore,
	}
	if d.File != nil {
		item.File = &model.EvidenceFile{
			Name:        d.File.Name,
			Size:        d.File.Size,
			ContentType: d.File.ContentType,
			URL:         d.File.URL,
		}
	}
	return item
}

type evidenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEvidenceRepository(client *firestore.Client) *evidenceRepository {
	return &evidenceRepository{client: client}
}

func (r *evidenceRepository) collection() string {
	return collection(r.collectionPrefix, "evidence")
}

func (r *evidenceRepository) docID(orgID, itemID string) string {
	return orgID + "_" + itemID
}

func (r *evidenceRepository) Create(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	if item.ID == "" {
		return nil, goerr.New("evidence item ID is required")
	}

	ref := r.client.Collection(r.collection()).Doc(r.docID(orgID, item.ID))
	if _, err := ref.Create(ctx, toEvidenceDocument(orgID, item)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(ErrAlreadyExists, "evidence item already exists", goerr.V("id", item.ID))
		}
		return nil, goerr.Wrap(err, "failed to create evidence item", goerr.V("id", item.ID))
	}

	out := *item
	return &out, nil
}

func (r *evidenceRepository) Get(ctx context.Context, orgID, itemID string) (*model.EvidenceItem, error) {
	snap, err := r.client.Collection(r.collection()).Doc(r.docID(orgID, itemID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", itemID))
		}
		return nil, goerr.Wrap(err, "failed to get evidence item", goerr.V("id", itemID))
	}

	var doc evidenceDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode evidence item", goerr.V("id", itemID))
	}
	return doc.toModel(), nil
}

func (r *evidenceRepository) List(ctx context.Context, orgID string) ([]*model.EvidenceItem, error) {
	iter := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID).
		OrderBy("uploaded_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var items []*model.EvidenceItem
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate evidence items", goerr.V("orgID", orgID))
		}

		var doc evidenceDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode evidence item", goerr.V("doc", snap.Ref.ID))
		}
		items = append(items, doc.toModel())
	}
	return items, nil
}

func (r *evidenceRepository) Update(ctx context.Context, orgID string, item *model.EvidenceItem) (*model.EvidenceItem, error) {
	ref := r.client.Collection(r.collection()).Doc(r.docID(orgID, item.ID))
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", item.ID))
		}
		return nil, goerr.Wrap(err, "failed to check evidence item", goerr.V("id", item.ID))
	}

	if _, err := ref.Set(ctx, toEvidenceDocument(orgID, item)); err != nil {
		return nil, goerr.Wrap(err, "failed to update evidence item", goerr.V("id", item.ID))
	}

	out := *item
	return &out, nil
}

func (r *evidenceRepository) Delete(ctx context.Context, orgID, itemID string) error {
	ref := r.client.Collection(r.collection()).Doc(r.docID(orgID, itemID))
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "evidence item not found", goerr.V("id", itemID))
		}
		return goerr.Wrap(err, "failed to check evidence item", goerr.V("id", itemID))
	}

	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete evidence item", goerr.V("id", itemID))
	}
	return nil
}
