package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type trendPointDocument struct {
	Period string `firestore:"period"`
	Score  int    `firestore:"score"`
}

type snapshotDocument struct {
	OrganizationID string               `firestore:"organization_id"`
	Timestamp      time.Time            `firestore:"timestamp"`
	Overall        int                  `firestore:"overall"`
	Environmental  int                  `firestore:"environmental"`
	Social         int                  `firestore:"social"`
	Governance     int                  `firestore:"governance"`
	ByRegulation   map[string]int       `firestore:"by_regulation"`
	Trend          []trendPointDocument `firestore:"trend"`
	NextReviewDate time.Time            `firestore:"next_review_date"`
}

func toSnapshotDocument(orgID string, snap *model.ReadinessSnapshot) snapshotDocument {
	trend := make([]trendPointDocument, len(snap.Trend))
	for i, p := range snap.Trend {
		trend[i] = trendPointDocument{Period: p.Period, Score: p.Score}
	}
	return snapshotDocument{
		OrganizationID: orgID,
		Timestamp:      snap.Timestamp,
		Overall:        snap.Overall,
		Environmental:  snap.ByPillar.Environmental,
		Social:         snap.ByPillar.Social,
		Governance:     snap.ByPillar.Governance,
		ByRegulation:   snap.ByRegulation,
		Trend:          trend,
		NextReviewDate: snap.NextReviewDate,
	}
}

func (d *snapshotDocument) toModel() *model.ReadinessSnapshot {
	trend := make([]model.TrendPoint, len(d.Trend))
	for i, p := range d.Trend {
		trend[i] = model.TrendPoint{Period: p.Period, Score: p.Score}
	}
	return &model.ReadinessSnapshot{
		Timestamp: d.Timestamp,
		Overall:   d.Overall,
		ByPillar: model.PillarScores{
			Environmental: d.Environmental,
			Social:        d.Social,
			Governance:    d.Governance,
		},
		ByRegulation:   d.ByRegulation,
		Trend:          trend,
		NextReviewDate: d.NextReviewDate,
	}
}

type snapshotRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSnapshotRepository(client *firestore.Client) *snapshotRepository {
	return &snapshotRepository{client: client}
}

func (r *snapshotRepository) collection() string {
	return collection(r.collectionPrefix, "snapshots")
}

func (r *snapshotRepository) Put(ctx context.Context, orgID string, snapshot *model.ReadinessSnapshot) error {
	if orgID == "" {
		return goerr.New("organization ID is required")
	}

	ref := r.client.Collection(r.collection()).Doc(uuid.NewString())
	if _, err := ref.Create(ctx, toSnapshotDocument(orgID, snapshot)); err != nil {
		return goerr.Wrap(err, "failed to store readiness snapshot", goerr.V("orgID", orgID))
	}
	return nil
}

func (r *snapshotRepository) List(ctx context.Context, orgID string, limit int) ([]*model.ReadinessSnapshot, error) {
	q := r.client.Collection(r.collection()).
		Where("organization_id", "==", orgID).
		OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.ReadinessSnapshot
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshots", goerr.V("orgID", orgID))
		}

		var doc snapshotDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode snapshot", goerr.V("doc", snap.Ref.ID))
		}
		snapshots = append(snapshots, doc.toModel())
	}
	return snapshots, nil
}
