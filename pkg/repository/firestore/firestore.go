// Package firestore is the production repository backend, storing radar
// configs, evidence items, and readiness snapshots in Cloud Firestore.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
)

type Firestore struct {
	client      *firestore.Client
	radarConfig *radarConfigRepository
	evidence    *evidenceRepository
	snapshot    *snapshotRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for tests sharing
// one Firestore database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.radarConfig.collectionPrefix = prefix
		f.evidence.collectionPrefix = prefix
		f.snapshot.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:      client,
		radarConfig: newRadarConfigRepository(client),
		evidence:    newEvidenceRepository(client),
		snapshot:    newSnapshotRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) RadarConfig() interfaces.RadarConfigRepository {
	return f.radarConfig
}

func (f *Firestore) Evidence() interfaces.EvidenceRepository {
	return f.evidence
}

func (f *Firestore) Snapshot() interfaces.SnapshotRepository {
	return f.snapshot
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collection(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
