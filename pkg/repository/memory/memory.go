// Package memory is an in-memory repository backend for development and
// tests. All data is lost on process exit.
package memory

import (
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
)

type Memory struct {
	radarConfig *radarConfigRepository
	evidence    *evidenceRepository
	snapshot    *snapshotRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		radarConfig: newRadarConfigRepository(),
		evidence:    newEvidenceRepository(),
		snapshot:    newSnapshotRepository(),
	}
}

func (m *Memory) RadarConfig() interfaces.RadarConfigRepository {
	return m.radarConfig
}

func (m *Memory) Evidence() interfaces.EvidenceRepository {
	return m.evidence
}

func (m *Memory) Snapshot() interfaces.SnapshotRepository {
	return m.snapshot
}

func (m *Memory) Close() error {
	return nil
}
