package notify

import (
	"context"

	"github.com/sustain-lab/esgradar/pkg/domain/model"
)

// Service delivers compliance alerts to the organization's channel
type Service interface {
	// NotifyGaps posts an alert summarizing urgent evidence gaps. An empty
	// gap list is a no-op.
	NotifyGaps(ctx context.Context, orgID string, gaps []model.EvidenceGap) error
}
