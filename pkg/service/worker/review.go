package worker

import (
	"context"
	"time"

	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/logging"
)

// ReviewWorker periodically re-runs the evidence review for a fixed set of
// organizations: it refreshes readiness snapshots (building up real trend
// history) and pushes urgent gap alerts through the notifier.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The watched organization list is static for the process lifetime
type ReviewWorker struct {
	uc       *usecase.UseCases
	orgIDs   []string
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReviewWorker creates a worker reviewing the given organizations
func NewReviewWorker(uc *usecase.UseCases, orgIDs []string, interval time.Duration) *ReviewWorker {
	return &ReviewWorker{
		uc:       uc,
		orgIDs:   orgIDs,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background review loop. Does not block server startup.
func (w *ReviewWorker) Start(ctx context.Context) error {
	logging.Default().Info("Review worker starting",
		"interval", w.interval.String(),
		"organizations", len(w.orgIDs))

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReviewWorker) Stop() {
	logging.Default().Info("Review worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Review worker stopped")
}

func (w *ReviewWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.reviewAll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reviewAll(ctx)

		case <-w.stopCh:
			logging.Default().Info("Review worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Review worker context cancelled")
			return
		}
	}
}

// reviewAll runs one review cycle. A failing organization is logged and
// skipped so one bad org never starves the rest.
func (w *ReviewWorker) reviewAll(ctx context.Context) {
	startTime := time.Now()

	for _, orgID := range w.orgIDs {
		gaps, err := w.uc.Evidence.Review(ctx, orgID)
		if err != nil {
			logging.Default().Error("Organization review failed (will retry next interval)",
				"organization_id", orgID,
				"error", err.Error())
			continue
		}

		logging.Default().Info("Organization reviewed",
			"organization_id", orgID,
			"gaps", len(gaps))
	}

	logging.Default().Info("Review cycle completed",
		"organizations", len(w.orgIDs),
		"duration", time.Since(startTime).String())
}
