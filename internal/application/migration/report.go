package migration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/storesync/migrator/internal/domain/migration"
)

// notificationSubject is the fixed subject of every run notification.
const notificationSubject = "Catalog migration run log"

// report dispatches the run's accumulated log as a single notification and
// then records the dispatch outcome. The outcome entry reaches the durable
// sink but is not retroactively part of the already-dispatched body.
func (s *Service) report(ctx context.Context, run *migration.Run) {
	body := fmt.Sprintf("%s\n\nRun %s finished at %s",
		run.Transcript(),
		run.ID,
		run.FinishedAt.UTC().Format(time.RFC1123),
	)

	if err := s.notifier.Send(ctx, notificationSubject, body); err != nil {
		run.Logf("Failed to send run notification: %v", err)
		s.logger.Error("Run notification dispatch failed",
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)
		return
	}
	run.Logf("Run notification sent")
}
