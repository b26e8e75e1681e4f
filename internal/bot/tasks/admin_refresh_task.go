package tasks

import (
	"context"
	"errors"
	"fmt"

	"bizwatchbot/internal/store"
)

// newAdminRefreshTask creates the task that re-persists the administrator
// identity record. The record carries the same TTL as snapshots and would
// otherwise expire on a deployment whose administrator never re-registers.
func newAdminRefreshTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "admin_refresh")

	return func(ctx context.Context) error {
		err := deps.Admin.Refresh(ctx)
		if errors.Is(err, store.ErrNoAdmin) {
			log.InfoContext(ctx, "No administrator registered, nothing to refresh")
			return nil
		}
		if err != nil {
			return fmt.Errorf("administrator identity refresh failed: %w", err)
		}

		log.InfoContext(ctx, "Refreshed administrator identity TTL")
		return nil
	}
}
