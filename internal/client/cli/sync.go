package cli

import (
	"context"

	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/client/syncer"
)

func (a *App) Sync(ctx context.Context) error {
	res := a.syncer.SyncData(ctx)

	switch res.Outcome {
	case syncer.NotAttempted:
		a.println("Offline, sync not attempted. Changes will sync when the connection returns.")
	case syncer.Completed:
		a.printf("Synced %d records.\n", res.Synced)
	case syncer.Partial:
		a.printf("Synced %d records, %d still pending.\n", res.Synced, res.Failed)
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st := a.syncer.Status()

	last := "never"
	if st.LastSync > 0 {
		last = models.TimeOf(st.LastSync).Format("2006-01-02 15:04:05")
	}

	a.printf("State:     %s\n", a.syncer.State())
	a.printf("Last sync: %s\n", last)
	a.printf("Pending:   %d\n", st.PendingSync)
	if n := a.watcher.pendingTags(); n > 0 {
		a.printf("Wake-ups:  %d registered\n", n)
	}
	return nil
}
