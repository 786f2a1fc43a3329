package service

import (
	"context"
	"time"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/domain"
)

type backupService struct {
	states   StateStore
	observer UseCaseObserver
}

func NewBackupService(states StateStore, observers ...UseCaseObserver) BackupService {
	return &backupService{
		states:   states,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Export writes the current state to path.
func (s *backupService) Export(ctx context.Context, path string) (err error) {
	startedAt := time.Now()
	st := s.states.Current()
	defer func() {
		track(ctx, s.observer, "export-backup", startedAt, map[string]any{
			"path":          path,
			"transactions":  len(st.Transactions),
			"clients":       len(st.Clients),
			"opportunities": len(st.Opportunities),
		}, err)
	}()
	return backup.WriteFile(path, st)
}

// Load decodes the backup at path without applying it.
func (s *backupService) Load(ctx context.Context, path string, opts backup.ImportOptions) (res *backup.Result, err error) {
	startedAt := time.Now()
	fields := map[string]any{"path": path, "strict": opts.Strict}
	defer func() { track(ctx, s.observer, "load-backup", startedAt, fields, err) }()

	res, err = backup.ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	fields["warnings"] = len(res.Warnings)
	return res, nil
}

// Restore replaces the whole live state with state. Callers obtain the
// user's confirmation first; there is no undo beyond a snapshot.
func (s *backupService) Restore(ctx context.Context, state domain.AppState) (next domain.AppState, err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "restore-backup", startedAt, nil, err) }()

	replacement := state.Normalize().Clone()
	return s.states.Apply(ctx, func(domain.AppState) (domain.AppState, error) {
		return replacement, nil
	})
}
