package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/service"
	"github.com/spf13/cobra"
)

// SnapshotManager is the part of snapshot.Manager the CLI uses.
type SnapshotManager interface {
	Create(ctx context.Context, name string) (domain.Snapshot, error)
	List() []domain.Snapshot
	Get(id string) (domain.Snapshot, error)
	Restore(ctx context.Context, id string) (domain.AppState, error)
	Delete(ctx context.Context, id string) error
}

// StateReader exposes the live state to read-only commands.
type StateReader interface {
	Current() domain.AppState
}

// App holds references to everything CLI commands use.
type App struct {
	Transactions  service.TransactionService
	Clients       service.ClientService
	Opportunities service.OpportunityService
	Backups       service.BackupService
	Snapshots     SnapshotManager
	State         StateReader

	// Currency is the ISO 4217 code amounts are displayed in.
	Currency string

	// StartupWarnings are printed once before the first command runs.
	StartupWarnings []string

	// IsInteractive reports whether the user can answer prompts.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil means a huh confirm form.
	Confirm func(title, description string) (bool, error)
	// Now is the clock used for default dates and ages. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "bizbook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bizbook",
		Short:         "Bookkeeping, sales pipeline and snapshots for a small business",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			for _, w := range app.StartupWarnings {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(w))
			}
			app.StartupWarnings = nil
		},
	}

	root.AddCommand(
		newTxCmd(app),
		newClientCmd(app),
		newOppCmd(app),
		newBoardCmd(app),
		newSnapshotCmd(app),
		newBackupCmd(app),
		newReportCmd(app),
	)

	return root
}
