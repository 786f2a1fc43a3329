package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap", "snapshots"},
		Short:   "Save and restore named copies of all data",
	}

	cmd.AddCommand(
		newSnapshotCreateCmd(app),
		newSnapshotListCmd(app),
		newSnapshotRestoreCmd(app),
		newSnapshotRemoveCmd(app),
	)

	return cmd
}

func newSnapshotCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Save the current data under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshots.Create(cmd.Context(), args[0])
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created snapshot %s  %s\n",
				formatter.Bold(snap.Name), formatter.Dim(formatter.ShortID(snap.ID)))
			return nil
		},
	}
}

func newSnapshotListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshots(app.Snapshots.List(), app.now()))
			return nil
		},
	}
}

func newSnapshotRestoreCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace all current data with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSnapshotID(app, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Snapshots.Get(id)
			if err != nil {
				return err
			}

			desc := fmt.Sprintf("%d transactions, %d clients, %d opportunities from %s. Current data is replaced.",
				len(snap.Data.Transactions), len(snap.Data.Clients), len(snap.Data.Opportunities),
				snap.Timestamp.Local().Format("2006-01-02 15:04"))
			ok, err := confirmReplace(app, yes, fmt.Sprintf("Restore snapshot %q?", snap.Name), desc)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled.")
				return nil
			}

			_, err = app.Snapshots.Restore(cmd.Context(), id)
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored snapshot %s\n", formatter.Bold(snap.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	return cmd
}

func newSnapshotRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSnapshotID(app, args[0])
			if err != nil {
				return err
			}
			if err := finish(cmd, app.Snapshots.Delete(cmd.Context(), id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
