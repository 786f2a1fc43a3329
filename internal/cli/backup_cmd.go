package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all data as a JSON document",
	}

	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
	)

	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write a backup document (\"-\" for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if path == "-" {
				data, err := backup.Export(app.State.Current())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := app.Backups.Export(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
}

func newBackupImportCmd(app *App) *cobra.Command {
	var yes, strict bool

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Replace all current data with a backup document",
		Long: `Replace all current data with a backup document.

The document must be a JSON object with "transactions", "clients" and
"opportunities" arrays. Fields with unexpected types are imported as empty
and reported. --strict rejects such documents instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := app.Backups.Load(ctx, args[0], backup.ImportOptions{Strict: strict})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatImportSummary(res, app.State.Current()))

			ok, err := confirmReplace(app, yes, "Replace all current data?", "This cannot be undone. Create a snapshot first to keep a copy.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Import cancelled.")
				return nil
			}

			_, err = app.Backups.Restore(ctx, res.State)
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintln(out, "Imported.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject documents that need any coercion or fail validation")

	return cmd
}
