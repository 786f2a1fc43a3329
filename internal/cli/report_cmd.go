package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"dashboard"},
		Short:   "Show totals, monthly figures and pipeline statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = app.now().Format("2006-01")
			}
			m, err := domain.ParseMonth(month)
			if err != nil {
				return err
			}
			state := app.State.Current()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(
				report.NewDashboard(state, m),
				report.Monthly(state),
				report.Pipeline(state),
				app.Currency,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "period month YYYY-MM (default current month)")

	return cmd
}
