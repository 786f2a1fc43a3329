package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/service"
	"github.com/spf13/cobra"
)

func newTxCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction", "transactions"},
		Short:   "Manage revenue and expense transactions",
	}

	cmd.AddCommand(
		newTxAddCmd(app),
		newTxListCmd(app),
		newTxEditCmd(app),
		newTxRemoveCmd(app),
	)

	return cmd
}

func newTxAddCmd(app *App) *cobra.Command {
	var desc, amount, date, typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Example: `  bizbook tx add --type revenue --amount 1500 --desc "Invoice #12"
  bizbook tx add --type expense --amount 49.90 --desc Hosting --date 2024-05-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := domain.ParseAmount(amount)
			if err != nil {
				return err
			}
			if date == "" {
				date = app.now().Format(domain.DateLayout)
			}
			tx, err := app.Transactions.Create(cmd.Context(), service.TransactionInput{
				Description: desc,
				Amount:      amt,
				Date:        date,
				Type:        domain.TransactionType(typ),
			})
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s  %s\n",
				formatter.TypeBadge(tx.Type),
				formatter.MoneyStyled(tx.Amount, app.Currency),
				tx.Description,
				formatter.Dim(formatter.ShortID(tx.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description (required)")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, without sign (required)")
	cmd.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&typ, "type", "t", string(domain.TypeRevenue), "revenue or expense")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newTxListCmd(app *App) *cobra.Command {
	var month, typ, query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if typ != "" {
				if _, err := domain.ParseTransactionType(typ); err != nil {
					return err
				}
			}
			txs, err := app.Transactions.List(cmd.Context(), service.TransactionFilter{
				Month: month,
				Type:  domain.TransactionType(typ),
				Query: query,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransactions(txs, app.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "only revenue or expense")
	cmd.Flags().StringVarP(&query, "search", "s", "", "description contains")

	return cmd
}

func newTxEditCmd(app *App) *cobra.Command {
	var desc, amount, date, typ string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of a transaction",
		Long: `Replace fields of a transaction. The stored amount keeps its sign unless
--amount is given, in which case it is signed by the (new) type. Changing
--type alone fails when the existing amount has the wrong sign.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTransactionID(app, args[0])
			if err != nil {
				return err
			}
			tx, err := app.Transactions.Get(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("desc") {
				tx.Description = desc
			}
			if cmd.Flags().Changed("date") {
				if tx.Date, err = domain.ParseDate(date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("type") {
				if tx.Type, err = domain.ParseTransactionType(typ); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("amount") {
				amt, err := domain.ParseAmount(amount)
				if err != nil {
					return err
				}
				tx.Amount = domain.SignedAmount(tx.Type, amt)
			}

			if err := finish(cmd, app.Transactions.Replace(ctx, tx)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.ShortID(tx.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "d", "", "new description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount, without sign")
	cmd.Flags().StringVar(&date, "date", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "new type")

	return cmd
}

func newTxRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTransactionID(app, args[0])
			if err != nil {
				return err
			}
			if err := finish(cmd, app.Transactions.Delete(cmd.Context(), id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
