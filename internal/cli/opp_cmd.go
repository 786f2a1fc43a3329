package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
	"github.com/alexanderramin/bizbook/internal/service"
	"github.com/spf13/cobra"
)

func newOppCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opp",
		Aliases: []string{"opportunity", "opportunities", "deal"},
		Short:   "Manage sales opportunities",
	}

	cmd.AddCommand(
		newOppAddCmd(app),
		newOppListCmd(app),
		newOppMoveCmd(app),
		newOppEditCmd(app),
		newOppRemoveCmd(app),
	)

	return cmd
}

func newOppAddCmd(app *App) *cobra.Command {
	var title, value, client string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an opportunity in the Lead stage",
		Example: `  bizbook opp add --title "Website redesign" --value 4800 --client 3f2a`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseAmount(value)
			if err != nil {
				return err
			}
			clientID, err := resolveClientID(app, client)
			if err != nil {
				return err
			}
			o, err := app.Opportunities.Create(cmd.Context(), service.OpportunityInput{
				Title:    title,
				Value:    v,
				ClientID: clientID,
			})
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s  %s\n",
				formatter.StagePill(o.Stage),
				o.Title,
				formatter.Money(o.Value, app.Currency),
				formatter.Dim(formatter.ShortID(o.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "title (required)")
	cmd.Flags().StringVarP(&value, "value", "v", "", "estimated value (required)")
	cmd.Flags().StringVarP(&client, "client", "c", "", "client id or prefix (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func newOppListCmd(app *App) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List opportunities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opps, err := app.Opportunities.List(ctx)
			if err != nil {
				return err
			}
			if stage != "" {
				st, err := domain.ParseStage(stage)
				if err != nil {
					return err
				}
				filtered := opps[:0]
				for _, o := range opps {
					if o.Stage == st {
						filtered = append(filtered, o)
					}
				}
				opps = filtered
			}
			clients, err := app.Clients.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatOpportunities(opps, clients, app.Currency))
			if stage == "" && len(opps) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatPipeline(report.Pipeline(app.State.Current()), app.Currency))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&stage, "stage", "s", "", "only this stage")

	return cmd
}

func newOppMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <stage>",
		Short: "Move an opportunity to another stage",
		Long:  "Move an opportunity to any stage: Lead, Proposal, Negotiation, Won or Lost.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveOpportunityID(app, args[0])
			if err != nil {
				return err
			}
			st, err := domain.ParseStage(args[1])
			if err != nil {
				return err
			}
			o, err := app.Opportunities.MoveStage(cmd.Context(), id, st)
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s → %s\n", o.Title, formatter.StagePill(o.Stage))
			return nil
		},
	}
}

func newOppEditCmd(app *App) *cobra.Command {
	var title, value, client, stage string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of an opportunity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveOpportunityID(app, args[0])
			if err != nil {
				return err
			}
			o, err := app.Opportunities.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				o.Title = title
			}
			if flags.Changed("value") {
				if o.Value, err = domain.ParseAmount(value); err != nil {
					return err
				}
			}
			if flags.Changed("client") {
				if o.ClientID, err = resolveClientID(app, client); err != nil {
					return err
				}
			}
			if flags.Changed("stage") {
				if o.Stage, err = domain.ParseStage(stage); err != nil {
					return err
				}
			}

			if err := finish(cmd, app.Opportunities.Replace(ctx, o)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.ShortID(o.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&value, "value", "v", "", "new value")
	cmd.Flags().StringVarP(&client, "client", "c", "", "new client id or prefix")
	cmd.Flags().StringVarP(&stage, "stage", "s", "", "new stage")

	return cmd
}

func newOppRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an opportunity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveOpportunityID(app, args[0])
			if err != nil {
				return err
			}
			if err := finish(cmd, app.Opportunities.Delete(cmd.Context(), id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted opportunity %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
