package cli

import (
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
		newClientEditCmd(app),
		newClientRemoveCmd(app),
	)

	return cmd
}

type clientFlags struct {
	name, company, email, phone string
}

func (f *clientFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.name, "name", "n", "", "contact name")
	fs.StringVarP(&f.company, "company", "c", "", "company")
	fs.StringVarP(&f.email, "email", "e", "", "email address")
	fs.StringVarP(&f.phone, "phone", "p", "", "phone number")
}

// apply copies the flags the user set onto c.
func (f *clientFlags) apply(fs *pflag.FlagSet, c *domain.Client) {
	if fs.Changed("name") {
		c.Name = f.name
	}
	if fs.Changed("company") {
		c.Company = f.company
	}
	if fs.Changed("email") {
		c.Email = f.email
	}
	if fs.Changed("phone") {
		c.Phone = f.phone
	}
}

func newClientAddCmd(app *App) *cobra.Command {
	var f clientFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			var c domain.Client
			f.apply(cmd.Flags(), &c)
			c, err := app.Clients.Create(cmd.Context(), c)
			if err := finish(cmd, err); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added client %s  %s\n",
				formatter.Bold(c.DisplayName()), formatter.Dim(formatter.ShortID(c.ID)))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients with their open pipeline value",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := report.ClientSummary(app.State.Current())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClients(rows, app.Currency))
			return nil
		},
	}
}

func newClientEditCmd(app *App) *cobra.Command {
	var f clientFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace fields of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveClientID(app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Clients.Get(ctx, id)
			if err != nil {
				return err
			}
			f.apply(cmd.Flags(), &c)
			if err := finish(cmd, app.Clients.Replace(ctx, c)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %s\n", formatter.Bold(c.DisplayName()))
			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func newClientRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a client that has no opportunities",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveClientID(app, args[0])
			if err != nil {
				return err
			}
			if err := finish(cmd, app.Clients.Delete(cmd.Context(), id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %s\n", formatter.ShortID(id))
			return nil
		},
	}
}
