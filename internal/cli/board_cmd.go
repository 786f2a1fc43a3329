package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive pipeline board",
		Long: `Show opportunities in one column per stage.

Arrows or j/k select a card, h/l or </> move it to the neighbouring stage,
1-5 move it straight to a stage, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("the board needs an interactive terminal; use 'bizbook opp move' instead")
			}
			p := tea.NewProgram(newBoardModel(app),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
