package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/bizbook/internal/cli/formatter"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// errNotConfirmed is returned when a destructive command needs --yes.
var errNotConfirmed = errors.New("refusing to replace data without confirmation in a non-interactive session (use --yes)")

// bizbookHuhTheme returns a huh theme using the formatter palette.
func bizbookHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// confirmForm builds a themed yes/no form defaulting to "No".
func confirmForm(title, description string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Replace").
				Negative("Cancel").
				Value(value),
		),
	).WithTheme(bizbookHuhTheme()).WithShowHelp(false)
}

func huhConfirm(title, description string) (bool, error) {
	var ok bool
	if err := confirmForm(title, description, &ok).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// confirmReplace asks before the live state is overwritten. --yes skips the
// question; without a terminal the command is refused.
func confirmReplace(app *App, yes bool, title, description string) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, errNotConfirmed
	}
	ask := app.Confirm
	if ask == nil {
		ask = huhConfirm
	}
	return ask(title, description)
}

// finish turns a persistence failure into a printed warning: the change is
// in effect for this session but was not saved.
func finish(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrPersistence) {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(fmt.Sprintf("change applied but not saved: %v", err)))
		return nil
	}
	return err
}
