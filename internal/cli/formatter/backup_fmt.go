package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/domain"
)

// maxWarningsShown caps the warning list; the rest are counted.
const maxWarningsShown = 10

// FormatImportSummary describes what a decoded backup would replace the
// current state with.
func FormatImportSummary(res *backup.Result, current domain.AppState) string {
	var b strings.Builder
	b.WriteString(RenderTable(
		[]string{"", "CURRENT", "BACKUP"},
		[][]string{
			{"transactions", fmt.Sprint(len(current.Transactions)), fmt.Sprint(len(res.State.Transactions))},
			{"clients", fmt.Sprint(len(current.Clients)), fmt.Sprint(len(res.State.Clients))},
			{"opportunities", fmt.Sprint(len(current.Opportunities)), fmt.Sprint(len(res.State.Opportunities))},
		},
		AlignLeft, AlignRight, AlignRight,
	))
	if len(res.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleYellow.Render(fmt.Sprintf("%d record problems tolerated:", len(res.Warnings))))
		for i, w := range res.Warnings {
			if i == maxWarningsShown {
				fmt.Fprintf(&b, "  %s\n", Dim(fmt.Sprintf("… and %d more", len(res.Warnings)-maxWarningsShown)))
				break
			}
			fmt.Fprintf(&b, "  %s %s\n", Dim(w.Path), w.Message)
		}
	}
	return b.String()
}
