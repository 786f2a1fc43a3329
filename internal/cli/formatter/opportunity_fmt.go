package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
)

// FormatOpportunities renders opportunities with their client names, looked
// up in clients.
func FormatOpportunities(opps []domain.Opportunity, clients []domain.Client, currency string) string {
	if len(opps) == 0 {
		return Dim("No opportunities.") + "\n"
	}
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.DisplayName()
	}

	rows := make([][]string, 0, len(opps))
	for _, o := range opps {
		client, ok := names[o.ClientID]
		if !ok {
			client = StyleRed.Render("? " + ShortID(o.ClientID))
		}
		rows = append(rows, []string{
			Dim(ShortID(o.ID)),
			Truncate(o.Title, 36),
			client,
			StagePill(o.Stage),
			Money(o.Value, currency),
		})
	}
	return RenderTable(
		[]string{"ID", "TITLE", "CLIENT", "STAGE", "VALUE"},
		rows,
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight,
	)
}

// FormatPipeline renders per-stage counts and values with a bar per stage
// scaled to the largest stage value.
func FormatPipeline(stats report.PipelineStats, currency string) string {
	var maxValue float64
	for _, s := range stats.Stages {
		maxValue = max(maxValue, s.Value.Float64())
	}

	rows := make([][]string, 0, len(stats.Stages))
	for _, s := range stats.Stages {
		frac := 0.0
		if maxValue > 0 {
			frac = s.Value.Float64() / maxValue
		}
		rows = append(rows, []string{
			StagePill(s.Stage),
			fmt.Sprintf("%d", s.Count),
			Money(s.Value, currency),
			RenderBar(frac, 20, StyleBlue.Render),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"STAGE", "COUNT", "VALUE", ""}, rows,
		AlignLeft, AlignRight, AlignRight, AlignLeft))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		Dim("open"), Money(stats.OpenValue, currency),
		Dim("won"), StyleGreen.Render(Money(stats.WonValue, currency)),
		Dim("win rate"), fmt.Sprintf("%.0f%%", stats.WinRate*100),
	)
	return b.String()
}
