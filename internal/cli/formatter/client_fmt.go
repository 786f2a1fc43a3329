package formatter

import (
	"strconv"

	"github.com/alexanderramin/bizbook/internal/report"
)

// FormatClients renders one row per client with their pipeline figures.
func FormatClients(rows []report.ClientStats, currency string) string {
	if len(rows) == 0 {
		return Dim("No clients.") + "\n"
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			Dim(ShortID(r.Client.ID)),
			Bold(r.Client.Name),
			r.Client.Company,
			r.Client.Email,
			r.Client.Phone,
			strconv.Itoa(r.Opportunities),
			Money(r.OpenValue, currency),
		})
	}
	return RenderTable(
		[]string{"ID", "NAME", "COMPANY", "EMAIL", "PHONE", "OPPS", "OPEN"},
		out,
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight,
	)
}
