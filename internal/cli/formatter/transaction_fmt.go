package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
)

// FormatTransactions renders transactions as a table followed by their totals.
func FormatTransactions(txs []domain.Transaction, currency string) string {
	if len(txs) == 0 {
		return Dim("No transactions.") + "\n"
	}

	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			Dim(ShortID(t.ID)),
			t.Date,
			TypeBadge(t.Type),
			Truncate(t.Description, 40),
			MoneyStyled(t.Amount, currency),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(
		[]string{"ID", "DATE", "TYPE", "DESCRIPTION", "AMOUNT"},
		rows,
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight,
	))
	b.WriteString("\n")
	b.WriteString(formatTotalsLine(report.TotalsFor(domain.AppState{Transactions: txs}, ""), currency))
	b.WriteString("\n")
	return b.String()
}

func formatTotalsLine(t report.Totals, currency string) string {
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		Dim("revenue"), StyleGreen.Render(Money(t.Revenue, currency)),
		Dim("expenses"), StyleRed.Render(Money(t.Expenses.Abs(), currency)),
		Dim("balance"), MoneyStyled(t.Balance, currency),
	)
}
