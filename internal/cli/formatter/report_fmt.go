package formatter

import (
	"strings"

	"github.com/alexanderramin/bizbook/internal/report"
)

// FormatDashboard renders the all-time and monthly totals side by side.
func FormatDashboard(d report.Dashboard, currency string) string {
	row := func(label string, t report.Totals) []string {
		return []string{
			label,
			StyleGreen.Render(Money(t.Revenue, currency)),
			StyleRed.Render(Money(t.Expenses.Abs(), currency)),
			MoneyStyled(t.Balance, currency),
		}
	}
	rows := [][]string{row("All time", d.AllTime)}
	if d.Period != "" {
		rows = append(rows, row(d.Period, d.Month))
	}
	return RenderTable([]string{"", "REVENUE", "EXPENSES", "BALANCE"}, rows,
		AlignLeft, AlignRight, AlignRight, AlignRight)
}

// FormatMonthly renders one row per month with revenue and expense bars
// scaled to the largest monthly figure.
func FormatMonthly(months []report.MonthTotals, currency string) string {
	if len(months) == 0 {
		return Dim("No transactions.") + "\n"
	}
	var peak float64
	for _, m := range months {
		peak = max(peak, m.Revenue.Float64(), m.Expenses.Abs().Float64())
	}
	frac := func(v float64) float64 {
		if peak == 0 {
			return 0
		}
		return v / peak
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		label := m.Month
		if label == "" {
			label = "undated"
		}
		rows = append(rows, []string{
			label,
			Money(m.Revenue, currency),
			RenderBar(frac(m.Revenue.Float64()), 12, StyleGreen.Render),
			Money(m.Expenses.Abs(), currency),
			RenderBar(frac(m.Expenses.Abs().Float64()), 12, StyleRed.Render),
			MoneyStyled(m.Balance, currency),
		})
	}
	return RenderTable([]string{"MONTH", "REVENUE", "", "EXPENSES", "", "BALANCE"}, rows,
		AlignLeft, AlignRight, AlignLeft, AlignRight, AlignLeft, AlignRight)
}

// FormatReport renders the full report: dashboard, monthly chart and pipeline.
func FormatReport(d report.Dashboard, months []report.MonthTotals, pipeline report.PipelineStats, currency string) string {
	var b strings.Builder
	b.WriteString(Header("Totals") + "\n")
	b.WriteString(FormatDashboard(d, currency))
	b.WriteString("\n" + Header("By month") + "\n")
	b.WriteString(FormatMonthly(months, currency))
	b.WriteString("\n" + Header("Pipeline") + "\n")
	b.WriteString(FormatPipeline(pipeline, currency))
	return b.String()
}
