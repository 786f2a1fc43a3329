package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/report"
	"github.com/stretchr/testify/assert"
)

func sampleState() domain.AppState {
	return domain.AppState{
		Transactions: []domain.Transaction{
			{ID: "t1-aaaaaaaa", Description: "Invoice", Amount: domain.MustAmount("1500"), Date: "2024-05-03", Type: domain.TypeRevenue},
			{ID: "t2-bbbbbbbb", Description: "Rent", Amount: domain.MustAmount("-700"), Date: "2024-05-05", Type: domain.TypeExpense},
		},
		Clients: []domain.Client{{ID: "c1", Name: "Ada", Company: "Acme"}},
		Opportunities: []domain.Opportunity{
			{ID: "o1", Title: "Retainer", Value: domain.MustAmount("1000"), ClientID: "c1", Stage: domain.StageWon},
			{ID: "o2", Title: "Orphan", Value: domain.MustAmount("10"), ClientID: "gone", Stage: domain.StageLead},
		},
	}
}

func TestFormatTransactions(t *testing.T) {
	out := stripANSI(FormatTransactions(sampleState().Transactions, "USD"))
	assert.Contains(t, out, "t1-aaaaa")
	assert.Contains(t, out, "Invoice")
	assert.Contains(t, out, "-$700.00")
	assert.Contains(t, out, "balance $800.00")
	assert.Contains(t, out, "expenses $700.00")
}

func TestFormatTransactions_Empty(t *testing.T) {
	assert.Equal(t, "No transactions.\n", stripANSI(FormatTransactions(nil, "USD")))
}

func TestFormatOpportunities_MissingClient(t *testing.T) {
	st := sampleState()
	out := stripANSI(FormatOpportunities(st.Opportunities, st.Clients, "USD"))
	assert.Contains(t, out, "Ada (Acme)")
	assert.Contains(t, out, "? gone")
	assert.Contains(t, out, "● Won")
}

func TestFormatClients(t *testing.T) {
	out := stripANSI(FormatClients(report.ClientSummary(sampleState()), "USD"))
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "$0.00")
}

func TestFormatReport(t *testing.T) {
	st := sampleState()
	out := stripANSI(FormatReport(
		report.NewDashboard(st, "2024-05"),
		report.Monthly(st),
		report.Pipeline(st),
		"USD",
	))
	assert.Contains(t, out, "TOTALS")
	assert.Contains(t, out, "All time")
	assert.Contains(t, out, "2024-05")
	assert.Contains(t, out, "BY MONTH")
	assert.Contains(t, out, "win rate 100%")
}

func TestFormatMonthly_LabelsUndatedRow(t *testing.T) {
	st := sampleState()
	st.Transactions = append(st.Transactions, domain.Transaction{
		ID: "t3", Description: "Cash", Amount: domain.MustAmount("-30"), Type: domain.TypeExpense,
	})
	out := stripANSI(FormatMonthly(report.Monthly(st), "USD"))
	assert.Contains(t, out, "undated")
	assert.Contains(t, out, "2024-05")
}

func TestFormatSnapshots(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	out := stripANSI(FormatSnapshots([]domain.Snapshot{
		{ID: "s1", Name: "Q1", Timestamp: now.Add(-2 * time.Hour), Data: sampleState()},
	}, now))
	assert.Contains(t, out, "Q1")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "2/1/2")
}

func TestFormatImportSummary_CapsWarnings(t *testing.T) {
	res := &backup.Result{State: sampleState()}
	for i := 0; i < maxWarningsShown+3; i++ {
		res.Warnings = append(res.Warnings, backup.Warning{Path: "transactions[0].amount", Message: "amount given as string"})
	}
	out := stripANSI(FormatImportSummary(res, domain.EmptyState()))
	assert.Contains(t, out, "13 record problems tolerated")
	assert.Contains(t, out, "… and 3 more")
	assert.Equal(t, maxWarningsShown, strings.Count(out, "amount given as string"))
}
