// Package report computes read-only aggregates over an AppState. Nothing in
// this package mutates its input.
package report

import (
	"sort"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// Totals summarizes a set of transactions. Expenses is the sum of the signed
// expense amounts and is therefore zero or negative; Balance is
// Revenue + Expenses.
type Totals struct {
	Balance  domain.Amount
	Revenue  domain.Amount
	Expenses domain.Amount
}

// Add combines two totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Balance:  t.Balance.Add(o.Balance),
		Revenue:  t.Revenue.Add(o.Revenue),
		Expenses: t.Expenses.Add(o.Expenses),
	}
}

// TotalsFor sums the transactions in period, a YYYY-MM month key. An empty
// period covers every transaction.
func TotalsFor(state domain.AppState, period string) Totals {
	if period == "" {
		return sumTransactions(state.Transactions, allTransactions)
	}
	return sumTransactions(state.Transactions, func(t domain.Transaction) bool {
		return t.InMonth(period)
	})
}

func allTransactions(domain.Transaction) bool { return true }

// sumTransactions is the single definition of a total. Both the all-time and
// the per-month figures go through it.
func sumTransactions(txs []domain.Transaction, include func(domain.Transaction) bool) Totals {
	var t Totals
	for _, tx := range txs {
		if !include(tx) {
			continue
		}
		t.Balance = t.Balance.Add(tx.Amount)
		switch tx.Type {
		case domain.TypeRevenue:
			t.Revenue = t.Revenue.Add(tx.Amount)
		case domain.TypeExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	return t
}

// Dashboard pairs the all-time totals with those of one month.
type Dashboard struct {
	Period  string
	AllTime Totals
	Month   Totals
}

// NewDashboard computes both scopes from the same state.
func NewDashboard(state domain.AppState, period string) Dashboard {
	return Dashboard{
		Period:  period,
		AllTime: TotalsFor(state, ""),
		Month:   TotalsFor(state, period),
	}
}

// Months returns the distinct month keys present in the transactions, oldest
// first. Transactions without a date share the key "", which sorts first.
func Months(state domain.AppState) []string {
	seen := make(map[string]bool)
	var months []string
	for _, tx := range state.Transactions {
		m := tx.MonthKey()
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)
	return months
}

// MonthTotals is one row of a monthly breakdown.
type MonthTotals struct {
	Month string
	Totals
}

// Monthly returns per-month totals for every month in Months, oldest first.
// Each transaction lands in exactly one row, so the rows add up to the
// all-time totals.
func Monthly(state domain.AppState) []MonthTotals {
	months := Months(state)
	out := make([]MonthTotals, 0, len(months))
	for _, m := range months {
		out = append(out, MonthTotals{
			Month:  m,
			Totals: sumTransactions(state.Transactions, monthKeyIs(m)),
		})
	}
	return out
}

// monthKeyIs matches on the month key alone. Unlike TotalsFor, an empty key
// selects undated transactions rather than all of them.
func monthKeyIs(month string) func(domain.Transaction) bool {
	return func(t domain.Transaction) bool {
		return t.MonthKey() == month
	}
}
