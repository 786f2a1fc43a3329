package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for transaction dates.
const DateLayout = "2006-01-02"

type TransactionType string

const (
	TypeRevenue TransactionType = "revenue"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType validates a user-supplied type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeRevenue, TypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("%w: transaction type %q must be %q or %q", ErrValidation, s, TypeRevenue, TypeExpense)
}

// Transaction is a single revenue or expense entry. Amount is signed:
// positive for revenue, negative for expense.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
}

// MonthKey returns the YYYY-MM portion of the transaction date.
func (t Transaction) MonthKey() string {
	return MonthKey(t.Date)
}

// InMonth reports whether the transaction date falls in the given YYYY-MM month.
func (t Transaction) InMonth(month string) bool {
	return month != "" && t.MonthKey() == month
}

// MonthKey returns the YYYY-MM prefix of a YYYY-MM-DD date string, or the
// whole string when it is shorter than that.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// SignedAmount applies the sign implied by the transaction type to a magnitude.
// It is applied once at creation time.
func SignedAmount(t TransactionType, magnitude Amount) Amount {
	abs := magnitude.Abs()
	if t == TypeExpense {
		return abs.Neg()
	}
	return abs
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", ErrValidation, s)
	}
	return d.Format(DateLayout), nil
}

// ParseMonth validates a YYYY-MM period key.
func ParseMonth(s string) (string, error) {
	m, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid month %q (expected YYYY-MM)", ErrValidation, s)
	}
	return m.Format("2006-01"), nil
}
