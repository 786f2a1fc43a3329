package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name      string
		typ       TransactionType
		magnitude string
		want      string
	}{
		{"revenue positive", TypeRevenue, "100", "100"},
		{"revenue given negative", TypeRevenue, "-100", "100"},
		{"expense positive", TypeExpense, "50", "-50"},
		{"expense given negative", TypeExpense, "-50", "-50"},
		{"zero", TypeExpense, "0", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SignedAmount(tc.typ, MustAmount(tc.magnitude))
			assert.True(t, got.Equal(MustAmount(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("expense")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, typ)

	_, err = ParseTransactionType("refund")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransaction_MonthKey(t *testing.T) {
	tx := Transaction{Date: "2024-05-10"}
	assert.Equal(t, "2024-05", tx.MonthKey())
	assert.True(t, tx.InMonth("2024-05"))
	assert.False(t, tx.InMonth("2024-06"))
	assert.False(t, tx.InMonth(""))

	assert.Equal(t, "2024", MonthKey("2024"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d)

	for _, bad := range []string{"", "2023-02-29", "10/05/2024", "2024-5-1"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrValidation, "date %q should be rejected", bad)
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", m)

	_, err = ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrValidation)
}
