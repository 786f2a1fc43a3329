package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/google/uuid"
)

var testSeq atomic.Int64

// Transaction options
type TransactionOption func(*domain.Transaction)

func WithDate(date string) TransactionOption {
	return func(t *domain.Transaction) {
		t.Date = date
	}
}

func WithTransactionID(id string) TransactionOption {
	return func(t *domain.Transaction) {
		t.ID = id
	}
}

// NewTestRevenue returns a revenue transaction for the given decimal amount.
func NewTestRevenue(desc, amount string, opts ...TransactionOption) domain.Transaction {
	return newTestTransaction(desc, domain.TypeRevenue, amount, opts...)
}

// NewTestExpense returns an expense transaction; amount is a magnitude and is
// stored negative.
func NewTestExpense(desc, amount string, opts ...TransactionOption) domain.Transaction {
	return newTestTransaction(desc, domain.TypeExpense, amount, opts...)
}

func newTestTransaction(desc string, typ domain.TransactionType, amount string, opts ...TransactionOption) domain.Transaction {
	t := domain.Transaction{
		ID:          uuid.New().String(),
		Description: desc,
		Amount:      domain.SignedAmount(typ, domain.MustAmount(amount)),
		Date:        "2024-05-01",
		Type:        typ,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestClient returns a client with a unique id and plausible contact data.
func NewTestClient(name string) domain.Client {
	n := testSeq.Add(1)
	return domain.Client{
		ID:      uuid.New().String(),
		Name:    name,
		Company: name + " Ltd",
		Email:   fmt.Sprintf("client%d@example.com", n),
		Phone:   fmt.Sprintf("555-%04d", n),
	}
}

// Opportunity options
type OpportunityOption func(*domain.Opportunity)

func WithStage(s domain.Stage) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.Stage = s
	}
}

func WithValue(v string) OpportunityOption {
	return func(o *domain.Opportunity) {
		o.Value = domain.MustAmount(v)
	}
}

// NewTestOpportunity returns a Lead-stage opportunity owned by clientID.
func NewTestOpportunity(clientID, title string, opts ...OpportunityOption) domain.Opportunity {
	o := domain.Opportunity{
		ID:       uuid.New().String(),
		Title:    title,
		Value:    domain.MustAmount("1000"),
		ClientID: clientID,
		Stage:    domain.StageLead,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewTestState returns a small but complete state: two transactions in May
// 2024, one client and one opportunity referencing it.
func NewTestState() domain.AppState {
	c := NewTestClient("Acme")
	return domain.AppState{
		Transactions: []domain.Transaction{
			NewTestRevenue("Invoice 1", "1500", WithDate("2024-05-03")),
			NewTestExpense("Rent", "700", WithDate("2024-05-05")),
		},
		Clients:       []domain.Client{c},
		Opportunities: []domain.Opportunity{NewTestOpportunity(c.ID, "Retainer")},
	}
}
