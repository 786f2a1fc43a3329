package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
)

type transactionService struct {
	states   StateStore
	observer UseCaseObserver
}

func NewTransactionService(states StateStore, observers ...UseCaseObserver) TransactionService {
	return &transactionService{
		states:   states,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transactionService) Create(ctx context.Context, in TransactionInput) (tx domain.Transaction, err error) {
	startedAt := time.Now()
	fields := map[string]any{"type": string(in.Type)}
	defer func() { track(ctx, s.observer, "create-transaction", startedAt, fields, err) }()

	typ, err := domain.ParseTransactionType(string(in.Type))
	if err != nil {
		return domain.Transaction{}, err
	}
	date, err := domain.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return domain.Transaction{}, err
	}
	tx = domain.Transaction{
		ID:          newID(),
		Description: strings.TrimSpace(in.Description),
		Amount:      domain.SignedAmount(typ, in.Amount),
		Date:        date,
		Type:        typ,
	}
	if err := domain.JoinValidation(domain.ValidateTransaction("transaction", tx)); err != nil {
		return domain.Transaction{}, err
	}

	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		st.Transactions = append(st.Transactions, tx)
		return st, nil
	})
	if !committed(err) {
		return domain.Transaction{}, err
	}
	fields["id"] = tx.ID
	return tx, err
}

func (s *transactionService) Get(_ context.Context, id string) (domain.Transaction, error) {
	st := s.states.Current()
	i := st.FindTransaction(id)
	if i < 0 {
		return domain.Transaction{}, fmt.Errorf("%w: transaction %q", domain.ErrNotFound, id)
	}
	return st.Transactions[i], nil
}

// List returns the matching transactions, newest date first.
func (s *transactionService) List(_ context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	if f.Month != "" {
		if _, err := domain.ParseMonth(f.Month); err != nil {
			return nil, err
		}
	}
	var out []domain.Transaction
	for _, t := range s.states.Current().Transactions {
		if f.Month != "" && !t.InMonth(f.Month) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Query != "" && !containsFold(t.Description, f.Query) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// Replace swaps the stored record with the same ID for t. The amount is
// taken as given and must agree in sign with the type.
func (s *transactionService) Replace(ctx context.Context, t domain.Transaction) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "replace-transaction", startedAt, map[string]any{"id": t.ID}, err) }()

	t.Description = strings.TrimSpace(t.Description)
	if err := domain.JoinValidation(domain.ValidateTransaction("transaction", t)); err != nil {
		return err
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindTransaction(t.ID)
		if i < 0 {
			return st, fmt.Errorf("%w: transaction %q", domain.ErrNotFound, t.ID)
		}
		st.Transactions[i] = t
		return st, nil
	})
	return err
}

func (s *transactionService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "delete-transaction", startedAt, map[string]any{"id": id}, err) }()

	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindTransaction(id)
		if i < 0 {
			return st, fmt.Errorf("%w: transaction %q", domain.ErrNotFound, id)
		}
		st.Transactions = append(st.Transactions[:i], st.Transactions[i+1:]...)
		return st, nil
	})
	return err
}
