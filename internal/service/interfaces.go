package service

import (
	"context"

	"github.com/alexanderramin/bizbook/internal/backup"
	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/store"
)

// StateStore is the part of store.Store the services use.
type StateStore interface {
	Current() domain.AppState
	Apply(ctx context.Context, fn store.Updater) (domain.AppState, error)
}

// Every mutating method below goes through StateStore.Apply. When the
// change was made but could not be saved, the method returns its normal
// result together with an error wrapping domain.ErrPersistence.

type TransactionService interface {
	Create(ctx context.Context, in TransactionInput) (domain.Transaction, error)
	Get(ctx context.Context, id string) (domain.Transaction, error)
	List(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error)
	Replace(ctx context.Context, t domain.Transaction) error
	Delete(ctx context.Context, id string) error
}

type ClientService interface {
	Create(ctx context.Context, c domain.Client) (domain.Client, error)
	Get(ctx context.Context, id string) (domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Replace(ctx context.Context, c domain.Client) error
	Delete(ctx context.Context, id string) error
}

type OpportunityService interface {
	Create(ctx context.Context, in OpportunityInput) (domain.Opportunity, error)
	Get(ctx context.Context, id string) (domain.Opportunity, error)
	List(ctx context.Context) ([]domain.Opportunity, error)
	ListByStage(ctx context.Context) ([]StageColumn, error)
	MoveStage(ctx context.Context, id string, stage domain.Stage) (domain.Opportunity, error)
	Replace(ctx context.Context, o domain.Opportunity) error
	Delete(ctx context.Context, id string) error
}

type BackupService interface {
	Export(ctx context.Context, path string) error
	Load(ctx context.Context, path string, opts backup.ImportOptions) (*backup.Result, error)
	Restore(ctx context.Context, state domain.AppState) (domain.AppState, error)
}

// TransactionInput is what a user supplies for a new transaction. Amount is
// a magnitude; its sign is derived from Type.
type TransactionInput struct {
	Description string
	Amount      domain.Amount
	Date        string
	Type        domain.TransactionType
}

// TransactionFilter narrows List. Zero fields match everything.
type TransactionFilter struct {
	Month string
	Type  domain.TransactionType
	Query string
}

// OpportunityInput is what a user supplies for a new opportunity.
type OpportunityInput struct {
	Title    string
	Value    domain.Amount
	ClientID string
}

// StageColumn is one board column.
type StageColumn struct {
	Stage         domain.Stage
	Opportunities []domain.Opportunity
}
