package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
)

type clientService struct {
	states   StateStore
	observer UseCaseObserver
}

func NewClientService(states StateStore, observers ...UseCaseObserver) ClientService {
	return &clientService{
		states:   states,
		observer: useCaseObserverOrNoop(observers),
	}
}

func trimClient(c domain.Client) domain.Client {
	c.Name = strings.TrimSpace(c.Name)
	c.Company = strings.TrimSpace(c.Company)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	return c
}

// Create stores c under a fresh ID; any ID on c is ignored.
func (s *clientService) Create(ctx context.Context, c domain.Client) (_ domain.Client, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { track(ctx, s.observer, "create-client", startedAt, fields, err) }()

	c = trimClient(c)
	c.ID = newID()
	if err := domain.JoinValidation(domain.ValidateClient("client", c)); err != nil {
		return domain.Client{}, err
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		st.Clients = append(st.Clients, c)
		return st, nil
	})
	if !committed(err) {
		return domain.Client{}, err
	}
	fields["id"] = c.ID
	return c, err
}

func (s *clientService) Get(_ context.Context, id string) (domain.Client, error) {
	st := s.states.Current()
	i := st.FindClient(id)
	if i < 0 {
		return domain.Client{}, fmt.Errorf("%w: client %q", domain.ErrNotFound, id)
	}
	return st.Clients[i], nil
}

func (s *clientService) List(_ context.Context) ([]domain.Client, error) {
	return s.states.Current().Clients, nil
}

func (s *clientService) Replace(ctx context.Context, c domain.Client) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "replace-client", startedAt, map[string]any{"id": c.ID}, err) }()

	c = trimClient(c)
	if err := domain.JoinValidation(domain.ValidateClient("client", c)); err != nil {
		return err
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindClient(c.ID)
		if i < 0 {
			return st, fmt.Errorf("%w: client %q", domain.ErrNotFound, c.ID)
		}
		st.Clients[i] = c
		return st, nil
	})
	return err
}

// Delete removes a client that no opportunity references. The check runs
// inside the update, so it sees the same state the removal applies to.
func (s *clientService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "delete-client", startedAt, map[string]any{"id": id}, err) }()

	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindClient(id)
		if i < 0 {
			return st, fmt.Errorf("%w: client %q", domain.ErrNotFound, id)
		}
		if refs := st.OpportunitiesForClient(id); len(refs) > 0 {
			return st, fmt.Errorf("%w: client %q is referenced by %d opportunities", domain.ErrReferentialIntegrity, st.Clients[i].Name, len(refs))
		}
		st.Clients = append(st.Clients[:i], st.Clients[i+1:]...)
		return st, nil
	})
	return err
}
