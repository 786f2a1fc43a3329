package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bizbook/internal/domain"
)

type opportunityService struct {
	states   StateStore
	observer UseCaseObserver
}

func NewOpportunityService(states StateStore, observers ...UseCaseObserver) OpportunityService {
	return &opportunityService{
		states:   states,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create adds a Lead-stage opportunity for an existing client.
func (s *opportunityService) Create(ctx context.Context, in OpportunityInput) (_ domain.Opportunity, err error) {
	startedAt := time.Now()
	fields := map[string]any{"client_id": in.ClientID}
	defer func() { track(ctx, s.observer, "create-opportunity", startedAt, fields, err) }()

	o := domain.Opportunity{
		ID:       newID(),
		Title:    strings.TrimSpace(in.Title),
		Value:    in.Value,
		ClientID: in.ClientID,
		Stage:    domain.StageLead,
	}
	if err := domain.JoinValidation(domain.ValidateOpportunity("opportunity", o)); err != nil {
		return domain.Opportunity{}, err
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		if st.FindClient(o.ClientID) < 0 {
			return st, fmt.Errorf("%w: client %q", domain.ErrNotFound, o.ClientID)
		}
		st.Opportunities = append(st.Opportunities, o)
		return st, nil
	})
	if !committed(err) {
		return domain.Opportunity{}, err
	}
	fields["id"] = o.ID
	return o, err
}

func (s *opportunityService) Get(_ context.Context, id string) (domain.Opportunity, error) {
	st := s.states.Current()
	i := st.FindOpportunity(id)
	if i < 0 {
		return domain.Opportunity{}, fmt.Errorf("%w: opportunity %q", domain.ErrNotFound, id)
	}
	return st.Opportunities[i], nil
}

func (s *opportunityService) List(_ context.Context) ([]domain.Opportunity, error) {
	return s.states.Current().Opportunities, nil
}

// ListByStage groups opportunities into board columns in stage order,
// keeping stored order within a column. Unknown stages are left out.
func (s *opportunityService) ListByStage(_ context.Context) ([]StageColumn, error) {
	cols := make([]StageColumn, len(domain.Stages))
	for i, st := range domain.Stages {
		cols[i] = StageColumn{Stage: st}
	}
	for _, o := range s.states.Current().Opportunities {
		if i := o.Stage.Index(); i >= 0 {
			cols[i].Opportunities = append(cols[i].Opportunities, o)
		}
	}
	return cols, nil
}

// MoveStage sets the stage of an opportunity. Any stage may follow any other.
func (s *opportunityService) MoveStage(ctx context.Context, id string, stage domain.Stage) (moved domain.Opportunity, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id, "stage": string(stage)}
	defer func() { track(ctx, s.observer, "move-opportunity", startedAt, fields, err) }()

	if !stage.Valid() {
		return domain.Opportunity{}, fmt.Errorf("%w: unknown stage %q", domain.ErrValidation, stage)
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindOpportunity(id)
		if i < 0 {
			return st, fmt.Errorf("%w: opportunity %q", domain.ErrNotFound, id)
		}
		fields["from"] = string(st.Opportunities[i].Stage)
		st.Opportunities[i].Stage = stage
		moved = st.Opportunities[i]
		return st, nil
	})
	if !committed(err) {
		return domain.Opportunity{}, err
	}
	return moved, err
}

// Replace swaps the stored record with the same ID for o. A changed client
// reference must resolve.
func (s *opportunityService) Replace(ctx context.Context, o domain.Opportunity) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "replace-opportunity", startedAt, map[string]any{"id": o.ID}, err) }()

	o.Title = strings.TrimSpace(o.Title)
	if err := domain.JoinValidation(domain.ValidateOpportunity("opportunity", o)); err != nil {
		return err
	}
	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindOpportunity(o.ID)
		if i < 0 {
			return st, fmt.Errorf("%w: opportunity %q", domain.ErrNotFound, o.ID)
		}
		if o.ClientID != st.Opportunities[i].ClientID && st.FindClient(o.ClientID) < 0 {
			return st, fmt.Errorf("%w: client %q", domain.ErrNotFound, o.ClientID)
		}
		st.Opportunities[i] = o
		return st, nil
	})
	return err
}

func (s *opportunityService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { track(ctx, s.observer, "delete-opportunity", startedAt, map[string]any{"id": id}, err) }()

	_, err = s.states.Apply(ctx, func(st domain.AppState) (domain.AppState, error) {
		i := st.FindOpportunity(id)
		if i < 0 {
			return st, fmt.Errorf("%w: opportunity %q", domain.ErrNotFound, id)
		}
		st.Opportunities = append(st.Opportunities[:i], st.Opportunities[i+1:]...)
		return st, nil
	})
	return err
}
