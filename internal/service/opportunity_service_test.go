package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/bizbook/internal/domain"
	"github.com/alexanderramin/bizbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityService_Create(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewOpportunityService(st)
	c := testutil.NewTestClient("Acme")
	seedState(t, st, domain.AppState{Clients: []domain.Client{c}})

	o, err := svc.Create(ctx, OpportunityInput{Title: "Retainer", Value: domain.MustAmount("1200"), ClientID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StageLead, o.Stage)
	assert.Equal(t, c.ID, o.ClientID)
	assert.Len(t, st.Current().Opportunities, 1)
}

func TestOpportunityService_Create_UnknownClient(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewOpportunityService(st)

	_, err := svc.Create(ctx, OpportunityInput{Title: "Retainer", Value: domain.MustAmount("1"), ClientID: "c9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Create(ctx, OpportunityInput{Title: "", Value: domain.MustAmount("1"), ClientID: "c9"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, st.Current().Opportunities)
}

func TestOpportunityService_MoveStage_AnyToAny(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewOpportunityService(st)
	c := testutil.NewTestClient("Acme")
	o := testutil.NewTestOpportunity(c.ID, "Deal")
	seedState(t, st, domain.AppState{Clients: []domain.Client{c}, Opportunities: []domain.Opportunity{o}})

	for _, to := range []domain.Stage{domain.StageWon, domain.StageLead, domain.StageLost, domain.StageNegotiation} {
		moved, err := svc.MoveStage(ctx, o.ID, to)
		require.NoError(t, err)
		assert.Equal(t, to, moved.Stage)
		got, err := svc.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, to, got.Stage)
	}

	_, err := svc.MoveStage(ctx, o.ID, "Archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.MoveStage(ctx, "missing", domain.StageWon)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpportunityService_ListByStage(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewOpportunityService(st)
	c := testutil.NewTestClient("Acme")
	seedState(t, st, domain.AppState{
		Clients: []domain.Client{c},
		Opportunities: []domain.Opportunity{
			testutil.NewTestOpportunity(c.ID, "a"),
			testutil.NewTestOpportunity(c.ID, "b", testutil.WithStage(domain.StageWon)),
			testutil.NewTestOpportunity(c.ID, "c"),
		},
	})

	cols, err := svc.ListByStage(ctx)
	require.NoError(t, err)
	require.Len(t, cols, len(domain.Stages))
	assert.Equal(t, domain.StageLead, cols[0].Stage)
	require.Len(t, cols[0].Opportunities, 2)
	assert.Equal(t, "a", cols[0].Opportunities[0].Title)
	assert.Equal(t, "c", cols[0].Opportunities[1].Title)
	assert.Len(t, cols[domain.StageWon.Index()].Opportunities, 1)
	assert.Empty(t, cols[domain.StageProposal.Index()].Opportunities)
}

func TestOpportunityService_Replace(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	svc := NewOpportunityService(st)
	c := testutil.NewTestClient("Acme")
	o := testutil.NewTestOpportunity(c.ID, "Deal")
	seedState(t, st, domain.AppState{Clients: []domain.Client{c}, Opportunities: []domain.Opportunity{o}})

	o.Value = domain.MustAmount("2500")
	require.NoError(t, svc.Replace(ctx, o))
	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.Value.Equal(domain.MustAmount("2500")))

	moved := o
	moved.ClientID = "c9"
	assert.ErrorIs(t, svc.Replace(ctx, moved), domain.ErrNotFound)
}

func TestOpportunityService_DeleteThenClientDeletable(t *testing.T) {
	st, _ := setupStore(t)
	ctx := context.Background()
	opps := NewOpportunityService(st)
	clients := NewClientService(st)
	c := testutil.NewTestClient("Acme")
	o := testutil.NewTestOpportunity(c.ID, "Deal")
	seedState(t, st, domain.AppState{Clients: []domain.Client{c}, Opportunities: []domain.Opportunity{o}})

	assert.ErrorIs(t, clients.Delete(ctx, c.ID), domain.ErrReferentialIntegrity)
	require.NoError(t, opps.Delete(ctx, o.ID))
	require.NoError(t, clients.Delete(ctx, c.ID))
	assert.ErrorIs(t, opps.Delete(ctx, o.ID), domain.ErrNotFound)
}
