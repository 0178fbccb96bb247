package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/internal/crm/store"
	"sales_crm_backend/internal/crm/transport"
	"sales_crm_backend/internal/events"
	"sales_crm_backend/platform/apperr"
	"sales_crm_backend/platform/config"
	"sales_crm_backend/platform/logger"
	"sales_crm_backend/platform/validator"
)

func quietLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newTestEngine(t *testing.T) (*Engine, *store.Store, *events.InMemoryBus) {
	t.Helper()

	log := quietLogger()
	bus := events.NewInMemoryBus(log)
	val := validator.New()
	require.NoError(t, RegisterValidations(val))

	cfg := &config.Config{DealCloseHorizon: 30 * 24 * time.Hour}
	st := store.New()
	engine := New(st, bus, val, cfg, log)
	return engine, st, bus
}

func seedLead(st *store.Store) domain.Lead {
	lead := domain.Lead{
		ID:        "1",
		Name:      "Jo",
		Email:     "jo@acme.example",
		Company:   "Acme",
		Status:    domain.LeadStatusQualified,
		Value:     1000,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	st.Seed([]domain.Lead{lead}, nil)
	return lead
}

func TestConvertLeadToDeal(t *testing.T) {
	engine, st, bus := newTestEngine(t)
	seedLead(st)

	var converted []events.LeadConverted
	bus.Subscribe(events.LeadConverted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		converted = append(converted, event.(events.LeadConverted))
		return nil
	}))

	deal, err := engine.ConvertLeadToDeal(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "Acme - Sales Opportunity", deal.Title)
	assert.Equal(t, "Acme", deal.Company)
	assert.Equal(t, "Jo", deal.Contact)
	assert.Equal(t, float64(1000), deal.Amount)
	assert.Equal(t, domain.DealStatusProposal, deal.Status)
	assert.Equal(t, 50, deal.Probability)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), deal.ExpectedCloseDate, time.Minute)

	leads, deals := st.Snapshot()
	assert.Empty(t, leads, "converted lead is gone")
	require.Len(t, deals, 1)
	assert.Equal(t, deal.ID, deals[0].ID)

	// Events run synchronously within the mutation, after commit.
	require.Len(t, converted, 1)
	assert.Equal(t, "1", converted[0].LeadID)
	assert.Equal(t, deal.ID, converted[0].DealID)
}

func TestConvertLeadToDealNotFound(t *testing.T) {
	engine, st, _ := newTestEngine(t)
	seedLead(st)

	_, err := engine.ConvertLeadToDeal(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	leads, deals := st.Snapshot()
	assert.Len(t, leads, 1, "failed conversion leaves the lead in place")
	assert.Empty(t, deals)
}

func TestAddDealValidation(t *testing.T) {
	engine, st, _ := newTestEngine(t)

	_, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Bad Deal",
		Company:     "Acme",
		Amount:      -5,
		Probability: 50,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, st.Deals(), "rejected deal must not be inserted")

	_, err = engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Bad Probability",
		Company:     "Acme",
		Amount:      100,
		Probability: 150,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Bad Status",
		Company:     "Acme",
		Amount:      100,
		Probability: 50,
		Status:      "qualified",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAddDealDefaultsToProposal(t *testing.T) {
	engine, st, _ := newTestEngine(t)

	deal, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "New Business",
		Company:     "Initech",
		Amount:      5000,
		Probability: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DealStatusProposal, deal.Status)
	assert.NotEmpty(t, deal.ID)
	assert.Equal(t, deal.CreatedAt, deal.UpdatedAt)
	assert.False(t, deal.ExpectedCloseDate.IsZero())

	deals := st.Deals()
	require.Len(t, deals, 1)
	assert.Equal(t, deal.ID, deals[0].ID)
}

func TestTransitionDealStatus(t *testing.T) {
	engine, st, _ := newTestEngine(t)

	added, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Moving Deal",
		Company:     "Acme",
		Amount:      100,
		Probability: 50,
	})
	require.NoError(t, err)

	moved, err := engine.TransitionDealStatus(context.Background(), added.ID, domain.DealStatusClosedWon)
	require.NoError(t, err)
	assert.Equal(t, domain.DealStatusClosedWon, moved.Status)
	assert.True(t, moved.UpdatedAt.After(added.UpdatedAt), "updatedAt must strictly increase")

	// Terminal deals cannot be re-opened; the deal is left unchanged.
	_, err = engine.TransitionDealStatus(context.Background(), added.ID, domain.DealStatusProposal)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	unchanged, err := st.GetDeal(added.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealStatusClosedWon, unchanged.Status)
	assert.Equal(t, moved.UpdatedAt, unchanged.UpdatedAt)
}

func TestTransitionDealStatusFrozenClock(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	frozen := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	engine.WithClock(func() time.Time { return frozen })

	added, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Frozen Clock Deal",
		Company:     "Acme",
		Amount:      100,
		Probability: 50,
	})
	require.NoError(t, err)

	moved, err := engine.TransitionDealStatus(context.Background(), added.ID, domain.DealStatusNegotiation)
	require.NoError(t, err)
	assert.True(t, moved.UpdatedAt.After(added.UpdatedAt),
		"updatedAt must strictly increase even when the clock does not advance")

	again, err := engine.TransitionDealStatus(context.Background(), added.ID, domain.DealStatusProposal)
	require.NoError(t, err)
	assert.True(t, again.UpdatedAt.After(moved.UpdatedAt))
}

func TestTransitionDealStatusUnknownTarget(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	added, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
		Title:       "Typo Deal",
		Company:     "Acme",
		Amount:      100,
		Probability: 50,
	})
	require.NoError(t, err)

	_, err = engine.TransitionDealStatus(context.Background(), added.ID, "closed")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = engine.TransitionDealStatus(context.Background(), "missing", domain.DealStatusProposal)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUpdateLead(t *testing.T) {
	engine, st, _ := newTestEngine(t)
	lead := seedLead(st)

	name := "Jo Rivera"
	value := 2500.0
	status := domain.LeadStatusNegotiation
	updated, err := engine.UpdateLead(context.Background(), lead.ID, transport.UpdateLeadRequest{
		Name:   &name,
		Value:  &value,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jo Rivera", updated.Name)
	assert.Equal(t, 2500.0, updated.Value)
	assert.Equal(t, domain.LeadStatusNegotiation, updated.Status)
	assert.Equal(t, lead.CreatedAt, updated.CreatedAt, "createdAt is immutable")
	assert.True(t, updated.UpdatedAt.After(lead.UpdatedAt))
	assert.Equal(t, "Acme", updated.Company, "unpatched fields stay")

	badStatus := "closed-won"
	_, err = engine.UpdateLead(context.Background(), lead.ID, transport.UpdateLeadRequest{Status: &badStatus})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = engine.UpdateLead(context.Background(), "missing", transport.UpdateLeadRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteLeadIsIdempotent(t *testing.T) {
	engine, st, bus := newTestEngine(t)
	seedLead(st)

	deleted := 0
	bus.Subscribe(events.LeadDeleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		deleted++
		return nil
	}))

	require.NoError(t, engine.DeleteLead(context.Background(), "1"))
	require.NoError(t, engine.DeleteLead(context.Background(), "1"), "second delete is a silent no-op")
	require.NoError(t, engine.DeleteLead(context.Background(), "never-existed"))

	assert.Empty(t, st.Leads())
	assert.Equal(t, 1, deleted, "no event for no-op deletes")
}

func TestAddLead(t *testing.T) {
	engine, st, _ := newTestEngine(t)

	lead, err := engine.AddLead(context.Background(), transport.CreateLeadRequest{
		Name:    "Dana Cruz",
		Email:   "dana@megacorp.example",
		Company: "MegaCorp",
		Value:   9000,
		Source:  "Referral",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, lead.Status, "status defaults to new")
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, lead.CreatedAt, lead.UpdatedAt)

	stored, err := st.GetLead(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "MegaCorp", stored.Company)

	_, err = engine.AddLead(context.Background(), transport.CreateLeadRequest{
		Name:    "No Value",
		Company: "MegaCorp",
		Value:   -1,
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestReorderWithinStage(t *testing.T) {
	engine, st, _ := newTestEngine(t)

	var ids []string
	for _, title := range []string{"First", "Second", "Third"} {
		d, err := engine.AddDeal(context.Background(), transport.CreateDealRequest{
			Title:       title,
			Company:     "Acme",
			Amount:      100,
			Probability: 50,
		})
		require.NoError(t, err)
		ids = append(ids, d.ID)
	}

	before, err := st.GetDeal(ids[2])
	require.NoError(t, err)

	// Newest-first prepend means bucket order is Third, Second, First.
	require.NoError(t, engine.ReorderWithinStage(context.Background(), ids[0], 0))

	var order []string
	for _, d := range st.Deals() {
		if d.Status == domain.DealStatusProposal {
			order = append(order, d.ID)
		}
	}
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, order)

	after, err := st.GetDeal(ids[2])
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status, "reorder never touches status")
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt, "reorder never touches updatedAt")

	err = engine.ReorderWithinStage(context.Background(), ids[0], 7)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindOutOfRange))

	err = engine.ReorderWithinStage(context.Background(), "missing", 0)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
