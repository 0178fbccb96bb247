// Package service implements the lifecycle engine: the sole authority for
// lead and deal state transitions. The presentation layer never mutates
// collections directly; it calls these operations and re-reads snapshots.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/internal/crm/store"
	"sales_crm_backend/internal/crm/transport"
	"sales_crm_backend/internal/events"
	"sales_crm_backend/platform/apperr"
	"sales_crm_backend/platform/config"
	"sales_crm_backend/platform/logger"
	"sales_crm_backend/platform/phone"
	"sales_crm_backend/platform/validator"
)

// Engine applies validated transitions to the store and publishes a domain
// event after each committed mutation. Events are delivered synchronously:
// every mutation runs to completion, observers included, before the next
// one starts.
type Engine struct {
	store        *store.Store
	bus          events.Bus
	val          *validator.Validator
	log          *logger.Logger
	now          func() time.Time
	closeHorizon time.Duration
}

// New creates the lifecycle engine.
func New(st *store.Store, bus events.Bus, val *validator.Validator, cfg config.EngineConfig, log *logger.Logger) *Engine {
	return &Engine{
		store:        st,
		bus:          bus,
		val:          val,
		log:          log,
		now:          time.Now,
		closeHorizon: cfg.GetDealCloseHorizon(),
	}
}

// WithClock overrides the engine's time source. Tests use this to make
// timestamp assertions deterministic.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// AddLead creates a new lead. The phone number is normalized to E.164 when
// possible; status defaults to "new".
func (e *Engine) AddLead(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if err := e.val.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid lead", err).WithOp("AddLead")
	}

	now := e.now()
	lead := domain.Lead{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Phone:       phone.NormalizeE164(req.Phone),
		Status:      req.Status,
		Source:      req.Source,
		Value:       req.Value,
		LastContact: req.LastContact,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	if lead.LastContact.IsZero() {
		lead.LastContact = now
	}

	e.store.InsertLead(lead)
	e.log.MutationApplied("AddLead", "lead", lead.ID)
	e.publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Company:   lead.Company,
		Source:    lead.Source,
	})

	return toLeadResponse(lead), nil
}

// UpdateLead applies a partial patch to the lead with the given id. The id
// and createdAt are not patchable; updatedAt is refreshed.
func (e *Engine) UpdateLead(ctx context.Context, id string, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	if err := e.val.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid lead patch", err).WithOp("UpdateLead")
	}

	lead, err := e.store.GetLead(id)
	if err != nil {
		nf := apperr.NotFound("lead not found").WithOp("UpdateLead")
		e.log.MutationRejected("UpdateLead", "lead", id, nf)
		return transport.LeadResponse{}, nf
	}
	oldStatus := lead.Status

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Phone != nil {
		lead.Phone = phone.NormalizeE164(*req.Phone)
	}
	if req.Status != nil {
		lead.Status = *req.Status
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Value != nil {
		lead.Value = *req.Value
	}
	if req.LastContact.Set && req.LastContact.Value != nil {
		lead.LastContact = *req.LastContact.Value
	}
	lead.UpdatedAt = e.tick(lead.UpdatedAt)

	if err := e.store.ReplaceLead(lead); err != nil {
		return transport.LeadResponse{}, apperr.NotFound("lead not found").WithOp("UpdateLead")
	}

	e.log.MutationApplied("UpdateLead", "lead", lead.ID)
	e.publish(ctx, events.LeadUpdated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: oldStatus,
		NewStatus: lead.Status,
	})

	return toLeadResponse(lead), nil
}

// DeleteLead removes the lead. Deleting an unknown id is an idempotent
// no-op: a second delete of the same id silently succeeds.
func (e *Engine) DeleteLead(ctx context.Context, id string) error {
	if !e.store.RemoveLead(id) {
		return nil
	}

	e.log.MutationApplied("DeleteLead", "lead", id)
	e.publish(ctx, events.LeadDeleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
	})
	return nil
}

// ConvertLeadToDeal atomically replaces the lead with a newly synthesized
// deal. No observer can see a state where both or neither exist.
func (e *Engine) ConvertLeadToDeal(ctx context.Context, id string) (transport.DealResponse, error) {
	lead, err := e.store.GetLead(id)
	if err != nil {
		nf := apperr.NotFound("lead not found").WithOp("ConvertLeadToDeal")
		e.log.MutationRejected("ConvertLeadToDeal", "lead", id, nf)
		return transport.DealResponse{}, nf
	}

	now := e.now()
	deal := domain.Deal{
		ID:                uuid.NewString(),
		Title:             lead.Company + " - Sales Opportunity",
		Company:           lead.Company,
		Contact:           lead.Name,
		Amount:            lead.Value,
		Status:            domain.DealStatusProposal,
		Probability:       50,
		ExpectedCloseDate: now.Add(e.closeHorizon),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := e.store.ConvertLead(id, deal); err != nil {
		return transport.DealResponse{}, apperr.NotFound("lead not found").WithOp("ConvertLeadToDeal")
	}

	e.log.MutationApplied("ConvertLeadToDeal", "lead", id, "dealId", deal.ID)
	e.publish(ctx, events.LeadConverted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		DealID:    deal.ID,
		Company:   deal.Company,
		Amount:    deal.Amount,
	})

	return toDealResponse(deal), nil
}

// AddDeal creates a deal from caller-supplied fields. Status defaults to
// "proposal" when empty.
func (e *Engine) AddDeal(ctx context.Context, req transport.CreateDealRequest) (transport.DealResponse, error) {
	if err := e.val.Struct(req); err != nil {
		return transport.DealResponse{}, apperr.Wrap(apperr.KindValidation, "invalid deal", err).WithOp("AddDeal")
	}

	now := e.now()
	deal := domain.Deal{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Company:           req.Company,
		Contact:           req.Contact,
		Amount:            req.Amount,
		Status:            req.Status,
		Probability:       req.Probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if deal.Status == "" {
		deal.Status = domain.DealStatusProposal
	}
	if deal.ExpectedCloseDate.IsZero() {
		deal.ExpectedCloseDate = now.Add(e.closeHorizon)
	}

	e.store.InsertDeal(deal)
	e.log.MutationApplied("AddDeal", "deal", deal.ID, "status", deal.Status)
	e.publish(ctx, events.DealCreated{
		BaseEvent: events.NewBaseEvent(),
		DealID:    deal.ID,
		Title:     deal.Title,
		Amount:    deal.Amount,
	})

	return toDealResponse(deal), nil
}

// TransitionDealStatus moves a deal to a new pipeline stage. This backs
// both manual status edits and drag-and-drop moves between columns. Closed
// deals cannot be re-opened; the deal is left untouched on rejection.
func (e *Engine) TransitionDealStatus(ctx context.Context, id, newStatus string) (transport.DealResponse, error) {
	deal, err := e.store.GetDeal(id)
	if err != nil {
		nf := apperr.NotFound("deal not found").WithOp("TransitionDealStatus")
		e.log.MutationRejected("TransitionDealStatus", "deal", id, nf)
		return transport.DealResponse{}, nf
	}

	if reason := domain.CanTransitionDeal(deal.Status, newStatus); reason != "" {
		var rejected *apperr.Error
		if !domain.IsKnownDealStatus(newStatus) {
			rejected = apperr.Validation(reason).WithOp("TransitionDealStatus")
		} else {
			rejected = apperr.InvalidTransition(reason).WithOp("TransitionDealStatus")
		}
		e.log.MutationRejected("TransitionDealStatus", "deal", id, rejected)
		return transport.DealResponse{}, rejected
	}

	oldStatus := deal.Status
	deal.Status = newStatus
	deal.UpdatedAt = e.tick(deal.UpdatedAt)

	if err := e.store.ReplaceDeal(deal); err != nil {
		return transport.DealResponse{}, apperr.NotFound("deal not found").WithOp("TransitionDealStatus")
	}

	e.log.MutationApplied("TransitionDealStatus", "deal", deal.ID, "oldStatus", oldStatus, "newStatus", newStatus)
	e.publish(ctx, events.DealStageChanged{
		BaseEvent: events.NewBaseEvent(),
		DealID:    deal.ID,
		OldStage:  oldStatus,
		NewStage:  newStatus,
	})

	return toDealResponse(deal), nil
}

// ReorderWithinStage changes only the display order of a deal inside its
// current stage bucket. Status and updatedAt are untouched; ordering is a
// presentation hint and is not durable.
func (e *Engine) ReorderWithinStage(ctx context.Context, id string, newIndex int) error {
	deal, err := e.store.GetDeal(id)
	if err != nil {
		nf := apperr.NotFound("deal not found").WithOp("ReorderWithinStage")
		e.log.MutationRejected("ReorderWithinStage", "deal", id, nf)
		return nf
	}

	if err := e.store.MoveDealWithinStage(id, newIndex); err != nil {
		var rejected *apperr.Error
		switch {
		case errors.Is(err, store.ErrOutOfRange):
			rejected = apperr.OutOfRange("reorder index out of range").WithOp("ReorderWithinStage")
		case errors.Is(err, store.ErrNotFound):
			rejected = apperr.NotFound("deal not found").WithOp("ReorderWithinStage")
		default:
			rejected = apperr.Wrap(apperr.KindInternal, "reorder failed", err).WithOp("ReorderWithinStage")
		}
		e.log.MutationRejected("ReorderWithinStage", "deal", id, rejected)
		return rejected
	}

	e.log.MutationApplied("ReorderWithinStage", "deal", id, "newIndex", newIndex)
	e.publish(ctx, events.DealsReordered{
		BaseEvent: events.NewBaseEvent(),
		DealID:    id,
		Stage:     deal.Status,
		NewIndex:  newIndex,
	})
	return nil
}

// tick returns the current time, nudged forward if the clock has not
// advanced past the previous timestamp. updatedAt must strictly increase
// on every mutation.
func (e *Engine) tick(prev time.Time) time.Time {
	ts := e.now()
	if !ts.After(prev) {
		ts = prev.Add(time.Nanosecond)
	}
	return ts
}

func (e *Engine) publish(ctx context.Context, ev events.Event) {
	if err := e.bus.PublishSync(ctx, ev); err != nil {
		e.log.Error("event delivery failed", "event", ev.EventName(), "error", err)
	}
}
