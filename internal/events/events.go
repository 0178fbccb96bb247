// Package events provides domain event definitions for decoupled,
// event-driven communication between the CRM core and its consumers.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"sales_crm_backend/platform/events"
	"sales_crm_backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// CRM Domain Events
// =============================================================================

// LeadCreated is published when a new lead enters the system.
type LeadCreated struct {
	BaseEvent
	LeadID  string `json:"leadId"`
	Company string `json:"company"`
	Source  string `json:"source,omitempty"`
}

func (e LeadCreated) EventName() string { return "crm.lead.created" }

// LeadUpdated is published when a lead is patched.
type LeadUpdated struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadUpdated) EventName() string { return "crm.lead.updated" }

// LeadDeleted is published when a lead is removed. It is not published for
// no-op deletes of unknown ids.
type LeadDeleted struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "crm.lead.deleted" }

// LeadConverted is published when a lead is converted into a deal. By the
// time handlers run, the lead is gone and the deal is visible.
type LeadConverted struct {
	BaseEvent
	LeadID  string  `json:"leadId"`
	DealID  string  `json:"dealId"`
	Company string  `json:"company"`
	Amount  float64 `json:"amount"`
}

func (e LeadConverted) EventName() string { return "crm.lead.converted" }

// DealCreated is published when a deal is added manually.
type DealCreated struct {
	BaseEvent
	DealID string  `json:"dealId"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

func (e DealCreated) EventName() string { return "crm.deal.created" }

// DealStageChanged is published when a deal moves between pipeline stages,
// whether by manual edit or drag-and-drop.
type DealStageChanged struct {
	BaseEvent
	DealID   string `json:"dealId"`
	OldStage string `json:"oldStage"`
	NewStage string `json:"newStage"`
}

func (e DealStageChanged) EventName() string { return "crm.deal.stage_changed" }

// DealsReordered is published when display order changes within a stage.
type DealsReordered struct {
	BaseEvent
	DealID   string `json:"dealId"`
	Stage    string `json:"stage"`
	NewIndex int    `json:"newIndex"`
}

func (e DealsReordered) EventName() string { return "crm.deals.reordered" }
