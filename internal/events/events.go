// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadqual_backend/internal/leads/domain"
	"leadqual_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// LeadSubmitted is published when a new lead enters the pipeline.
type LeadSubmitted struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	LeadName  string `json:"leadName"`
	LeadEmail string `json:"leadEmail"`
	SessionID string `json:"sessionId"`
}

func (e LeadSubmitted) EventName() string { return "leads.lead.submitted" }

// LeadCompleted is published when a lead reaches QUALIFIED or DISQUALIFIED.
type LeadCompleted struct {
	BaseEvent
	LeadID string        `json:"leadId"`
	Status domain.Status `json:"status"`
}

func (e LeadCompleted) EventName() string { return "leads.lead.completed" }

// LeadFailed is published when processing ends in ERROR.
type LeadFailed struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Reason string `json:"reason"`
}

func (e LeadFailed) EventName() string { return "leads.lead.failed" }
