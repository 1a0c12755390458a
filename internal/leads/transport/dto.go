// Package transport defines the request and response shapes for the
// leads HTTP API.
package transport

import (
	"time"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/leads/domain"
)

// SubmitLeadRequest is the payload for creating a new lead.
type SubmitLeadRequest struct {
	Name       string `json:"name" binding:"required" validate:"required,min=1,max=200"`
	Email      string `json:"email" binding:"required" validate:"required"`
	Company    string `json:"company" validate:"max=200"`
	Role       string `json:"role" validate:"max=200"`
	Transcript string `json:"transcript" validate:"max=5000"`
}

// LeadResponse is a single lead as returned by the API.
type LeadResponse struct {
	ID        string            `json:"id"`
	Data      domain.LeadRecord `json:"leadData"`
	Status    domain.Status     `json:"status"`
	CreatedAt time.Time         `json:"timestamp"`
	Expanded  bool              `json:"expanded"`
	Summary   string            `json:"summary,omitempty"`
}

// LeadFromDomain converts a stored lead into its API shape.
func LeadFromDomain(l domain.ProcessedLead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		Data:      l.Data,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		Expanded:  l.Expanded,
		Summary:   l.Summary,
	}
}

// LeadsFromDomain converts a snapshot preserving order.
func LeadsFromDomain(leads []domain.ProcessedLead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i, l := range leads {
		out[i] = LeadFromDomain(l)
	}
	return out
}

// ActivityEventResponse is a single feed entry.
type ActivityEventResponse struct {
	ID          string        `json:"id"`
	Type        activity.Kind `json:"type"`
	Description string        `json:"description"`
	Timestamp   time.Time     `json:"timestamp"`
}

// ActivityFromDomain converts feed events into their API shape.
func ActivityFromDomain(events []activity.Event) []ActivityEventResponse {
	out := make([]ActivityEventResponse, len(events))
	for i, e := range events {
		out[i] = ActivityEventResponse{
			ID:          e.ID,
			Type:        e.Kind,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		}
	}
	return out
}

// AgentInfo describes one agent in the processing roster.
type AgentInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}
