// Package repository holds the session-scoped lead collection. State lives
// only for the lifetime of the process; nothing is persisted.
package repository

import (
	"errors"
	"sync"

	"leadqual_backend/internal/leads/domain"
)

var (
	// ErrLeadNotFound is returned when no lead exists for the given id.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrTerminalLead is returned when a transition is attempted on a lead
	// that already reached a terminal status.
	ErrTerminalLead = errors.New("lead already in a terminal status")
)

// Store is the in-memory lead collection, most-recent-first. The orchestrator
// is the only writer; updates are applied by identity-keyed replacement so
// concurrent completions cannot corrupt each other's records.
type Store struct {
	mu    sync.RWMutex
	leads []domain.ProcessedLead
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Prepend inserts a new lead at the front of the collection.
func (s *Store) Prepend(lead domain.ProcessedLead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]domain.ProcessedLead{lead}, s.leads...)
}

// Get returns the lead with the given id.
func (s *Store) Get(id string) (domain.ProcessedLead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, true
		}
	}
	return domain.ProcessedLead{}, false
}

// Complete replaces the lead's data with the normalized record and applies
// the terminal status. Rejects transitions the state machine does not allow.
func (s *Store) Complete(id string, data domain.LeadRecord, status domain.Status, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		if !s.leads[i].Status.CanTransition(status) {
			return ErrTerminalLead
		}
		s.leads[i].Data = data
		s.leads[i].Status = status
		s.leads[i].Summary = summary
		return nil
	}
	return ErrLeadNotFound
}

// Fail marks the lead as ERROR. Its data stays the pre-submission
// placeholder (name, email, role only).
func (s *Store) Fail(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		if !s.leads[i].Status.CanTransition(domain.StatusError) {
			return ErrTerminalLead
		}
		s.leads[i].Status = domain.StatusError
		return nil
	}
	return ErrLeadNotFound
}

// ToggleExpanded flips the UI detail toggle. This is the only mutation
// permitted on a terminal lead.
func (s *Store) ToggleExpanded(id string) (domain.ProcessedLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID != id {
			continue
		}
		s.leads[i].Expanded = !s.leads[i].Expanded
		return s.leads[i], nil
	}
	return domain.ProcessedLead{}, ErrLeadNotFound
}

// Snapshot returns a copy of the collection, most-recent-first.
func (s *Store) Snapshot() []domain.ProcessedLead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProcessedLead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Len returns the number of leads in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}
