// Package store holds the canonical lead and deal collections. All
// mutations route through the lifecycle service; readers only ever see
// snapshot copies, so they cannot bypass the service's invariants.
package store

import (
	"errors"
	"sync"

	"sales_crm_backend/internal/crm/domain"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrOutOfRange = errors.New("index out of range")
)

// Store owns the in-memory collections. The collections are small and the
// mutation model is single-writer run-to-completion; the mutex is the
// boundary that keeps compound operations (ConvertLead in particular)
// atomic if the store is ever shared across goroutines.
type Store struct {
	mu    sync.RWMutex
	leads []domain.Lead
	deals []domain.Deal
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Seed replaces both collections. Intended for startup and tests.
func (s *Store) Seed(leads []domain.Lead, deals []domain.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]domain.Lead(nil), leads...)
	s.deals = append([]domain.Deal(nil), deals...)
}

// Leads returns a snapshot copy of the lead collection.
func (s *Store) Leads() []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Lead(nil), s.leads...)
}

// Deals returns a snapshot copy of the deal collection.
func (s *Store) Deals() []domain.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Deal(nil), s.deals...)
}

// Snapshot returns copies of both collections taken under one lock, so the
// pair is mutually consistent.
func (s *Store) Snapshot() ([]domain.Lead, []domain.Deal) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Lead(nil), s.leads...), append([]domain.Deal(nil), s.deals...)
}

// GetLead returns the lead with the given id or ErrNotFound.
func (s *Store) GetLead(id string) (domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Lead{}, ErrNotFound
}

// GetDeal returns the deal with the given id or ErrNotFound.
func (s *Store) GetDeal(id string) (domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.deals {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Deal{}, ErrNotFound
}

// InsertLead appends a lead to the collection.
func (s *Store) InsertLead(l domain.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, l)
}

// InsertDeal prepends a deal so the newest deal shows first in its stage.
func (s *Store) InsertDeal(d domain.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append([]domain.Deal{d}, s.deals...)
}

// ReplaceLead swaps the stored lead with the same id.
func (s *Store) ReplaceLead(l domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == l.ID {
			s.leads[i] = l
			return nil
		}
	}
	return ErrNotFound
}

// ReplaceDeal swaps the stored deal with the same id, keeping its position.
func (s *Store) ReplaceDeal(d domain.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deals {
		if s.deals[i].ID == d.ID {
			s.deals[i] = d
			return nil
		}
	}
	return ErrNotFound
}

// RemoveLead deletes the lead and reports whether anything was removed.
func (s *Store) RemoveLead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLeadLocked(id)
}

func (s *Store) removeLeadLocked(id string) bool {
	for i := range s.leads {
		if s.leads[i].ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			return true
		}
	}
	return false
}

// ConvertLead removes the lead and prepends the deal under a single lock
// acquisition. No reader can observe a state where both or neither exist.
func (s *Store) ConvertLead(leadID string, d domain.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removeLeadLocked(leadID) {
		return ErrNotFound
	}
	s.deals = append([]domain.Deal{d}, s.deals...)
	return nil
}

// MoveDealWithinStage moves the deal to newIndex among the deals sharing
// its status. Display order only: neither Status nor UpdatedAt changes.
// newIndex may equal the stage size, which means "move to end".
func (s *Store) MoveDealWithinStage(id string, newIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := -1
	for i := range s.deals {
		if s.deals[i].ID == id {
			cur = i
			break
		}
	}
	if cur == -1 {
		return ErrNotFound
	}

	status := s.deals[cur].Status

	// Global positions of the deals in this stage, in display order.
	var stageIdx []int
	for i := range s.deals {
		if s.deals[i].Status == status {
			stageIdx = append(stageIdx, i)
		}
	}
	if newIndex < 0 || newIndex > len(stageIdx) {
		return ErrOutOfRange
	}

	deal := s.deals[cur]
	rest := append(append([]domain.Deal(nil), s.deals[:cur]...), s.deals[cur+1:]...)

	// Find the global position in rest corresponding to slot newIndex of
	// the stage bucket.
	insertAt := len(rest)
	seen := 0
	for i := range rest {
		if rest[i].Status != status {
			continue
		}
		if seen == newIndex {
			insertAt = i
			break
		}
		seen++
	}

	rest = append(rest, domain.Deal{})
	copy(rest[insertAt+1:], rest[insertAt:])
	rest[insertAt] = deal
	s.deals = rest
	return nil
}
