package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
	"cordial/internal/core/domain/component"
)

// ModalStore routes modal submissions to live modals, keyed by the custom
// ID the submit interaction echoes back. A modal is single-use: its entry is
// dropped as soon as a submission claims it.
type ModalStore struct {
	mu      sync.Mutex
	entries map[string]*component.Modal
}

func NewModalStore() *ModalStore {
	return &ModalStore{entries: make(map[string]*component.Modal)}
}

// Add registers the modal and arms its timeout clock.
func (s *ModalStore) Add(modal *component.Modal) {
	s.mu.Lock()
	s.sweepLocked()
	s.entries[modal.ModalCustomID()] = modal
	s.mu.Unlock()

	modal.StartListening(func() { s.Remove(modal) })
}

// Remove drops the modal's entry if it still points at this modal.
func (s *ModalStore) Remove(modal *component.Modal) {
	s.mu.Lock()
	if current, ok := s.entries[modal.ModalCustomID()]; ok && current == modal {
		delete(s.entries, modal.ModalCustomID())
	}
	s.mu.Unlock()
}

// Dispatch routes a modal submission to the owning modal, claiming its
// entry. Submissions that match no entry are dropped silently.
func (s *ModalStore) Dispatch(ctx context.Context, ix *domain.Interaction) bool {
	s.mu.Lock()
	s.sweepLocked()
	modal, ok := s.entries[ix.Data.CustomID]
	if ok {
		delete(s.entries, ix.Data.CustomID)
	}
	s.mu.Unlock()

	if !ok {
		log.Debug().Str("custom_id", ix.Data.CustomID).
			Msg("modal submission matched no registered modal")
		return false
	}
	return modal.Dispatch(ctx, ix)
}

// Modals returns the live modals currently registered.
func (s *ModalStore) Modals() []*component.Modal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*component.Modal, 0, len(s.entries))
	for _, modal := range s.entries {
		out = append(out, modal)
	}
	return out
}

// StopAll finishes every registered modal and clears the table.
func (s *ModalStore) StopAll() {
	modals := s.Modals()

	s.mu.Lock()
	s.entries = make(map[string]*component.Modal)
	s.mu.Unlock()

	for _, modal := range modals {
		modal.Stop()
	}
}

func (s *ModalStore) sweepLocked() {
	for key, modal := range s.entries {
		if modal.IsFinished() {
			delete(s.entries, key)
		}
	}
}
