package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
	"cordial/internal/core/domain/component"
)

// dispatchKey identifies one dispatchable item of a registered view. The
// message ID is empty for persistent views registered before their message
// exists; such entries match events from any message that displays them.
type dispatchKey struct {
	ctype     domain.ComponentType
	messageID string
	customID  string
}

// ViewStore routes component interactions to live views. Each dispatchable
// child of a registered view gets its own table entry; events that match no
// entry are dropped silently, since they may belong to another process or a
// view that already finished.
type ViewStore struct {
	mu      sync.Mutex
	entries map[dispatchKey]*component.View
}

func NewViewStore() *ViewStore {
	return &ViewStore{entries: make(map[dispatchKey]*component.View)}
}

// Add registers the view's dispatchable children under the given message ID
// and arms the view's timeout clock. An empty message ID registers the view
// for persistent dispatch. Safe to call again to re-key a view.
func (s *ViewStore) Add(view *component.View, messageID string) {
	s.mu.Lock()
	s.sweepLocked()
	for _, item := range view.Children() {
		if !item.Dispatchable() {
			continue
		}
		s.entries[dispatchKey{item.Type(), messageID, item.CustomID()}] = view
	}
	s.mu.Unlock()

	view.StartListening(func() { s.Remove(view) })
}

// Remove drops every table entry pointing at the view.
func (s *ViewStore) Remove(view *component.View) {
	s.mu.Lock()
	for key, v := range s.entries {
		if v == view {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// Dispatch routes a component interaction to the owning view. Events whose
// exact key misses fall back to the persistent slot, which stays in place so
// the view remains reachable from every message that displays it.
func (s *ViewStore) Dispatch(ctx context.Context, ix *domain.Interaction) bool {
	messageID := ""
	if ix.Message != nil {
		messageID = ix.Message.ID
	}
	key := dispatchKey{ix.Data.ComponentType, messageID, ix.Data.CustomID}

	s.mu.Lock()
	s.sweepLocked()

	view, ok := s.entries[key]
	if !ok && messageID != "" {
		view, ok = s.entries[dispatchKey{ix.Data.ComponentType, "", ix.Data.CustomID}]
	}
	s.mu.Unlock()

	if !ok {
		log.Debug().Str("custom_id", ix.Data.CustomID).Str("message_id", messageID).
			Msg("component event matched no registered view")
		return false
	}
	return view.Dispatch(ctx, ix)
}

// Views returns the distinct live views currently registered.
func (s *ViewStore) Views() []*component.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	out := make([]*component.View, 0, len(s.entries))
	for _, view := range s.entries {
		if _, dup := seen[view.ViewID()]; dup {
			continue
		}
		seen[view.ViewID()] = struct{}{}
		out = append(out, view)
	}
	return out
}

// PersistentViews returns the registered views that survive a restart.
func (s *ViewStore) PersistentViews() []*component.View {
	views := s.Views()
	out := views[:0]
	for _, view := range views {
		if view.Persistent() {
			out = append(out, view)
		}
	}
	return out
}

// StopAll finishes every registered view and clears the table.
func (s *ViewStore) StopAll() {
	views := s.Views()

	s.mu.Lock()
	s.entries = make(map[dispatchKey]*component.View)
	s.mu.Unlock()

	for _, view := range views {
		view.Stop()
	}
}

// sweepLocked drops entries whose view reached a terminal state without
// detaching, keeping the table from accumulating dead views.
func (s *ViewStore) sweepLocked() {
	for key, view := range s.entries {
		if view.IsFinished() {
			delete(s.entries, key)
		}
	}
}
