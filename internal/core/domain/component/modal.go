package component

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
)

const (
	maxModalChildren = 5
	modalRowWidth    = 1
	modalRows        = 5
)

type modalKey struct {
	ctype    domain.ComponentType
	customID string
}

// Modal is a container of form inputs presented as a dialog. Submitted
// values are injected into the matching children before the submit handler
// runs, so the handler reads them straight off the items it holds.
type Modal struct {
	// Handler runs on submit, after field injection.
	Handler func(ctx context.Context, ix *domain.Interaction) error
	// Check gates Handler. Returning false drops the submission silently;
	// returning an error routes it to OnError.
	Check func(ctx context.Context, ix *domain.Interaction) (bool, error)
	// OnError receives faults from Handler and Check. When nil, faults are
	// logged and swallowed.
	OnError func(ctx context.Context, ix *domain.Interaction, err error)
	// OnTimeout runs exactly once if the modal times out unsubmitted.
	OnTimeout func()

	title    string
	customID string
	children []Item
	index    map[modalKey]Item
	weights  *ItemWeights
	lc       *lifecycle
}

// NewModal creates a modal with the given title and inactivity timeout. A
// zero timeout means the modal waits for its submission indefinitely.
func NewModal(title string, timeout time.Duration) *Modal {
	return &Modal{
		title:    title,
		customID: uuid.Must(uuid.NewV4()).String(),
		index:    make(map[modalKey]Item),
		weights:  newItemWeights(modalRowWidth, modalRows),
		lc:       newLifecycle(timeout),
	}
}

// WithCustomID overrides the generated custom ID, making the modal routable
// across process restarts.
func (m *Modal) WithCustomID(id string) *Modal {
	m.customID = id
	return m
}

// ModalCustomID is the identity the submit interaction echoes back.
func (m *Modal) ModalCustomID() string { return m.customID }

func (m *Modal) Title() string { return m.title }

// AddItem registers a form input. Each input takes a full row; the child
// limit is checked before anything is mutated.
func (m *Modal) AddItem(item Item) error {
	if len(m.children) >= maxModalChildren {
		return fmt.Errorf("%w: modal holds at most %d items", domain.ErrTooManyChildren, maxModalChildren)
	}
	if err := m.weights.AddItem(item); err != nil {
		return err
	}
	m.children = append(m.children, item)
	m.index[modalKey{item.Type(), item.CustomID()}] = item
	return nil
}

// MustAddItem is AddItem for static layouts built at startup.
func (m *Modal) MustAddItem(item Item) *Modal {
	if err := m.AddItem(item); err != nil {
		panic(err)
	}
	return m
}

func (m *Modal) Children() []Item {
	out := make([]Item, len(m.children))
	copy(out, m.children)
	return out
}

// ToModalPayload renders the wire shape of a modal response.
func (m *Modal) ToModalPayload() map[string]any {
	return map[string]any{
		"title":      m.title,
		"custom_id":  m.customID,
		"components": renderRows(m.children, modalRows),
	}
}

// injectFields copies each submitted value into the child it belongs to.
// Fields naming no child are skipped; the submission is still handled with
// whatever matched.
func (m *Modal) injectFields(rows []domain.ComponentRow) {
	for _, row := range rows {
		for _, field := range row.Components {
			item, ok := m.index[modalKey{field.Type, field.CustomID}]
			if !ok {
				log.Debug().
					Str("modal_custom_id", m.customID).
					Str("field_custom_id", field.CustomID).
					Msg("modal submission carried an unknown field")
				continue
			}
			item.inject(field)
		}
	}
}

// Dispatch injects the submitted fields and runs the submit handler on a
// fresh goroutine. Submissions arriving after the modal finished are
// dropped.
func (m *Modal) Dispatch(ctx context.Context, ix *domain.Interaction) bool {
	if m.lc.IsFinished() {
		return false
	}

	m.lc.refresh()
	m.injectFields(ix.Data.Components)
	go m.scheduledTask(ctx, ix)
	return true
}

func (m *Modal) scheduledTask(ctx context.Context, ix *domain.Interaction) {
	defer func() {
		if r := recover(); r != nil {
			m.reportError(ctx, ix, fmt.Errorf("modal handler panicked: %v", r))
		}
	}()

	if m.Check != nil {
		ok, err := m.Check(ctx, ix)
		if err != nil {
			m.reportError(ctx, ix, err)
			return
		}
		if !ok {
			return
		}
	}

	if m.Handler != nil {
		if err := m.Handler(ctx, ix); err != nil {
			m.reportError(ctx, ix, err)
			return
		}
	}

	if ix.Response != nil && !ix.Responded() {
		if err := ix.Response.Defer(ctx, false); err != nil {
			log.Debug().Err(err).Str("modal_custom_id", m.customID).Msg("auto-defer after modal handler failed")
		}
	}

	// A successfully handled submission finishes the modal.
	m.lc.Stop()
}

func (m *Modal) reportError(ctx context.Context, ix *domain.Interaction, err error) {
	if m.OnError != nil {
		m.OnError(ctx, ix, err)
		return
	}
	log.Error().Err(err).Str("modal_custom_id", m.customID).Msg("modal handler failed")
}

// StartListening arms the timeout clock and records the callback that
// detaches the modal from its store on a terminal transition. Called by the
// modal store on Add.
func (m *Modal) StartListening(detach func()) {
	m.lc.startListening(detach, func() {
		if m.OnTimeout != nil {
			m.OnTimeout()
		}
	})
}

// Stop finishes the modal and detaches it from its store. Idempotent.
func (m *Modal) Stop() { m.lc.Stop() }

// IsFinished reports whether the modal was stopped, submitted or timed out.
func (m *Modal) IsFinished() bool { return m.lc.IsFinished() }

// Wait blocks until the modal finishes. The boolean is true on timeout.
func (m *Modal) Wait(ctx context.Context) (bool, error) { return m.lc.Wait(ctx) }
