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
	maxViewChildren = 25
	viewRowWidth    = 5
	viewRows        = 5
)

// View is a container of message components sharing one timeout clock.
// Children are laid out into action rows on add; interaction events routed
// to the view refresh its expiry and run on their own goroutine.
type View struct {
	// Check gates every child callback. Returning false drops the event
	// silently; returning an error routes it to OnError.
	Check func(ctx context.Context, ix *domain.Interaction) (bool, error)
	// OnError receives faults from child callbacks and from Check. When nil,
	// faults are logged and swallowed.
	OnError func(ctx context.Context, item Item, ix *domain.Interaction, err error)
	// OnTimeout runs exactly once if the view times out before being stopped.
	OnTimeout func()

	id       string
	children []Item
	weights  *ItemWeights
	lc       *lifecycle
}

// NewView creates a view with the given inactivity timeout. A zero timeout
// means the view never expires on its own.
func NewView(timeout time.Duration) *View {
	return &View{
		id:      uuid.Must(uuid.NewV4()).String(),
		weights: newItemWeights(viewRowWidth, viewRows),
		lc:      newLifecycle(timeout),
	}
}

// ViewID is the process-unique identity used for store registration.
func (v *View) ViewID() string { return v.id }

// AddItem lays the item out into a row and registers it as a child. The
// child limit is checked before anything is mutated, so a failed add leaves
// the view untouched.
func (v *View) AddItem(item Item) error {
	if len(v.children) >= maxViewChildren {
		return fmt.Errorf("%w: view holds at most %d items", domain.ErrTooManyChildren, maxViewChildren)
	}
	if err := v.weights.AddItem(item); err != nil {
		return err
	}
	v.children = append(v.children, item)
	return nil
}

// MustAddItem is AddItem for static layouts built at startup.
func (v *View) MustAddItem(item Item) *View {
	if err := v.AddItem(item); err != nil {
		panic(err)
	}
	return v
}

// RemoveItem releases the item's row capacity and drops it from the view.
func (v *View) RemoveItem(item Item) {
	for i, child := range v.children {
		if child == item {
			v.weights.RemoveItem(item)
			v.children = append(v.children[:i], v.children[i+1:]...)
			return
		}
	}
}

// Clear removes all children.
func (v *View) Clear() {
	v.weights.Clear()
	for _, child := range v.children {
		child.setRenderedRow(-1)
	}
	v.children = nil
}

func (v *View) Children() []Item {
	out := make([]Item, len(v.children))
	copy(out, v.children)
	return out
}

// Persistent reports whether the view survives a process restart: no
// timeout and every child carries a caller-provided custom ID.
func (v *View) Persistent() bool {
	if v.lc.timeout > 0 {
		return false
	}
	for _, child := range v.children {
		if !child.Persistent() {
			return false
		}
	}
	return true
}

// ToComponents renders the children grouped into wire action rows.
func (v *View) ToComponents() []map[string]any {
	return renderRows(v.children, viewRows)
}

// child finds the dispatch target for a component event.
func (v *View) child(ctype domain.ComponentType, customID string) (Item, bool) {
	for _, item := range v.children {
		if item.Dispatchable() && item.Type() == ctype && item.CustomID() == customID {
			return item, true
		}
	}
	return nil, false
}

// Dispatch routes a component interaction to the matching child and runs
// its callback on a fresh goroutine. Events arriving after the view
// finished, or naming no child, are dropped.
func (v *View) Dispatch(ctx context.Context, ix *domain.Interaction) bool {
	if v.lc.IsFinished() {
		return false
	}
	item, ok := v.child(ix.Data.ComponentType, ix.Data.CustomID)
	if !ok {
		return false
	}

	v.lc.refresh()
	item.refreshState(ix)
	go v.scheduledTask(ctx, item, ix)
	return true
}

func (v *View) scheduledTask(ctx context.Context, item Item, ix *domain.Interaction) {
	defer func() {
		if r := recover(); r != nil {
			v.reportError(ctx, item, ix, fmt.Errorf("item callback panicked: %v", r))
		}
	}()

	if v.Check != nil {
		ok, err := v.Check(ctx, ix)
		if err != nil {
			v.reportError(ctx, item, ix, err)
			return
		}
		if !ok {
			return
		}
	}

	if err := item.invoke(ctx, ix); err != nil {
		v.reportError(ctx, item, ix, err)
		return
	}

	if ix.Response != nil && !ix.Responded() {
		if err := ix.Response.Defer(ctx, false); err != nil {
			log.Debug().Err(err).Str("view_id", v.id).Msg("auto-defer after item callback failed")
		}
	}
}

func (v *View) reportError(ctx context.Context, item Item, ix *domain.Interaction, err error) {
	if v.OnError != nil {
		v.OnError(ctx, item, ix, err)
		return
	}
	log.Error().Err(err).
		Str("view_id", v.id).
		Str("custom_id", item.CustomID()).
		Msg("view item callback failed")
}

// StartListening arms the timeout clock and records the callback that
// detaches the view from its store on a terminal transition. Called by the
// view store on Add.
func (v *View) StartListening(detach func()) {
	v.lc.startListening(detach, func() {
		if v.OnTimeout != nil {
			v.OnTimeout()
		}
	})
}

// Stop finishes the view and detaches it from its store. Idempotent.
func (v *View) Stop() { v.lc.Stop() }

// IsFinished reports whether the view was stopped or timed out.
func (v *View) IsFinished() bool { return v.lc.IsFinished() }

// Wait blocks until the view finishes. The boolean is true on timeout.
func (v *View) Wait(ctx context.Context) (bool, error) { return v.lc.Wait(ctx) }
