package component

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"cordial/internal/core/domain"
)

// ItemCallback runs when the user interacts with a dispatchable item.
type ItemCallback func(ctx context.Context, ix *domain.Interaction) error

// Item is one UI control held by a view or modal. The concrete kinds are
// Button, SelectMenu and TextInput; the set is closed within this package.
type Item interface {
	Type() domain.ComponentType
	CustomID() string
	// Width is the number of row units the item occupies.
	Width() int
	// Row is the explicitly requested row, or -1 for automatic placement.
	Row() int
	// Dispatchable reports whether events can be routed to this item.
	Dispatchable() bool
	// Persistent reports whether the custom ID was caller-provided, making
	// the item stable across process restarts.
	Persistent() bool
	ToComponent() map[string]any

	renderedRow() int
	setRenderedRow(int)
	refreshState(ix *domain.Interaction)
	inject(field domain.SubmittedField)
	invoke(ctx context.Context, ix *domain.Interaction) error
}

type baseItem struct {
	row        int
	rendered   int
	providedID bool
}

func newBaseItem() baseItem {
	return baseItem{row: -1, rendered: -1}
}

func (b *baseItem) Row() int                                          { return b.row }
func (b *baseItem) renderedRow() int                                  { return b.rendered }
func (b *baseItem) setRenderedRow(row int)                            { b.rendered = row }
func (b *baseItem) Persistent() bool                                  { return b.providedID }
func (b *baseItem) refreshState(_ *domain.Interaction)                {}
func (b *baseItem) inject(_ domain.SubmittedField)                    {}
func (b *baseItem) invoke(context.Context, *domain.Interaction) error { return nil }

// generateCustomID mints a stable-for-this-process identifier for items the
// caller did not name.
func generateCustomID() string {
	return uuid.Must(uuid.NewV4()).String()
}
