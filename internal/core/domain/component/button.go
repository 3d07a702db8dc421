package component

import (
	"context"

	"cordial/internal/core/domain"
)

// Button is a single-width clickable view item. Link buttons carry a URL
// instead of a custom ID and cannot be dispatched to.
type Button struct {
	baseItem

	label    string
	style    domain.ButtonStyle
	customID string
	url      string
	disabled bool
	onClick  ItemCallback
}

func NewButton(style domain.ButtonStyle, label string) *Button {
	return &Button{
		baseItem: newBaseItem(),
		style:    style,
		label:    label,
		customID: generateCustomID(),
	}
}

// NewLinkButton builds a URL button. It has no custom ID and no callback.
func NewLinkButton(label, url string) *Button {
	return &Button{
		baseItem: newBaseItem(),
		style:    domain.ButtonLink,
		label:    label,
		url:      url,
	}
}

// WithCustomID replaces the generated ID with a caller-provided stable one,
// marking the button persistent.
func (b *Button) WithCustomID(id string) *Button {
	b.customID = id
	b.providedID = true
	return b
}

func (b *Button) WithRow(row int) *Button {
	b.row = row
	return b
}

func (b *Button) WithDisabled() *Button {
	b.disabled = true
	return b
}

func (b *Button) OnClick(fn ItemCallback) *Button {
	b.onClick = fn
	return b
}

func (b *Button) Type() domain.ComponentType { return domain.ComponentButton }
func (b *Button) CustomID() string           { return b.customID }
func (b *Button) Width() int                 { return 1 }
func (b *Button) Label() string              { return b.label }

func (b *Button) Dispatchable() bool {
	return b.style != domain.ButtonLink && b.customID != ""
}

func (b *Button) invoke(ctx context.Context, ix *domain.Interaction) error {
	if b.onClick == nil {
		return nil
	}
	return b.onClick(ctx, ix)
}

func (b *Button) ToComponent() map[string]any {
	c := map[string]any{
		"type":  int(domain.ComponentButton),
		"style": int(b.style),
		"label": b.label,
	}
	if b.disabled {
		c["disabled"] = true
	}
	if b.style == domain.ButtonLink {
		c["url"] = b.url
	} else {
		c["custom_id"] = b.customID
	}
	return c
}
