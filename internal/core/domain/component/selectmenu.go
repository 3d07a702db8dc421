package component

import (
	"context"
	"sync"

	"cordial/internal/core/domain"
)

// SelectOption is one selectable entry of a SelectMenu.
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Default     bool
}

// SelectMenu is a full-width view item offering a bounded selection. The
// selected values are transient per-submission state refreshed from each
// dispatching payload.
type SelectMenu struct {
	baseItem

	customID    string
	placeholder string
	minValues   int
	maxValues   int
	options     []SelectOption
	onSelect    ItemCallback

	mu     sync.Mutex
	values []string
}

func NewSelectMenu(options ...SelectOption) *SelectMenu {
	return &SelectMenu{
		baseItem:  newBaseItem(),
		customID:  generateCustomID(),
		minValues: 1,
		maxValues: 1,
		options:   options,
	}
}

func (s *SelectMenu) WithCustomID(id string) *SelectMenu {
	s.customID = id
	s.providedID = true
	return s
}

func (s *SelectMenu) WithPlaceholder(text string) *SelectMenu {
	s.placeholder = text
	return s
}

// WithValueRange sets how many entries the user must and may select.
func (s *SelectMenu) WithValueRange(min, max int) *SelectMenu {
	s.minValues = min
	s.maxValues = max
	return s
}

func (s *SelectMenu) WithRow(row int) *SelectMenu {
	s.row = row
	return s
}

func (s *SelectMenu) OnSelect(fn ItemCallback) *SelectMenu {
	s.onSelect = fn
	return s
}

func (s *SelectMenu) Type() domain.ComponentType { return domain.ComponentSelectMenu }
func (s *SelectMenu) CustomID() string           { return s.customID }

// Width is the full row; a select menu never shares a row.
func (s *SelectMenu) Width() int { return 5 }

func (s *SelectMenu) Dispatchable() bool { return s.customID != "" }

// Values returns the entries selected in the submission currently being
// dispatched.
func (s *SelectMenu) Values() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.values...)
}

func (s *SelectMenu) refreshState(ix *domain.Interaction) {
	if ix.Data == nil {
		return
	}
	s.mu.Lock()
	s.values = append([]string(nil), ix.Data.Values...)
	s.mu.Unlock()
}

func (s *SelectMenu) invoke(ctx context.Context, ix *domain.Interaction) error {
	if s.onSelect == nil {
		return nil
	}
	return s.onSelect(ctx, ix)
}

func (s *SelectMenu) ToComponent() map[string]any {
	opts := make([]map[string]any, 0, len(s.options))
	for _, o := range s.options {
		e := map[string]any{"label": o.Label, "value": o.Value}
		if o.Description != "" {
			e["description"] = o.Description
		}
		if o.Default {
			e["default"] = true
		}
		opts = append(opts, e)
	}

	c := map[string]any{
		"type":       int(domain.ComponentSelectMenu),
		"custom_id":  s.customID,
		"options":    opts,
		"min_values": s.minValues,
		"max_values": s.maxValues,
	}
	if s.placeholder != "" {
		c["placeholder"] = s.placeholder
	}
	return c
}
