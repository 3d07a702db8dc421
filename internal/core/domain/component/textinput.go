package component

import (
	"sync"

	"cordial/internal/core/domain"
)

// TextInput is a modal item collecting free-form text. Its submitted value
// is only present after the owning modal's fields were injected.
type TextInput struct {
	baseItem

	label       string
	style       domain.TextInputStyle
	customID    string
	minLength   int
	maxLength   int
	required    bool
	placeholder string
	initial     string

	mu        sync.Mutex
	value     string
	submitted bool
}

func NewTextInput(label string) *TextInput {
	return &TextInput{
		baseItem: newBaseItem(),
		label:    label,
		style:    domain.TextInputShort,
		customID: generateCustomID(),
	}
}

func (t *TextInput) WithCustomID(id string) *TextInput {
	t.customID = id
	t.providedID = true
	return t
}

func (t *TextInput) WithStyle(style domain.TextInputStyle) *TextInput {
	t.style = style
	return t
}

func (t *TextInput) WithLengthLimits(min, max int) *TextInput {
	t.minLength = min
	t.maxLength = max
	return t
}

func (t *TextInput) WithRequired() *TextInput {
	t.required = true
	return t
}

func (t *TextInput) WithPlaceholder(text string) *TextInput {
	t.placeholder = text
	return t
}

// WithInitial pre-fills the input shown to the user.
func (t *TextInput) WithInitial(value string) *TextInput {
	t.initial = value
	return t
}

func (t *TextInput) WithRow(row int) *TextInput {
	t.row = row
	return t
}

func (t *TextInput) Type() domain.ComponentType { return domain.ComponentTextInput }
func (t *TextInput) CustomID() string           { return t.customID }
func (t *TextInput) Width() int                 { return 1 }
func (t *TextInput) Label() string              { return t.label }

func (t *TextInput) Dispatchable() bool { return t.customID != "" }

// Value returns the submitted text. The second return is false before
// submission, distinguishing "not submitted" from an empty submission.
func (t *TextInput) Value() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.submitted
}

func (t *TextInput) inject(field domain.SubmittedField) {
	t.mu.Lock()
	t.value = field.Value
	t.submitted = true
	t.mu.Unlock()
}

func (t *TextInput) ToComponent() map[string]any {
	c := map[string]any{
		"type":      int(domain.ComponentTextInput),
		"style":     int(t.style),
		"label":     t.label,
		"custom_id": t.customID,
		"required":  t.required,
	}
	if t.minLength > 0 {
		c["min_length"] = t.minLength
	}
	if t.maxLength > 0 {
		c["max_length"] = t.maxLength
	}
	if t.placeholder != "" {
		c["placeholder"] = t.placeholder
	}
	if t.initial != "" {
		c["value"] = t.initial
	}
	return c
}
