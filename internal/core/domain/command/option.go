package command

import (
	"context"
	"fmt"

	"cordial/internal/core/domain"
)

// AutocompleteFunc produces dynamic choices for a focused option. The raw
// text the user typed so far is exposed on ix.Query; sibling options that
// were already filled in are available on inv.
type AutocompleteFunc func(ctx context.Context, ix *domain.Interaction, inv *Invocation) ([]domain.AutocompleteChoice, error)

// Choice is one fixed selectable value of an option.
type Choice struct {
	Name  string
	Value any
}

// Option declares one typed parameter of a chat-input command. Build one
// with the typed constructors below and the With* chain, then attach it via
// Definition.AddOption, which validates it.
type Option struct {
	Type         domain.OptionType
	Name         string
	Description  string
	Required     bool
	Choices      []Choice
	ChannelTypes []domain.ChannelType
	MinValue     *float64
	MaxValue     *float64
	Autocomplete AutocompleteFunc
	Default      any
}

func newOption(t domain.OptionType, name, description string) *Option {
	return &Option{Type: t, Name: name, Description: description}
}

func StringOption(name, description string) *Option {
	return newOption(domain.OptionString, name, description)
}

func IntegerOption(name, description string) *Option {
	return newOption(domain.OptionInteger, name, description)
}

func BooleanOption(name, description string) *Option {
	return newOption(domain.OptionBoolean, name, description)
}

func NumberOption(name, description string) *Option {
	return newOption(domain.OptionNumber, name, description)
}

func UserOption(name, description string) *Option {
	return newOption(domain.OptionUser, name, description)
}

func ChannelOption(name, description string) *Option {
	return newOption(domain.OptionChannel, name, description)
}

func RoleOption(name, description string) *Option {
	return newOption(domain.OptionRole, name, description)
}

func MentionableOption(name, description string) *Option {
	return newOption(domain.OptionMentionable, name, description)
}

// WithRequired marks the option as mandatory. Options are optional unless
// marked, mirroring the unwrap of an optional declared type.
func (o *Option) WithRequired() *Option {
	o.Required = true
	return o
}

// WithChoices installs a fixed choice list. Mutually exclusive with an
// autocomplete callback.
func (o *Option) WithChoices(choices ...Choice) *Option {
	o.Choices = append(o.Choices, choices...)
	return o
}

// WithValueChoices derives a choice list from literal values, using each
// value's string form as its display name.
func (o *Option) WithValueChoices(values ...any) *Option {
	for _, v := range values {
		o.Choices = append(o.Choices, Choice{Name: fmt.Sprint(v), Value: v})
	}
	return o
}

// WithChannelTypes restricts a channel option to the union of the given
// channel kinds.
func (o *Option) WithChannelTypes(types ...domain.ChannelType) *Option {
	o.ChannelTypes = append(o.ChannelTypes, types...)
	return o
}

// WithBounds sets the accepted numeric range, inclusive on both ends.
func (o *Option) WithBounds(min, max float64) *Option {
	o.MinValue = &min
	o.MaxValue = &max
	return o
}

func (o *Option) WithAutocomplete(fn AutocompleteFunc) *Option {
	o.Autocomplete = fn
	return o
}

// WithDefault sets the value delivered when the option is absent from the
// payload. Without a default, absent options read as the missing sentinel.
func (o *Option) WithDefault(v any) *Option {
	o.Default = v
	return o
}

func (o *Option) isNumeric() bool {
	return o.Type == domain.OptionInteger || o.Type == domain.OptionNumber
}

// validate enforces the definition-time rules. Called when the option is
// attached to a definition.
func (o *Option) validate() error {
	if o.Name == "" {
		return fmt.Errorf("option has no name")
	}
	if o.Description == "" {
		return fmt.Errorf("option %q has no description", o.Name)
	}

	switch o.Type {
	case domain.OptionString, domain.OptionInteger, domain.OptionBoolean, domain.OptionNumber,
		domain.OptionUser, domain.OptionChannel, domain.OptionRole, domain.OptionMentionable:
	default:
		return fmt.Errorf("option %q has incompatible type %d", o.Name, o.Type)
	}

	if len(o.Choices) > 0 && o.Autocomplete != nil {
		return fmt.Errorf("option %q cannot have both choices and an autocomplete callback", o.Name)
	}
	if len(o.Choices) > 0 && !o.Type.IsScalar() {
		return fmt.Errorf("option %q: choices are only valid on scalar options", o.Name)
	}
	if len(o.ChannelTypes) > 0 && o.Type != domain.OptionChannel {
		return fmt.Errorf("option %q: channel types are only valid on channel options", o.Name)
	}
	if (o.MinValue != nil || o.MaxValue != nil) && !o.isNumeric() {
		return fmt.Errorf("option %q: bounds are only valid on numeric options", o.Name)
	}
	if o.MinValue != nil && o.MaxValue != nil && *o.MaxValue < *o.MinValue {
		return fmt.Errorf("option %q: max value is below min value", o.Name)
	}

	return nil
}
