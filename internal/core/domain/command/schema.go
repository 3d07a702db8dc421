package command

import "cordial/internal/core/domain"

// Wire schema shapes sent to the remote service when registering commands.

type Schema struct {
	Type              int            `json:"type"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	DefaultPermission bool           `json:"default_permission"`
	Options           []OptionSchema `json:"options,omitempty"`
}

type OptionSchema struct {
	Type         int            `json:"type"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Required     bool           `json:"required,omitempty"`
	Choices      []ChoiceSchema `json:"choices,omitempty"`
	ChannelTypes []int          `json:"channel_types,omitempty"`
	MinValue     *float64       `json:"min_value,omitempty"`
	MaxValue     *float64       `json:"max_value,omitempty"`
	Autocomplete bool           `json:"autocomplete,omitempty"`
	Options      []OptionSchema `json:"options,omitempty"`
}

type ChoiceSchema struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ToWire derives the transmissible schema for a top-level definition.
// Children render before plain options, mirroring the nesting rules the
// remote service enforces.
func (d *Definition) ToWire() Schema {
	s := Schema{
		Type:              int(d.kind),
		Name:              d.name,
		DefaultPermission: d.defaultEnabled,
	}
	if d.kind == domain.CommandChatInput {
		s.Description = d.description
	}

	for _, child := range d.Children() {
		s.Options = append(s.Options, child.toOptionSchema())
	}
	for _, o := range d.options {
		s.Options = append(s.Options, o.toSchema())
	}

	return s
}

// toOptionSchema renders a nested command as an option entry, classified as
// a group when it has children of its own and a subcommand otherwise.
func (d *Definition) toOptionSchema() OptionSchema {
	kind := domain.OptionSubcommand
	if d.HasChildren() {
		kind = domain.OptionSubcommandGroup
	}

	s := OptionSchema{
		Type:        int(kind),
		Name:        d.name,
		Description: d.description,
	}

	for _, child := range d.Children() {
		s.Options = append(s.Options, child.toOptionSchema())
	}
	for _, o := range d.options {
		s.Options = append(s.Options, o.toSchema())
	}

	return s
}

func (o *Option) toSchema() OptionSchema {
	s := OptionSchema{
		Type:         int(o.Type),
		Name:         o.Name,
		Description:  o.Description,
		Required:     o.Required,
		MinValue:     o.MinValue,
		MaxValue:     o.MaxValue,
		Autocomplete: o.Autocomplete != nil,
	}

	for _, c := range o.Choices {
		s.Choices = append(s.Choices, ChoiceSchema{Name: c.Name, Value: c.Value})
	}
	for _, t := range o.ChannelTypes {
		s.ChannelTypes = append(s.ChannelTypes, int(t))
	}

	return s
}
