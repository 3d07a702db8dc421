package command

import (
	"context"
	"fmt"
	"strings"

	"cordial/internal/core/domain"
)

// Handler is the callback of a leaf command.
type Handler func(ctx context.Context, ix *domain.Interaction, inv *Invocation) error

// CheckFunc is the authorization gate run before a handler. Returning false
// suppresses the handler silently; returning an error routes it to the
// error hook.
type CheckFunc func(ctx context.Context, ix *domain.Interaction, inv *Invocation) (bool, error)

// ErrorFunc receives faults raised by a check or handler.
type ErrorFunc func(ctx context.Context, ix *domain.Interaction, err error)

// Definition is one declaratively defined application command. It is built
// once at startup and treated as immutable after registration. A definition
// with children is a grouping node and may not carry its own handler.
type Definition struct {
	name           string
	description    string
	kind           domain.CommandType
	defaultEnabled bool
	guildID        string

	options     []*Option
	optionIndex map[string]*Option

	children   map[string]*Definition
	childOrder []string
	parent     *Definition

	handler Handler
	check   CheckFunc
	onError ErrorFunc
}

// New declares a chat-input command. Names are case-folded the way the
// remote service stores them.
func New(name, description string) *Definition {
	return &Definition{
		name:           strings.ToLower(name),
		description:    description,
		kind:           domain.CommandChatInput,
		defaultEnabled: true,
		optionIndex:    map[string]*Option{},
		children:       map[string]*Definition{},
	}
}

// NewUserCommand declares a user-target context menu command. Context menu
// names keep their casing and carry no description.
func NewUserCommand(name string) *Definition {
	d := New(name, "")
	d.name = name
	d.kind = domain.CommandUser
	return d
}

// NewMessageCommand declares a message-target context menu command.
func NewMessageCommand(name string) *Definition {
	d := New(name, "")
	d.name = name
	d.kind = domain.CommandMessage
	return d
}

func (d *Definition) Name() string             { return d.name }
func (d *Definition) Description() string      { return d.description }
func (d *Definition) Kind() domain.CommandType { return d.kind }
func (d *Definition) Parent() *Definition      { return d.parent }
func (d *Definition) GuildID() string          { return d.guildID }
func (d *Definition) DefaultEnabled() bool     { return d.defaultEnabled }
func (d *Definition) Handler() Handler         { return d.handler }

// Options returns the declared options in declaration order.
func (d *Definition) Options() []*Option { return d.options }

// Option returns the declared option with the given name.
func (d *Definition) Option(name string) (*Option, bool) {
	o, ok := d.optionIndex[name]
	return o, ok
}

// Child returns the direct child command with the given name.
func (d *Definition) Child(name string) (*Definition, bool) {
	c, ok := d.children[name]
	return c, ok
}

// Children returns the direct children in declaration order.
func (d *Definition) Children() []*Definition {
	out := make([]*Definition, 0, len(d.childOrder))
	for _, name := range d.childOrder {
		out = append(out, d.children[name])
	}
	return out
}

// HasChildren reports whether this is a grouping node.
func (d *Definition) HasChildren() bool { return len(d.children) > 0 }

// WithGuildID scopes the command to one owning guild instead of the global
// collection.
func (d *Definition) WithGuildID(id string) *Definition {
	d.guildID = id
	return d
}

// DisabledByDefault marks the command as opt-in when added to a guild.
func (d *Definition) DisabledByDefault() *Definition {
	d.defaultEnabled = false
	return d
}

// AddOption validates and attaches an option. Option names are unique per
// command level.
func (d *Definition) AddOption(o *Option) error {
	if d.kind != domain.CommandChatInput {
		return fmt.Errorf("command %q: only chat-input commands take options", d.name)
	}
	if err := o.validate(); err != nil {
		return fmt.Errorf("command %q: %w", d.name, err)
	}
	if _, dup := d.optionIndex[o.Name]; dup {
		return fmt.Errorf("command %q: duplicate option %q", d.name, o.Name)
	}

	d.options = append(d.options, o)
	d.optionIndex[o.Name] = o
	return nil
}

// MustAddOption is AddOption for static startup declarations, where a
// definition-time error is a programming bug.
func (d *Definition) MustAddOption(o *Option) *Definition {
	if err := d.AddOption(o); err != nil {
		panic(err)
	}
	return d
}

// AddSubcommand attaches a child command. A node with a handler cannot take
// children, and nesting stops at two levels (group containing subcommands).
func (d *Definition) AddSubcommand(child *Definition) error {
	if d.handler != nil {
		return fmt.Errorf("command %q: a command with a callback cannot have children", d.name)
	}
	if child.kind != domain.CommandChatInput {
		return fmt.Errorf("command %q: context-menu commands cannot be nested", child.name)
	}
	if d.parent != nil && d.parent.parent != nil {
		return fmt.Errorf("command %q: sub-commands nest at most two levels deep", child.name)
	}
	if _, dup := d.children[child.name]; dup {
		return fmt.Errorf("command %q: duplicate child %q", d.name, child.name)
	}

	child.parent = d
	d.children[child.name] = child
	d.childOrder = append(d.childOrder, child.name)
	return nil
}

// MustAddSubcommand is AddSubcommand for static startup declarations.
func (d *Definition) MustAddSubcommand(child *Definition) *Definition {
	if err := d.AddSubcommand(child); err != nil {
		panic(err)
	}
	return d
}

// SetHandler installs the leaf callback. Grouping nodes reject it.
func (d *Definition) SetHandler(h Handler) error {
	if len(d.children) > 0 {
		return fmt.Errorf("command %q: a command with children cannot have a callback", d.name)
	}
	d.handler = h
	return nil
}

// MustSetHandler is SetHandler for static startup declarations.
func (d *Definition) MustSetHandler(h Handler) *Definition {
	if err := d.SetHandler(h); err != nil {
		panic(err)
	}
	return d
}

// SetCheck installs the authorization check run before the handler.
func (d *Definition) SetCheck(c CheckFunc) *Definition {
	d.check = c
	return d
}

// SetOnError installs the per-command error hook.
func (d *Definition) SetOnError(fn ErrorFunc) *Definition {
	d.onError = fn
	return d
}

func (d *Definition) Check() CheckFunc   { return d.check }
func (d *Definition) OnError() ErrorFunc { return d.onError }

// Root walks parent references up to the registered top-level command.
func (d *Definition) Root() *Definition {
	cur := d
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// QualifiedName renders the full invocation path, e.g. "math add".
func (d *Definition) QualifiedName() string {
	if d.parent == nil {
		return d.name
	}
	return d.parent.QualifiedName() + " " + d.name
}
