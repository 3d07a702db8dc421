package command

import (
	"github.com/spf13/cast"

	"cordial/internal/core/domain"
)

// Invocation is the freshly materialized instance of a leaf command for one
// interaction, holding its coerced option values. Options absent from the
// payload read as their declared default; Provided distinguishes a real
// user-supplied value from a default, so an empty string supplied by the
// user is never conflated with a missing one.
type Invocation struct {
	def    *Definition
	values map[string]any
}

func newInvocation(def *Definition) *Invocation {
	return &Invocation{def: def, values: map[string]any{}}
}

// Definition returns the resolved leaf definition.
func (inv *Invocation) Definition() *Definition { return inv.def }

// Provided reports whether the option was present in the payload.
func (inv *Invocation) Provided(name string) bool {
	_, ok := inv.values[name]
	return ok
}

func (inv *Invocation) set(name string, v any) {
	inv.values[name] = v
}

// Value returns the coerced value for the option, falling back to the
// declared default. The second return is false when the option was absent
// and declared no default.
func (inv *Invocation) Value(name string) (any, bool) {
	if v, ok := inv.values[name]; ok {
		return v, true
	}
	if o, ok := inv.def.Option(name); ok && o.Default != nil {
		return o.Default, true
	}
	return nil, false
}

func (inv *Invocation) String(name string) string {
	v, ok := inv.Value(name)
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

func (inv *Invocation) Int(name string) int64 {
	v, ok := inv.Value(name)
	if !ok {
		return 0
	}
	return cast.ToInt64(v)
}

func (inv *Invocation) Bool(name string) bool {
	v, ok := inv.Value(name)
	if !ok {
		return false
	}
	return cast.ToBool(v)
}

func (inv *Invocation) Float(name string) float64 {
	v, ok := inv.Value(name)
	if !ok {
		return 0
	}
	return cast.ToFloat64(v)
}

// User returns the coerced user, unwrapping a guild member when the payload
// resolved one.
func (inv *Invocation) User(name string) *domain.User {
	v, _ := inv.Value(name)
	switch u := v.(type) {
	case *domain.User:
		return u
	case *domain.Member:
		return u.User
	}
	return nil
}

// Member returns the coerced guild member, or nil when only a bare user was
// resolved.
func (inv *Invocation) Member(name string) *domain.Member {
	v, _ := inv.Value(name)
	m, _ := v.(*domain.Member)
	return m
}

func (inv *Invocation) Channel(name string) *domain.Channel {
	v, _ := inv.Value(name)
	c, _ := v.(*domain.Channel)
	return c
}

func (inv *Invocation) Role(name string) *domain.Role {
	v, _ := inv.Value(name)
	r, _ := v.(*domain.Role)
	return r
}

func (inv *Invocation) Mentionable(name string) *domain.Mentionable {
	v, _ := inv.Value(name)
	m, _ := v.(*domain.Mentionable)
	return m
}
