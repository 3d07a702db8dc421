package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cordial/internal/core/domain"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func mathTree(t *testing.T) *Definition {
	t.Helper()
	return New("math", "arithmetic").
		MustAddSubcommand(New("add", "addition").
			MustAddOption(IntegerOption("x", "first operand").WithRequired()).
			MustAddOption(IntegerOption("y", "second operand").WithRequired()).
			MustSetHandler(noopHandler)).
		MustAddSubcommand(New("float", "floating point ops").
			MustAddSubcommand(New("mul", "multiplication").
				MustAddOption(NumberOption("x", "first factor")).
				MustSetHandler(noopHandler)))
}

func TestResolveRootLeaf(t *testing.T) {
	root := New("ping", "round trip").MustSetHandler(noopHandler)
	opts := []domain.OptionPayload{}

	leaf, scoped, err := Resolve(root, opts)

	require.NoError(t, err)
	assert.Same(t, root, leaf)
	assert.Empty(t, scoped)
}

func TestResolveRootLeafWithPlainOptions(t *testing.T) {
	root := New("echo", "repeat input").
		MustAddOption(StringOption("text", "what to repeat")).
		MustSetHandler(noopHandler)
	opts := []domain.OptionPayload{
		{Name: "text", Type: domain.OptionString, Value: raw(t, "hi")},
	}

	leaf, scoped, err := Resolve(root, opts)

	require.NoError(t, err)
	assert.Same(t, root, leaf)
	require.Len(t, scoped, 1)
	assert.Equal(t, "text", scoped[0].Name)
}

func TestResolveSubcommand(t *testing.T) {
	root := mathTree(t)
	opts := []domain.OptionPayload{
		{Name: "add", Type: domain.OptionSubcommand, Options: []domain.OptionPayload{
			{Name: "x", Type: domain.OptionInteger, Value: raw(t, 3)},
			{Name: "y", Type: domain.OptionInteger, Value: raw(t, 4)},
		}},
	}

	leaf, scoped, err := Resolve(root, opts)

	require.NoError(t, err)
	assert.Equal(t, "math add", leaf.QualifiedName())
	require.Len(t, scoped, 2)
	assert.Equal(t, "x", scoped[0].Name)
}

func TestResolveGroupDescendsTwice(t *testing.T) {
	root := mathTree(t)
	opts := []domain.OptionPayload{
		{Name: "float", Type: domain.OptionSubcommandGroup, Options: []domain.OptionPayload{
			{Name: "mul", Type: domain.OptionSubcommand, Options: []domain.OptionPayload{
				{Name: "x", Type: domain.OptionNumber, Value: raw(t, 2.5)},
			}},
		}},
	}

	leaf, scoped, err := Resolve(root, opts)

	require.NoError(t, err)
	assert.Equal(t, "math float mul", leaf.QualifiedName())
	require.Len(t, scoped, 1)
}

func TestResolveUnknownSubcommand(t *testing.T) {
	root := mathTree(t)
	opts := []domain.OptionPayload{
		{Name: "div", Type: domain.OptionSubcommand},
	}

	_, _, err := Resolve(root, opts)

	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestResolveUnknownGroupChild(t *testing.T) {
	root := mathTree(t)
	opts := []domain.OptionPayload{
		{Name: "float", Type: domain.OptionSubcommandGroup, Options: []domain.OptionPayload{
			{Name: "div", Type: domain.OptionSubcommand},
		}},
	}

	_, _, err := Resolve(root, opts)

	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
}

func TestResolveEmptyGroup(t *testing.T) {
	root := mathTree(t)
	opts := []domain.OptionPayload{
		{Name: "float", Type: domain.OptionSubcommandGroup},
	}

	_, _, err := Resolve(root, opts)

	require.ErrorIs(t, err, domain.ErrSchemaMismatch)
}
