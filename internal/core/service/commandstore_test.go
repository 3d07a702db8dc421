package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cordial/internal/core/domain"
	"cordial/internal/core/domain/command"
)

type sentCall struct {
	kind domain.ResponseType
	data map[string]any
}

// mockResponder implements port.Responder in-memory.
type mockResponder struct {
	mu      sync.Mutex
	created []sentCall
}

func (m *mockResponder) CreateResponse(_ context.Context, _, _ string, kind domain.ResponseType, data map[string]any) error {
	m.mu.Lock()
	m.created = append(m.created, sentCall{kind: kind, data: data})
	m.mu.Unlock()
	return nil
}

func (m *mockResponder) EditOriginalResponse(_ context.Context, _ string, _ map[string]any) error {
	return nil
}

func (m *mockResponder) DeleteOriginalResponse(_ context.Context, _ string) error {
	return nil
}

func (m *mockResponder) calls() []sentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentCall(nil), m.created...)
}

func rawValue(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func commandInteraction(name string, responder *mockResponder, opts ...domain.OptionPayload) *domain.Interaction {
	ix := &domain.Interaction{
		ID:    "ix1",
		Type:  domain.InteractionCommand,
		Token: "tok",
		Data:  &domain.InteractionData{Name: name, Type: domain.CommandChatInput, Options: opts},
	}
	ix.AttachResponder(responder.CreateResponse)
	return ix
}

func mathAdd(t *testing.T, results chan<- int64) *command.Definition {
	t.Helper()
	return command.New("math", "integer arithmetic").
		MustAddSubcommand(command.New("add", "add two integers").
			MustAddOption(command.IntegerOption("x", "first operand").WithRequired()).
			MustAddOption(command.IntegerOption("y", "second operand").WithRequired()).
			MustSetHandler(func(ctx context.Context, ix *domain.Interaction, inv *command.Invocation) error {
				results <- inv.Int("x") + inv.Int("y")
				return ix.Response.SendMessage(ctx, &domain.MessagePayload{Content: "done"})
			}))
}

func TestDispatchResolvesAndRunsHandler(t *testing.T) {
	results := make(chan int64, 1)
	store := NewCommandStore(nil)
	store.Register("", mathAdd(t, results))

	responder := &mockResponder{}
	ix := commandInteraction("math", responder, domain.OptionPayload{
		Name: "add", Type: domain.OptionSubcommand, Options: []domain.OptionPayload{
			{Name: "x", Type: domain.OptionInteger, Value: rawValue(t, 3)},
			{Name: "y", Type: domain.OptionInteger, Value: rawValue(t, 4)},
		},
	})

	store.Dispatch(context.Background(), ix)

	select {
	case sum := <-results:
		assert.Equal(t, int64(7), sum)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
	require.Eventually(t, func() bool { return len(responder.calls()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestDispatchUnregisteredRoutesError(t *testing.T) {
	store := NewCommandStore(nil)

	errs := make(chan error, 1)
	store.OnError = func(_ context.Context, _ *domain.Interaction, err error) { errs <- err }

	store.Dispatch(context.Background(), commandInteraction("nope", &mockResponder{}))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	case <-time.After(time.Second):
		t.Fatal("error hook never ran")
	}
}

func TestDispatchSchemaMismatchRoutesError(t *testing.T) {
	store := NewCommandStore(nil)
	store.Register("", mathAdd(t, make(chan int64, 1)))

	errs := make(chan error, 1)
	store.OnError = func(_ context.Context, _ *domain.Interaction, err error) { errs <- err }

	ix := commandInteraction("math", &mockResponder{}, domain.OptionPayload{
		Name: "divide", Type: domain.OptionSubcommand,
	})

	store.Dispatch(context.Background(), ix)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	case <-time.After(time.Second):
		t.Fatal("error hook never ran")
	}
}

func TestDispatchByRemoteID(t *testing.T) {
	results := make(chan int64, 1)
	store := NewCommandStore(nil)
	store.Register("c42", mathAdd(t, results))

	responder := &mockResponder{}
	ix := commandInteraction("renamed upstream", responder, domain.OptionPayload{
		Name: "add", Type: domain.OptionSubcommand, Options: []domain.OptionPayload{
			{Name: "x", Type: domain.OptionInteger, Value: rawValue(t, 2)},
			{Name: "y", Type: domain.OptionInteger, Value: rawValue(t, 5)},
		},
	})
	ix.Data.ID = "c42"

	store.Dispatch(context.Background(), ix)

	select {
	case sum := <-results:
		assert.Equal(t, int64(7), sum)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestUnregisterDropsRemoteID(t *testing.T) {
	store := NewCommandStore(nil)
	store.Register("c42", mathAdd(t, make(chan int64, 1)))

	errs := make(chan error, 1)
	store.OnError = func(_ context.Context, _ *domain.Interaction, err error) { errs <- err }

	store.Unregister("math", "")

	ix := commandInteraction("math", &mockResponder{})
	ix.Data.ID = "c42"
	store.Dispatch(context.Background(), ix)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	case <-time.After(time.Second):
		t.Fatal("error hook never ran")
	}
}

func TestDispatchPrefersGuildScope(t *testing.T) {
	hits := make(chan string, 1)
	handlerFor := func(scope string) command.Handler {
		return func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			hits <- scope
			return nil
		}
	}

	store := NewCommandStore(nil)
	store.Register("", command.New("ping", "global ping").MustSetHandler(handlerFor("global")))
	store.Register("", command.New("ping", "guild ping").WithGuildID("g1").MustSetHandler(handlerFor("guild")))

	responder := &mockResponder{}
	ix := commandInteraction("ping", responder)
	ix.GuildID = "g1"

	store.Dispatch(context.Background(), ix)

	select {
	case scope := <-hits:
		assert.Equal(t, "guild", scope)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestDispatchCheckSuppressesHandler(t *testing.T) {
	ran := make(chan struct{}, 1)
	checked := make(chan struct{}, 1)

	def := command.New("guarded", "needs permission").
		SetCheck(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) (bool, error) {
			checked <- struct{}{}
			return false, nil
		}).
		MustSetHandler(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			ran <- struct{}{}
			return nil
		})

	store := NewCommandStore(nil)
	store.Register("", def)

	store.Dispatch(context.Background(), commandInteraction("guarded", &mockResponder{}))

	select {
	case <-checked:
	case <-time.After(time.Second):
		t.Fatal("check never ran")
	}
	select {
	case <-ran:
		t.Fatal("handler ran despite failed check")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatchRoutesHandlerErrors(t *testing.T) {
	boom := errors.New("boom")
	def := command.New("broken", "always fails").
		MustSetHandler(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			return boom
		})

	store := NewCommandStore(nil)
	store.Register("", def)

	errs := make(chan error, 1)
	store.OnError = func(_ context.Context, _ *domain.Interaction, err error) { errs <- err }

	store.Dispatch(context.Background(), commandInteraction("broken", &mockResponder{}))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("error hook never ran")
	}
}

func TestDispatchPrefersLeafErrorHook(t *testing.T) {
	boom := errors.New("boom")
	leafErrs := make(chan error, 1)

	def := command.New("broken", "always fails").
		SetOnError(func(_ context.Context, _ *domain.Interaction, err error) { leafErrs <- err }).
		MustSetHandler(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			return boom
		})

	store := NewCommandStore(nil)
	store.Register("", def)
	store.OnError = func(_ context.Context, _ *domain.Interaction, _ error) {
		t.Error("store-wide hook ran despite leaf hook")
	}

	store.Dispatch(context.Background(), commandInteraction("broken", &mockResponder{}))

	select {
	case err := <-leafErrs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("leaf error hook never ran")
	}
}

func TestDispatchUserContextMenu(t *testing.T) {
	targets := make(chan any, 1)
	def := command.NewUserCommand("Report User").
		MustSetHandler(func(_ context.Context, ix *domain.Interaction, _ *command.Invocation) error {
			targets <- ix.Target
			return nil
		})

	store := NewCommandStore(nil)
	store.Register("", def)

	responder := &mockResponder{}
	ix := &domain.Interaction{
		ID:      "ix1",
		Type:    domain.InteractionCommand,
		Token:   "tok",
		GuildID: "g1",
		Data: &domain.InteractionData{
			Name:     "Report User",
			Type:     domain.CommandUser,
			TargetID: "u9",
			Resolved: &domain.ResolvedData{
				Users: map[string]*domain.User{"u9": {ID: "u9", Username: "mallory"}},
			},
		},
	}
	ix.AttachResponder(responder.CreateResponse)

	store.Dispatch(context.Background(), ix)

	select {
	case target := <-targets:
		user, ok := target.(*domain.User)
		require.True(t, ok)
		assert.Equal(t, "mallory", user.Username)
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestDispatchAutocomplete(t *testing.T) {
	def := command.New("search", "find things").
		MustAddOption(command.StringOption("query", "search text").
			WithAutocomplete(func(_ context.Context, ix *domain.Interaction, inv *command.Invocation) ([]domain.AutocompleteChoice, error) {
				return []domain.AutocompleteChoice{
					{Name: ix.Query + "is", Value: "paris"},
				}, nil
			})).
		MustAddOption(command.IntegerOption("limit", "max results")).
		MustSetHandler(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			return nil
		})

	store := NewCommandStore(nil)
	store.Register("", def)

	responder := &mockResponder{}
	ix := &domain.Interaction{
		ID:    "ix1",
		Type:  domain.InteractionAutocomplete,
		Token: "tok",
		Data: &domain.InteractionData{Name: "search", Options: []domain.OptionPayload{
			{Name: "query", Type: domain.OptionString, Value: rawValue(t, "par"), Focused: true},
			{Name: "limit", Type: domain.OptionInteger, Value: rawValue(t, 5)},
		}},
	}
	ix.AttachResponder(responder.CreateResponse)

	store.DispatchAutocomplete(context.Background(), ix)

	require.Eventually(t, func() bool { return len(responder.calls()) == 1 }, time.Second, 10*time.Millisecond)
	call := responder.calls()[0]
	assert.Equal(t, domain.ResponseAutocompleteResult, call.kind)

	choices, ok := call.data["choices"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, choices, 1)
	assert.Equal(t, "paris", choices[0]["value"])
	assert.Equal(t, "paris", choices[0]["name"])
}

func TestDispatchAutocompleteWithoutCallback(t *testing.T) {
	def := command.New("search", "find things").
		MustAddOption(command.StringOption("query", "search text")).
		MustSetHandler(func(_ context.Context, _ *domain.Interaction, _ *command.Invocation) error {
			return nil
		})

	store := NewCommandStore(nil)
	store.Register("", def)

	ix := &domain.Interaction{
		ID:    "ix1",
		Type:  domain.InteractionAutocomplete,
		Token: "tok",
		Data: &domain.InteractionData{Name: "search", Options: []domain.OptionPayload{
			{Name: "query", Type: domain.OptionString, Value: rawValue(t, "par"), Focused: true},
		}},
	}
	ix.AttachResponder((&mockResponder{}).CreateResponse)

	errs := make(chan error, 1)
	store.OnError = func(_ context.Context, _ *domain.Interaction, err error) { errs <- err }

	store.DispatchAutocomplete(context.Background(), ix)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	case <-time.After(time.Second):
		t.Fatal("error hook never ran")
	}
}
