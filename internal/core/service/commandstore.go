package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
	"cordial/internal/core/domain/command"
	"cordial/internal/core/port"
)

type commandKey struct {
	name    string
	guildID string
}

// CommandStore is the runtime dispatch table for application commands.
// Definitions register under their remote-assigned ID plus their name and
// guild scope; inbound command and autocomplete interactions resolve by ID
// first with the name as a secondary path.
type CommandStore struct {
	// OnError receives faults from handlers whose definitions carry no error
	// hook of their own. When nil, such faults are logged and swallowed.
	OnError func(ctx context.Context, ix *domain.Interaction, err error)

	cache port.EntityCache

	mu    sync.RWMutex
	byID  map[string]*command.Definition
	byKey map[commandKey]*command.Definition
}

func NewCommandStore(cache port.EntityCache) *CommandStore {
	return &CommandStore{
		cache: cache,
		byID:  make(map[string]*command.Definition),
		byKey: make(map[commandKey]*command.Definition),
	}
}

// Register adds a top-level definition under the ID the registration layer
// received from the remote end. Registering the same ID or scope again
// replaces the previous entry. An empty ID registers the definition for
// name lookup only, as happens before the remote has assigned one.
func (s *CommandStore) Register(id string, def *command.Definition) {
	key := commandKey{name: def.Name(), guildID: def.GuildID()}

	s.mu.Lock()
	if _, exists := s.byKey[key]; exists {
		log.Debug().Str("command", def.Name()).Str("guild_id", def.GuildID()).
			Msg("replacing registered command")
	}
	if id != "" {
		s.byID[id] = def
	}
	s.byKey[key] = def
	s.mu.Unlock()
}

// RegisterAll registers every top-level command held by the tree.
func (s *CommandStore) RegisterAll(tree *command.Tree) {
	for _, def := range tree.Commands() {
		s.Register("", def)
	}
}

// Unregister drops a command from the dispatch table, including any remote
// IDs pointing at it.
func (s *CommandStore) Unregister(name, guildID string) {
	key := commandKey{name: name, guildID: guildID}

	s.mu.Lock()
	def, ok := s.byKey[key]
	delete(s.byKey, key)
	if ok {
		for id, d := range s.byID {
			if d == def {
				delete(s.byID, id)
			}
		}
	}
	s.mu.Unlock()
}

// Clear drops every registered command.
func (s *CommandStore) Clear() {
	s.mu.Lock()
	s.byID = make(map[string]*command.Definition)
	s.byKey = make(map[commandKey]*command.Definition)
	s.mu.Unlock()
}

// lookup finds the registered root for an interaction: the payload's command
// ID when the registration layer supplied one, otherwise by name, preferring
// the invoking guild's scope over the global one.
func (s *CommandStore) lookup(ix *domain.Interaction) (*command.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ix.Data.ID != "" {
		if def, ok := s.byID[ix.Data.ID]; ok {
			return def, true
		}
	}
	if ix.GuildID != "" {
		if def, ok := s.byKey[commandKey{name: ix.Data.Name, guildID: ix.GuildID}]; ok {
			return def, true
		}
	}
	def, ok := s.byKey[commandKey{name: ix.Data.Name, guildID: ""}]
	return def, ok
}

// Dispatch resolves a command interaction to its leaf, coerces the provided
// options and runs the handler on a fresh goroutine. Resolution and coercion
// failures are routed to the error hooks like handler faults, never raised
// to the caller.
func (s *CommandStore) Dispatch(ctx context.Context, ix *domain.Interaction) {
	root, ok := s.lookup(ix)
	if !ok {
		s.routeFailure(ctx, ix, fmt.Errorf("%w: command %q", domain.ErrNotRegistered, ix.Data.Name))
		return
	}

	leaf, inv, err := s.prepare(root, ix)
	if err != nil {
		s.routeFailure(ctx, ix, err)
		return
	}

	log.Debug().Str("command", leaf.QualifiedName()).Str("interaction_id", ix.ID).
		Msg("dispatching command")
	go s.invoke(ctx, leaf, ix, inv)
}

// prepare walks the interaction down to its leaf and builds the typed
// invocation. Context menu commands skip the walk: their single target comes
// from the resolved-entities table instead of options.
func (s *CommandStore) prepare(root *command.Definition, ix *domain.Interaction) (*command.Definition, *command.Invocation, error) {
	switch root.Kind() {
	case domain.CommandUser:
		target, err := command.ResolveUserTarget(ix.Data.Resolved, ix.GuildID, ix.Data.TargetID)
		if err != nil {
			return nil, nil, err
		}
		ix.Target = target
		inv, err := command.Coerce(root, nil, ix.Data.Resolved, ix.GuildID, s.cache)
		return root, inv, err

	case domain.CommandMessage:
		target, err := command.ResolveMessageTarget(ix.Data.Resolved, ix.GuildID, ix.Data.TargetID, s.cache)
		if err != nil {
			return nil, nil, err
		}
		ix.Target = target
		inv, err := command.Coerce(root, nil, ix.Data.Resolved, ix.GuildID, s.cache)
		return root, inv, err

	default:
		leaf, opts, err := command.Resolve(root, ix.Data.Options)
		if err != nil {
			return nil, nil, err
		}
		inv, err := command.Coerce(leaf, opts, ix.Data.Resolved, ix.GuildID, s.cache)
		if err != nil {
			return nil, nil, err
		}
		return leaf, inv, nil
	}
}

func (s *CommandStore) invoke(ctx context.Context, leaf *command.Definition, ix *domain.Interaction, inv *command.Invocation) {
	defer func() {
		if r := recover(); r != nil {
			s.reportError(ctx, leaf, ix, fmt.Errorf("command handler panicked: %v", r))
		}
	}()

	if check := leaf.Check(); check != nil {
		ok, err := check(ctx, ix, inv)
		if err != nil {
			s.reportError(ctx, leaf, ix, err)
			return
		}
		if !ok {
			return
		}
	}

	handler := leaf.Handler()
	if handler == nil {
		s.reportError(ctx, leaf, ix, fmt.Errorf("command %q has no handler", leaf.QualifiedName()))
		return
	}
	if err := handler(ctx, ix, inv); err != nil {
		s.reportError(ctx, leaf, ix, err)
	}
}

// reportError routes a fault to the leaf's own error hook first, then the
// store-wide hook. A panic inside either hook is contained here.
func (s *CommandStore) reportError(ctx context.Context, leaf *command.Definition, ix *domain.Interaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("command", leaf.QualifiedName()).
				Msgf("error hook panicked: %v", r)
		}
	}()

	if hook := leaf.OnError(); hook != nil {
		hook(ctx, ix, err)
		return
	}
	if s.OnError != nil {
		s.OnError(ctx, ix, err)
		return
	}
	log.Error().Err(err).Str("command", leaf.QualifiedName()).Msg("command handler failed")
}

// routeFailure reports a dispatch failure that never reached a leaf, so no
// per-command hook applies.
func (s *CommandStore) routeFailure(ctx context.Context, ix *domain.Interaction, err error) {
	if s.OnError != nil {
		s.OnError(ctx, ix, err)
		return
	}
	log.Error().Err(err).Str("command", ix.Data.Name).Msg("command dispatch failed")
}

// DispatchAutocomplete resolves an autocomplete interaction to its focused
// option, coerces whatever sibling options decode cleanly and runs the
// option's autocomplete callback on a fresh goroutine. The callback's
// choices go straight out as the response; resolution failures are routed,
// never raised.
func (s *CommandStore) DispatchAutocomplete(ctx context.Context, ix *domain.Interaction) {
	root, ok := s.lookup(ix)
	if !ok {
		s.routeFailure(ctx, ix, fmt.Errorf("%w: command %q", domain.ErrNotRegistered, ix.Data.Name))
		return
	}

	leaf, opts, err := command.Resolve(root, ix.Data.Options)
	if err != nil {
		s.routeFailure(ctx, ix, err)
		return
	}

	focused, ok := focusedOption(opts)
	if !ok {
		s.routeFailure(ctx, ix, fmt.Errorf("%w: autocomplete for %q carried no focused option",
			domain.ErrSchemaMismatch, leaf.QualifiedName()))
		return
	}
	opt, declared := leaf.Option(focused.Name)
	if !declared || opt.Autocomplete == nil {
		s.routeFailure(ctx, ix, fmt.Errorf("%w: option %q of %q has no autocomplete callback",
			domain.ErrSchemaMismatch, focused.Name, leaf.QualifiedName()))
		return
	}

	ix.Query = partialText(focused.Value)

	// Sibling values the user already filled in are visible to the callback.
	// Partial input may not decode; the callback still runs with what did.
	inv, err := command.Coerce(leaf, opts, ix.Data.Resolved, ix.GuildID, s.cache)
	if err != nil {
		inv, _ = command.Coerce(leaf, nil, ix.Data.Resolved, ix.GuildID, s.cache)
	}

	go s.invokeAutocomplete(ctx, leaf, opt, ix, inv)
}

func (s *CommandStore) invokeAutocomplete(
	ctx context.Context,
	leaf *command.Definition,
	opt *command.Option,
	ix *domain.Interaction,
	inv *command.Invocation,
) {
	defer func() {
		if r := recover(); r != nil {
			s.reportError(ctx, leaf, ix, fmt.Errorf("autocomplete callback panicked: %v", r))
		}
	}()

	choices, err := opt.Autocomplete(ctx, ix, inv)
	if err != nil {
		s.reportError(ctx, leaf, ix, err)
		return
	}
	if err := ix.Response.Autocomplete(ctx, choices); err != nil {
		s.reportError(ctx, leaf, ix, err)
	}
}

func focusedOption(opts []domain.OptionPayload) (domain.OptionPayload, bool) {
	for _, opt := range opts {
		if opt.Focused {
			return opt, true
		}
	}
	return domain.OptionPayload{}, false
}

// partialText extracts the focused option's in-progress text. Numeric
// options stream partial numbers; those surface as their literal text.
func partialText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
