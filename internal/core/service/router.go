package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
	"cordial/internal/core/domain/command"
	"cordial/internal/core/domain/component"
	"cordial/internal/core/port"
)

// Router is the single entry point for inbound interaction events. It owns
// the three dispatch stores, parses raw gateway payloads, attaches the
// response handle and fans each event out by interaction type.
type Router struct {
	// OnError receives dispatch and handler faults that no narrower hook
	// claimed. When nil, faults are logged and swallowed.
	OnError func(ctx context.Context, ix *domain.Interaction, err error)

	commands *CommandStore
	views    *ViewStore
	modals   *ModalStore

	responder port.Responder
	cache     port.EntityCache
}

func NewRouter(responder port.Responder, cache port.EntityCache) *Router {
	r := &Router{
		commands:  NewCommandStore(cache),
		views:     NewViewStore(),
		modals:    NewModalStore(),
		responder: responder,
		cache:     cache,
	}
	r.commands.OnError = func(ctx context.Context, ix *domain.Interaction, err error) {
		r.reportError(ctx, ix, err)
	}
	return r
}

func (r *Router) Commands() *CommandStore { return r.commands }
func (r *Router) Views() *ViewStore       { return r.views }
func (r *Router) Modals() *ModalStore     { return r.modals }

// RegisterCommands places every command of the tree into the dispatch table.
func (r *Router) RegisterCommands(tree *command.Tree) {
	r.commands.RegisterAll(tree)
}

// RegisterView registers a view for dispatch without sending it, used for
// persistent views re-attached after a restart.
func (r *Router) RegisterView(view *component.View) {
	r.views.Add(view, "")
}

// HandleEvent parses one raw gateway payload and dispatches it. The error
// covers parse failures only; dispatch faults and handler callbacks report
// through the error hooks.
func (r *Router) HandleEvent(ctx context.Context, raw []byte) error {
	ix, err := domain.ParseInteraction(raw)
	if err != nil {
		return err
	}

	ix.AttachResponder(r.responder.CreateResponse)
	ix.AttachFollowup(r.responder.EditOriginalResponse, r.responder.DeleteOriginalResponse)
	ix.Response.OnStoreView = func(v domain.ViewResponder) {
		if view, ok := v.(*component.View); ok {
			r.views.Add(view, "")
		}
	}
	ix.Response.OnStoreModal = func(m domain.ModalResponder) {
		if modal, ok := m.(*component.Modal); ok {
			r.modals.Add(modal)
		}
	}

	if err := r.dispatch(ctx, ix); err != nil {
		r.reportError(ctx, ix, err)
		return err
	}
	return nil
}

func (r *Router) dispatch(ctx context.Context, ix *domain.Interaction) error {
	switch ix.Type {
	case domain.InteractionPing:
		return ix.Response.Pong(ctx)

	case domain.InteractionCommand:
		// Resolution failures route through the store's error hook.
		r.commands.Dispatch(ctx, ix)
		return nil

	case domain.InteractionAutocomplete:
		r.commands.DispatchAutocomplete(ctx, ix)
		return nil

	case domain.InteractionComponent:
		// A miss is not a fault: the component may belong to a finished view
		// or another process.
		r.views.Dispatch(ctx, ix)
		return nil

	case domain.InteractionModalSubmit:
		r.modals.Dispatch(ctx, ix)
		return nil

	default:
		return fmt.Errorf("unhandled interaction type %d", ix.Type)
	}
}

func (r *Router) reportError(ctx context.Context, ix *domain.Interaction, err error) {
	if r.OnError != nil {
		r.OnError(ctx, ix, err)
		return
	}
	log.Error().Err(err).
		Str("interaction_id", ix.ID).
		Int("type", int(ix.Type)).
		Msg("interaction dispatch failed")
}

// Serve drains an event source, feeding every raw payload through
// HandleEvent. Undecodable payloads are logged and skipped; the feed runs
// until the source finishes or the context is cancelled.
func (r *Router) Serve(ctx context.Context, src port.EventSource) error {
	return src.Run(ctx, func(ctx context.Context, raw []byte) {
		if err := r.HandleEvent(ctx, raw); err != nil {
			log.Warn().Err(err).Msg("dropping undecodable event")
		}
	})
}

// Shutdown stops every live container and clears the dispatch tables.
// In-flight handler goroutines are left to observe their own contexts.
func (r *Router) Shutdown() {
	log.Info().Msg("stopping interaction router")
	r.views.StopAll()
	r.modals.StopAll()
	r.commands.Clear()
}
