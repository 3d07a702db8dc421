package domain

import (
	"context"
	"sync"
)

// CreateResponseFunc sends one interaction response over the REST
// collaborator. The routing engine never constructs HTTP requests itself.
type CreateResponseFunc func(ctx context.Context, id, token string, kind ResponseType, data map[string]any) error

// EditOriginalFunc edits the message sent as the initial response.
type EditOriginalFunc func(ctx context.Context, token string, data map[string]any) error

// DeleteOriginalFunc deletes the message sent as the initial response.
type DeleteOriginalFunc func(ctx context.Context, token string) error

// ViewResponder is the part of a live view container the response layer
// needs: rendering to wire components and identity for store registration.
type ViewResponder interface {
	ViewID() string
	ToComponents() []map[string]any
}

// ModalResponder is the equivalent surface of a modal container.
type ModalResponder interface {
	ModalCustomID() string
	ToModalPayload() map[string]any
}

// MessagePayload is the response message shape the engine supports. Rich
// content (embeds, attachments) is serialized by an outer layer and passed
// through Extra untouched.
type MessagePayload struct {
	Content   string
	TTS       bool
	Ephemeral bool
	View      ViewResponder
	Extra     map[string]any
}

type AutocompleteChoice struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Response tracks the one-shot response state of a single interaction.
// The idle to responded transition happens exactly once; every further
// attempt fails with ErrAlreadyResponded.
type Response struct {
	ix     *Interaction
	create CreateResponseFunc
	edit   EditOriginalFunc
	del    DeleteOriginalFunc

	// OnStoreView and OnStoreModal are installed by the router so a view or
	// modal sent as a response gets registered for dispatch.
	OnStoreView  func(ViewResponder)
	OnStoreModal func(ModalResponder)

	mu        sync.Mutex
	responded bool
}

// IsDone reports whether a response has been sent.
func (r *Response) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responded
}

// begin reserves the single response slot. On send failure the caller must
// roll the reservation back so a later attempt can still succeed.
func (r *Response) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		return ErrAlreadyResponded
	}
	r.responded = true
	return nil
}

func (r *Response) rollback() {
	r.mu.Lock()
	r.responded = false
	r.mu.Unlock()
}

// Defer acknowledges the interaction without a visible reply. Command
// interactions get a loading state; component and modal interactions get a
// silent update acknowledgement. Ping interactions cannot be deferred and
// are left untouched.
func (r *Response) Defer(ctx context.Context, ephemeral bool) error {
	var kind ResponseType
	var data map[string]any

	switch r.ix.Type {
	case InteractionCommand:
		kind = ResponseDeferredChannelMessage
		if ephemeral {
			data = map[string]any{"flags": ephemeralFlag}
		}
	case InteractionComponent, InteractionModalSubmit:
		kind = ResponseDeferredMessageUpdate
	default:
		return nil
	}

	if err := r.begin(); err != nil {
		return err
	}
	if err := r.create(ctx, r.ix.ID, r.ix.Token, kind, data); err != nil {
		r.rollback()
		return err
	}
	return nil
}

// Pong answers a ping interaction. It is a no-op for every other type.
func (r *Response) Pong(ctx context.Context) error {
	if r.ix.Type != InteractionPing {
		return nil
	}
	if err := r.begin(); err != nil {
		return err
	}
	if err := r.create(ctx, r.ix.ID, r.ix.Token, ResponsePong, nil); err != nil {
		r.rollback()
		return err
	}
	return nil
}

const ephemeralFlag = 64

// SendMessage responds with a new message. A view attached to the payload is
// rendered into wire components and handed to the view store afterwards.
func (r *Response) SendMessage(ctx context.Context, m *MessagePayload) error {
	if err := r.begin(); err != nil {
		return err
	}

	data := map[string]any{"tts": m.TTS}
	if m.Content != "" {
		data["content"] = m.Content
	}
	if m.Ephemeral {
		data["flags"] = ephemeralFlag
	}
	if m.View != nil {
		data["components"] = m.View.ToComponents()
	}
	for k, v := range m.Extra {
		data[k] = v
	}

	if err := r.create(ctx, r.ix.ID, r.ix.Token, ResponseChannelMessage, data); err != nil {
		r.rollback()
		return err
	}

	if m.View != nil && r.OnStoreView != nil {
		r.OnStoreView(m.View)
	}
	return nil
}

// EditMessage responds by editing the message the interacted component was
// attached to. Only valid for component interactions.
func (r *Response) EditMessage(ctx context.Context, m *MessagePayload) error {
	if r.ix.Type != InteractionComponent {
		return ErrBadResponseKind
	}
	if err := r.begin(); err != nil {
		return err
	}

	data := map[string]any{}
	if m.Content != "" {
		data["content"] = m.Content
	}
	if m.View != nil {
		data["components"] = m.View.ToComponents()
	}
	for k, v := range m.Extra {
		data[k] = v
	}

	if err := r.create(ctx, r.ix.ID, r.ix.Token, ResponseMessageUpdate, data); err != nil {
		r.rollback()
		return err
	}

	if m.View != nil && r.OnStoreView != nil {
		r.OnStoreView(m.View)
	}
	return nil
}

// Autocomplete responds to an autocomplete interaction with up to 25 choices,
// preserving order. Longer sequences are truncated before transmission.
func (r *Response) Autocomplete(ctx context.Context, choices []AutocompleteChoice) error {
	if r.ix.Type != InteractionAutocomplete {
		return ErrBadResponseKind
	}
	if err := r.begin(); err != nil {
		return err
	}

	if len(choices) > MaxAutocompleteChoices {
		choices = choices[:MaxAutocompleteChoices]
	}

	payload := make([]map[string]any, 0, len(choices))
	for _, c := range choices {
		payload = append(payload, map[string]any{"name": c.Name, "value": c.Value})
	}

	err := r.create(ctx, r.ix.ID, r.ix.Token, ResponseAutocompleteResult, map[string]any{"choices": payload})
	if err != nil {
		r.rollback()
		return err
	}
	return nil
}

// SendModal responds by displaying a modal. Not valid on ping or
// modal-submit interactions.
func (r *Response) SendModal(ctx context.Context, m ModalResponder) error {
	switch r.ix.Type {
	case InteractionPing, InteractionModalSubmit:
		return ErrBadResponseKind
	}
	if err := r.begin(); err != nil {
		return err
	}

	if err := r.create(ctx, r.ix.ID, r.ix.Token, ResponseModal, m.ToModalPayload()); err != nil {
		r.rollback()
		return err
	}

	if r.OnStoreModal != nil {
		r.OnStoreModal(m)
	}
	return nil
}

// EditOriginal edits the message sent as the initial response. Followup
// calls bypass the single-response slot entirely.
func (r *Response) EditOriginal(ctx context.Context, data map[string]any) error {
	if r.edit == nil {
		return ErrNoFollowup
	}
	return r.edit(ctx, r.ix.Token, data)
}

// DeleteOriginal removes the message sent as the initial response.
func (r *Response) DeleteOriginal(ctx context.Context) error {
	if r.del == nil {
		return ErrNoFollowup
	}
	return r.del(ctx, r.ix.Token)
}
