package sender

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"cordial/internal/core/domain"
)

// SentResponse is one recorded outbound call.
type SentResponse struct {
	InteractionID string
	Token         string
	Kind          domain.ResponseType
	Data          map[string]any
}

// Recorder is a responder that keeps every outbound response in memory and
// logs it. It backs the replay binary and tests; a production deployment
// substitutes a REST client behind the same interface.
type Recorder struct {
	// Fail, when set, is returned by every call without recording. Lets
	// tests exercise send-failure paths.
	Fail error

	mu        sync.Mutex
	created   []SentResponse
	edits     []SentResponse
	deletions []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) CreateResponse(ctx context.Context, id, token string, kind domain.ResponseType, data map[string]any) error {
	if r.Fail != nil {
		return r.Fail
	}

	r.mu.Lock()
	r.created = append(r.created, SentResponse{InteractionID: id, Token: token, Kind: kind, Data: data})
	r.mu.Unlock()

	log.Info().
		Str("interaction_id", id).
		Int("kind", int(kind)).
		Interface("data", data).
		Msg("interaction response")
	return nil
}

func (r *Recorder) EditOriginalResponse(ctx context.Context, token string, data map[string]any) error {
	if r.Fail != nil {
		return r.Fail
	}

	r.mu.Lock()
	r.edits = append(r.edits, SentResponse{Token: token, Data: data})
	r.mu.Unlock()

	log.Info().Str("token", token).Interface("data", data).Msg("original response edited")
	return nil
}

func (r *Recorder) DeleteOriginalResponse(ctx context.Context, token string) error {
	if r.Fail != nil {
		return r.Fail
	}

	r.mu.Lock()
	r.deletions = append(r.deletions, token)
	r.mu.Unlock()

	log.Info().Str("token", token).Msg("original response deleted")
	return nil
}

// Created returns a copy of the recorded CreateResponse calls.
func (r *Recorder) Created() []SentResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentResponse(nil), r.created...)
}

// Edits returns a copy of the recorded EditOriginalResponse calls.
func (r *Recorder) Edits() []SentResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentResponse(nil), r.edits...)
}

// Deletions returns the tokens whose original responses were deleted.
func (r *Recorder) Deletions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deletions...)
}
