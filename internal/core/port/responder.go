package port

import (
	"context"

	"cordial/internal/core/domain"
)

// Responder is the REST collaborator boundary. Implementations own HTTP
// verbs, rate-limit budgeting and retries; the routing engine only hands
// them fully formed response payloads.
type Responder interface {
	// CreateResponse answers the interaction identified by id/token.
	CreateResponse(ctx context.Context, id, token string, kind domain.ResponseType, data map[string]any) error
	// EditOriginalResponse edits the original response message of the
	// interaction identified by token.
	EditOriginalResponse(ctx context.Context, token string, data map[string]any) error
	// DeleteOriginalResponse deletes the original response message.
	DeleteOriginalResponse(ctx context.Context, token string) error
}
