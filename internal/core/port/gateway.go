package port

import "context"

// EventSource feeds raw interaction payloads into a dispatch function.
// The persistent gateway connection is out of scope; replay and test
// adapters implement this to drive the engine.
type EventSource interface {
	Run(ctx context.Context, dispatch func(ctx context.Context, raw []byte)) error
}
