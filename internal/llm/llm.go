package llm

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidJSON = errors.New("llm: invalid JSON from model")
	ErrTimeout     = errors.New("llm: model call timed out")
)

// Media is an optional binary attachment sent alongside the prompt.
type Media struct {
	MIMEType string
	Data     []byte
}

// Client is the model invocation boundary. Implementations return the model's
// raw JSON output; schema validation happens upstream.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt string, media *Media) (json.RawMessage, error)
	Close() error
}

type ctxKeyPhase struct{}

// WithPhase tags the context with the flow name issuing the call. Used for
// request logging and by the fake client to pick its canned output.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, ctxKeyPhase{}, phase)
}

// PhaseFrom returns the phase string stored in the context, or "".
func PhaseFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyPhase{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
