package flows

import (
	"agrisentry/internal/llm"
	"agrisentry/internal/llmtool"
	"agrisentry/internal/tools"
	"agrisentry/internal/tts"
)

// Messages holds the generic caller-facing error strings per flow. They are
// injected (not global) so a deployment can localize them.
type Messages struct {
	Diagnosis string
	Forecast  string
	Advice    string
	Chat      string
}

// DefaultMessages returns the stock English messages.
func DefaultMessages() Messages {
	return Messages{
		Diagnosis: "An unexpected error occurred during diagnosis. Please try again later.",
		Forecast:  "Could not generate a forecast right now. Please try again later.",
		Advice:    "Could not generate treatment advice right now. Please try again later.",
		Chat:      "An unexpected error occurred in the chat. Please try again.",
	}
}

// Service orchestrates the request/response workflows. All state is
// request-scoped; the service itself only holds wiring.
type Service struct {
	client   llm.Client
	registry *tools.Registry
	synth    tts.Synthesizer
	msgs     Messages
	maxIters int
}

// Option tweaks service construction.
type Option func(*Service)

// WithMessages overrides the caller-facing error strings.
func WithMessages(m Messages) Option {
	return func(s *Service) { s.msgs = m }
}

// WithMaxToolIters caps the tool-call loop (default 5).
func WithMaxToolIters(n int) Option {
	return func(s *Service) { s.maxIters = n }
}

// New wires the flow orchestrator. synth may be nil; diagnosis then skips
// the audio step entirely.
func New(client llm.Client, registry *tools.Registry, synth tts.Synthesizer, opts ...Option) *Service {
	s := &Service{
		client:   client,
		registry: registry,
		synth:    synth,
		msgs:     DefaultMessages(),
		maxIters: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) loop(registry *tools.Registry) *llmtool.ToolLoop {
	l := &llmtool.ToolLoop{LLM: s.client, MaxIters: s.maxIters}
	if registry != nil {
		l.Tools = registry
	}
	return l
}
