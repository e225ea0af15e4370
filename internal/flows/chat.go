package flows

import (
	"context"
	"strings"

	"agrisentry/internal/llm"
	"agrisentry/internal/llmtool"
)

func (r ChatRequest) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return validationError("Question is required.")
	}
	if strings.TrimSpace(r.Language) == "" {
		return validationError("Language is required.")
	}
	for _, turn := range r.History {
		if turn.Role != "user" && turn.Role != "model" {
			return validationError("History roles must be \"user\" or \"model\".")
		}
	}
	return nil
}

// RunChat answers one farmer question in the caller-specified language. The
// full history is replayed into the prompt each call; no conversation state
// is kept server-side.
func (s *Service) RunChat(ctx context.Context, req ChatRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}
	ctx = llm.WithPhase(ctx, "chat")

	raw, err := s.loop(nil).Run(ctx, nil, llmtool.StructuredPromptBuilder(chatPrompt(req)))
	if err != nil {
		return "", invocationError(s.msgs.Chat, err)
	}

	var out chatResponse
	if err := chatSchema().Decode(raw, &out); err != nil {
		return "", malformedOutput(s.msgs.Chat, err)
	}
	return out.Response, nil
}
