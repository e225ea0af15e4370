package llmtool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"agrisentry/internal/llm"
	"agrisentry/internal/tools"
)

var (
	ErrMaxIterations = errors.New("llmtool: max iterations reached")
	ErrUnknownAction = errors.New("llmtool: unknown action")
)

// ToolProvider abstracts tool registry calls.
type ToolProvider interface {
	Specs() []tools.Spec
	Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error)
}

// PromptBuilder renders the prompt for the current loop state.
type PromptBuilder func(ctx context.Context, state *ToolState, specs []tools.Spec) (string, error)

// ToolLoop runs tool-call iterations until the model returns a final answer.
// Tool calls execute synchronously in-process; the caller only ever sees the
// final output, never the intermediate exchanges.
type ToolLoop struct {
	LLM      llm.Client
	Tools    ToolProvider
	MaxIters int
}

// ToolState carries accumulated tool results across iterations.
type ToolState struct {
	Iterations  int
	ToolResults []ToolResult
}

// ToolResult captures one tool exchange for replay into the next prompt.
type ToolResult struct {
	Name   string          `json:"name"`
	Input  json.RawMessage `json:"input,omitempty"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Run executes the loop and returns the model's final JSON output. A nil
// Tools provider degrades to a single plain invocation.
func (l *ToolLoop) Run(ctx context.Context, media *llm.Media, build PromptBuilder) (json.RawMessage, error) {
	if l == nil || l.LLM == nil {
		return nil, fmt.Errorf("llmtool: missing LLM client")
	}
	if build == nil {
		return nil, fmt.Errorf("llmtool: prompt builder is nil")
	}
	max := l.MaxIters
	if max <= 0 {
		max = 5
	}
	var specs []tools.Spec
	if l.Tools != nil {
		specs = l.Tools.Specs()
	}

	state := &ToolState{}
	for i := 0; i < max; i++ {
		state.Iterations = i + 1
		prompt, err := build(ctx, state, specs)
		if err != nil {
			return nil, err
		}
		raw, err := l.LLM.GenerateJSON(ctx, prompt, media)
		if err != nil {
			return nil, err
		}
		action, err := ParseAction(raw)
		if err != nil {
			return nil, err
		}
		switch action.Action {
		case "final":
			return action.Final, nil
		case "tool":
			if l.Tools == nil {
				return nil, fmt.Errorf("llmtool: model requested tool %q but no tools are available", action.ToolName)
			}
			if action.ToolName == "" {
				return nil, fmt.Errorf("llmtool: tool_name required")
			}
			out, err := l.Tools.Call(ctx, action.ToolName, action.ToolInput)
			tr := ToolResult{Name: action.ToolName, Input: action.ToolInput, Output: out}
			if err != nil {
				// Surfaced to the model, not the caller: it can retry
				// or answer without the tool.
				tr.Error = err.Error()
			}
			state.ToolResults = append(state.ToolResults, tr)
			continue
		default:
			return nil, ErrUnknownAction
		}
	}
	return nil, ErrMaxIterations
}
