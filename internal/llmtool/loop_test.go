package llmtool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"agrisentry/internal/llm"
	"agrisentry/internal/tools"
)

type fakeLLM struct {
	responses []json.RawMessage
	prompts   []string
}

func (f *fakeLLM) Name() string { return "fake" }
func (f *fakeLLM) Close() error { return nil }
func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, media *llm.Media) (json.RawMessage, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.responses) == 0 {
		return nil, errors.New("fake: out of responses")
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

type fakeTools struct {
	specs []tools.Spec
	calls []string
}

func (f *fakeTools) Specs() []tools.Spec { return f.specs }
func (f *fakeTools) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	f.calls = append(f.calls, name)
	return json.RawMessage(`[{"name":"Kisan Kendra"}]`), nil
}

func basePrompt() PromptBuilder {
	return StructuredPromptBuilder(StructuredPromptSpec{
		Purpose:      "test",
		OutputFields: []PromptField{{Name: "disease", Type: "string", Required: true}},
	})
}

func TestToolLoop_ToolThenFinal(t *testing.T) {
	client := &fakeLLM{responses: []json.RawMessage{
		json.RawMessage(`{"action":"tool","tool_name":"dealers.lookup","tool_input":{"productCategory":"fungicide"}}`),
		json.RawMessage(`{"action":"final","final":{"disease":"Leaf Blight"}}`),
	}}
	reg := &fakeTools{specs: []tools.Spec{{Name: "dealers.lookup"}}}
	loop := &ToolLoop{LLM: client, Tools: reg, MaxIters: 3}

	out, err := loop.Run(context.Background(), nil, basePrompt())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(reg.calls) != 1 || reg.calls[0] != "dealers.lookup" {
		t.Fatalf("expected one dealers.lookup call, got %v", reg.calls)
	}
	if string(out) != `{"disease":"Leaf Blight"}` {
		t.Fatalf("unexpected final: %s", out)
	}
	// Second prompt replays the tool result to the model.
	if len(client.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(client.prompts))
	}
	if !strings.Contains(client.prompts[1], "[TOOL_RESULTS]") || !strings.Contains(client.prompts[1], "Kisan Kendra") {
		t.Fatalf("second prompt missing tool results:\n%s", client.prompts[1])
	}
}

func TestToolLoop_DirectFinalWithoutEnvelope(t *testing.T) {
	client := &fakeLLM{responses: []json.RawMessage{
		json.RawMessage(`{"disease":"Powdery Mildew","confidence":80}`),
	}}
	loop := &ToolLoop{LLM: client, MaxIters: 3}
	out, err := loop.Run(context.Background(), nil, basePrompt())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if string(out) != `{"disease":"Powdery Mildew","confidence":80}` {
		t.Fatalf("unexpected final: %s", out)
	}
}

func TestToolLoop_MaxIterations(t *testing.T) {
	client := &fakeLLM{responses: []json.RawMessage{
		json.RawMessage(`{"action":"tool","tool_name":"dealers.lookup"}`),
		json.RawMessage(`{"action":"tool","tool_name":"dealers.lookup"}`),
	}}
	reg := &fakeTools{specs: []tools.Spec{{Name: "dealers.lookup"}}}
	loop := &ToolLoop{LLM: client, Tools: reg, MaxIters: 2}
	if _, err := loop.Run(context.Background(), nil, basePrompt()); !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("expected ErrMaxIterations, got %v", err)
	}
}

func TestToolLoop_ToolRequestWithoutTools(t *testing.T) {
	client := &fakeLLM{responses: []json.RawMessage{
		json.RawMessage(`{"action":"tool","tool_name":"dealers.lookup"}`),
	}}
	loop := &ToolLoop{LLM: client, MaxIters: 2}
	if _, err := loop.Run(context.Background(), nil, basePrompt()); err == nil {
		t.Fatal("expected error when model requests a tool with none available")
	}
}
