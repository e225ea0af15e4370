package llmtool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agrisentry/internal/tools"
)

// PromptField describes a single output field in the output contract.
type PromptField struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// PromptExample captures an optional input/output example.
type PromptExample struct {
	InputJSON  string
	OutputJSON string
}

// Fact is one contextual key/value interpolated verbatim into the prompt.
type Fact struct {
	Name  string
	Value string
}

// Section is a flow-specific free-form block appended after the fixed ones.
type Section struct {
	Title string
	Body  string
}

// StructuredPromptSpec defines the sections for a structured prompt.
// Empty sections are omitted from the rendered output.
type StructuredPromptSpec struct {
	Purpose      string
	Facts        []Fact
	Rules        []string
	Constraints  []string
	OutputFields []PromptField
	Language     string
	Sections     []Section
	Examples     []PromptExample
}

// StructuredPromptBuilder renders the spec into sectioned prompt text,
// appending tool specs and accumulated tool results from the loop state.
func StructuredPromptBuilder(spec StructuredPromptSpec) PromptBuilder {
	return func(_ context.Context, state *ToolState, specs []tools.Spec) (string, error) {
		if strings.TrimSpace(spec.Purpose) == "" {
			return "", fmt.Errorf("llmtool: purpose is empty")
		}
		if len(spec.OutputFields) == 0 {
			return "", fmt.Errorf("llmtool: output fields are empty")
		}

		var buf bytes.Buffer
		writeSection(&buf, "PURPOSE", spec.Purpose)
		writeSection(&buf, "CONTEXT", formatFacts(spec.Facts))
		writeSection(&buf, "RULES", formatList(spec.Rules))
		writeSection(&buf, "CONSTRAINTS", formatList(spec.Constraints))
		writeSection(&buf, "OUTPUT", formatFields(spec.OutputFields))
		writeSection(&buf, "LANGUAGE", spec.Language)
		for _, s := range spec.Sections {
			writeSection(&buf, s.Title, s.Body)
		}
		if len(specs) > 0 {
			writeSection(&buf, "TOOLS", formatToolSpecs(specs))
			writeSection(&buf, "TOOL_PROTOCOL",
				`To call a tool respond with {"action":"tool","tool_name":"...","tool_input":{...}}. To answer respond with {"action":"final","final":{...}} or the final JSON object directly.`)
		}
		if state != nil && len(state.ToolResults) > 0 {
			writeSection(&buf, "TOOL_RESULTS", formatToolResults(state.ToolResults))
		}
		if len(spec.Examples) > 0 {
			writeSection(&buf, "EXAMPLES", formatExamples(spec.Examples))
		}

		return strings.TrimSpace(buf.String()) + "\n", nil
	}
}

func formatFacts(facts []Fact) string {
	if len(facts) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, f := range facts {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s: %s\n", name, f.Value)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatFields(fields []PromptField) string {
	var buf strings.Builder
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatToolSpecs(specs []tools.Spec) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(specs)
	return strings.TrimRight(buf.String(), "\n")
}

func formatToolResults(results []ToolResult) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(results)
	return strings.TrimRight(buf.String(), "\n")
}

func formatExamples(examples []PromptExample) string {
	var buf strings.Builder
	for i, ex := range examples {
		fmt.Fprintf(&buf, "Example %d:\n", i+1)
		if strings.TrimSpace(ex.InputJSON) != "" {
			buf.WriteString("INPUT:\n")
			buf.WriteString(ex.InputJSON)
			if !strings.HasSuffix(ex.InputJSON, "\n") {
				buf.WriteString("\n")
			}
		}
		if strings.TrimSpace(ex.OutputJSON) != "" {
			buf.WriteString("OUTPUT:\n")
			buf.WriteString(ex.OutputJSON)
			if !strings.HasSuffix(ex.OutputJSON, "\n") {
				buf.WriteString("\n")
			}
		}
		buf.WriteString("\n")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
