package llmtool

import (
	"encoding/json"
	"fmt"
)

// ActionEnvelope is the tool-loop action response from the model.
type ActionEnvelope struct {
	Action    string          `json:"action,omitempty"`
	ToolName  string          `json:"tool_name,omitempty"`
	ToolInput json.RawMessage `json:"tool_input,omitempty"`
	Final     json.RawMessage `json:"final,omitempty"`
}

// ParseAction parses the model response into an action envelope. A plain JSON
// object without envelope fields is treated as a direct final answer, which is
// the common case for models that skip the envelope entirely.
func ParseAction(raw json.RawMessage) (ActionEnvelope, error) {
	var env ActionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ActionEnvelope{}, err
	}
	if env.Action == "" && env.ToolName == "" && len(env.Final) == 0 {
		env.Action = "final"
		env.Final = raw
	}
	if env.Action == "" {
		switch {
		case len(env.Final) > 0:
			env.Action = "final"
		case env.ToolName != "" || len(env.ToolInput) > 0:
			env.Action = "tool"
		}
	}
	switch env.Action {
	case "final", "tool":
		return env, nil
	default:
		return ActionEnvelope{}, fmt.Errorf("llmtool: invalid action %q", env.Action)
	}
}
