package llm

import (
	"context"
	"encoding/json"
)

// FakeClient returns deterministic, minimal JSON payloads per phase for
// offline operation (no API key) and manual testing.
type FakeClient struct{}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, media *Media) (json.RawMessage, error) {
	var obj any
	switch PhaseFrom(ctx) {
	case "diagnosis":
		obj = map[string]any{
			"disease":            "Unknown Disease",
			"confidence":         50,
			"advice":             "Consult a local agronomist for an in-person inspection.",
			"remedy_category":    "none",
			"insurance_eligible": false,
			"dealers":            []any{},
		}
	case "forecast":
		obj = map[string]any{
			"forecasts": []any{
				map[string]any{
					"type":             "disease",
					"name":             "Powdery Mildew",
					"riskScore":        30,
					"timeline":         "Within 5-7 days",
					"preventiveAction": "Ensure good air circulation by pruning lower leaves.",
				},
			},
		}
	case "advice":
		obj = map[string]any{
			"disease":            "Unknown Disease",
			"confidence":         50,
			"advice":             "Monitor the crop and re-check after the next rain.",
			"insurance_eligible": false,
		}
	case "chat":
		obj = map[string]any{
			"response": "I am running in offline mode and cannot answer right now.",
		}
	default:
		obj = map[string]any{}
	}
	b, _ := json.Marshal(obj)
	return json.RawMessage(b), nil
}
