package flows

import (
	"context"
	"encoding/json"
	"errors"

	"agrisentry/internal/dealers"
	"agrisentry/internal/llm"
	"agrisentry/internal/tools"
)

// scriptedLLM returns queued responses in order and records every call.
type scriptedLLM struct {
	responses []json.RawMessage
	err       error
	calls     int
	prompts   []string
	media     []*llm.Media
}

func (f *scriptedLLM) Name() string { return "scripted" }
func (f *scriptedLLM) Close() error { return nil }
func (f *scriptedLLM) GenerateJSON(ctx context.Context, prompt string, media *llm.Media) (json.RawMessage, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.media = append(f.media, media)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("scripted: out of responses")
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

// recordingSynth captures synthesized text; fails when err is set.
type recordingSynth struct {
	texts []string
	err   error
}

func (s *recordingSynth) Synthesize(_ context.Context, text string) (string, error) {
	s.texts = append(s.texts, text)
	if s.err != nil {
		return "", s.err
	}
	return "data:audio/mp3;base64,QUJD", nil
}

func newTestService(client llm.Client, synth *recordingSynth) *Service {
	reg := tools.NewRegistry(tools.NewDealerLookup(dealers.Default()))
	if synth == nil {
		return New(client, reg, nil)
	}
	return New(client, reg, synth)
}

func validDiagnosisRequest() DiagnosisRequest {
	return DiagnosisRequest{
		Image:        []byte{0xFF, 0xD8, 0xFF},
		ImageMIME:    "image/jpeg",
		Temperature:  31.5,
		Humidity:     78,
		RainForecast: "Light rain in 3 hours",
	}
}

func finalDiagnosisJSON() json.RawMessage {
	return json.RawMessage(`{
		"disease": "Early Blight",
		"confidence": 85,
		"advice": "Apply copper-based fungicide before the rain.",
		"remedy_category": "fungicide",
		"insurance_eligible": true,
		"dealers": [{"name":"Kisan Kendra","address":"123, Market Road, Pune","phone":"9876543210"}]
	}`)
}
