package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	genai "google.golang.org/genai"
)

// GeminiOptions configures the Gemini-backed client.
type GeminiOptions struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli     *genai.Client
	model   string
	timeout time.Duration
	rl      *rpsLimiter
}

// Safety thresholds match the hosted flow configuration.
func safetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
	}
}

func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		cli:     cli,
		model:   model,
		timeout: opts.Timeout,
		rl:      newRPSLimiter(opts.RPS, opts.Burst),
	}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

func (g *GeminiClient) Close() error {
	g.rl.Stop()
	return nil
}

// GenerateJSON sends the prompt (plus any inline media) and requests
// application/json output. Deadline expiry surfaces as ErrTimeout.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string, media *Media) (json.RawMessage, error) {
	phase := PhaseFrom(ctx)
	log.Printf("LLM request (%s): %d bytes", phase, len(prompt))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	parts := []*genai.Part{{Text: prompt}}
	if media != nil && len(media.Data) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: media.MIMEType, Data: media.Data},
		})
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := g.rl.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: parts}},
			&genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				SafetySettings:   safetySettings(),
			},
		)
		if err != nil {
			lastErr = err
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrInvalidJSON
		} else {
			txt := resp.Candidates[0].Content.Parts[0].Text
			return json.RawMessage(txt), nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrTimeout
			}
			return nil, ctx.Err()
		case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
		}
	}
	if errors.Is(lastErr, context.DeadlineExceeded) {
		return nil, ErrTimeout
	}
	return nil, lastErr
}
