package flows

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agrisentry/internal/dealers"
	"agrisentry/internal/llm"
	"agrisentry/internal/llmtool"
)

func (r DiagnosisRequest) validate() error {
	if len(r.Image) == 0 {
		return validationError("Image is required.")
	}
	if !strings.HasPrefix(r.ImageMIME, "image/") {
		return validationError("Uploaded file must be an image.")
	}
	if strings.TrimSpace(r.RainForecast) == "" {
		return validationError("Rain forecast is required.")
	}
	return nil
}

// RunDiagnosis validates the request, invokes the diagnosis prompt with the
// dealer-lookup tool available, validates the output, and then best-effort
// attaches synthesized audio. Validation failures short-circuit before any
// external call.
func (s *Service) RunDiagnosis(ctx context.Context, req DiagnosisRequest) (*DiagnosisResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPhase(ctx, "diagnosis")

	raw, err := s.loop(s.registry).Run(ctx,
		&llm.Media{MIMEType: req.ImageMIME, Data: req.Image},
		llmtool.StructuredPromptBuilder(diagnosisPrompt(req)),
	)
	if err != nil {
		return nil, invocationError(s.msgs.Diagnosis, err)
	}

	var out DiagnosisResult
	if err := diagnosisSchema().Decode(raw, &out); err != nil {
		return nil, malformedOutput(s.msgs.Diagnosis, err)
	}
	if out.RemedyCategory == "none" || out.Dealers == nil {
		// No remedy means no dealer lookup, whatever the model returned.
		out.Dealers = []dealers.Dealer{}
	}

	s.attachAudio(ctx, &out)
	return &out, nil
}

// attachAudio is a degraded step: a synthesis failure is logged and the
// diagnosis is returned without audio.
func (s *Service) attachAudio(ctx context.Context, out *DiagnosisResult) {
	if s.synth == nil {
		return
	}
	eligibility := "Not Eligible"
	if out.InsuranceEligible {
		eligibility = "Eligible"
	}
	text := fmt.Sprintf("Diagnosis: %s. Advice: %s. Insurance eligibility: %s.",
		out.Disease, out.Advice, eligibility)
	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		log.Printf("diagnosis audio degraded: %v", err)
		return
	}
	out.Audio = audio
}
