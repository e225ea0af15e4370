package flows

import (
	"context"
	"strings"

	"agrisentry/internal/llm"
	"agrisentry/internal/llmtool"
)

func (r AdviceRequest) validate() error {
	if strings.TrimSpace(r.Disease) == "" {
		return validationError("Disease name is required.")
	}
	if strings.TrimSpace(r.CropType) == "" {
		return validationError("Crop type is required.")
	}
	if len(r.Image) > 0 && !strings.HasPrefix(r.ImageMIME, "image/") {
		return validationError("Uploaded file must be an image.")
	}
	return nil
}

// RunAdvice returns climate-smart treatment advice for an already-diagnosed
// disease. The plant photo is optional; when present it is attached and the
// prompt's photo block is included.
func (s *Service) RunAdvice(ctx context.Context, req AdviceRequest) (*AdviceResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPhase(ctx, "advice")

	var media *llm.Media
	if len(req.Image) > 0 {
		media = &llm.Media{MIMEType: req.ImageMIME, Data: req.Image}
	}
	raw, err := s.loop(nil).Run(ctx, media, llmtool.StructuredPromptBuilder(advicePrompt(req)))
	if err != nil {
		return nil, invocationError(s.msgs.Advice, err)
	}

	var out AdviceResult
	if err := adviceSchema().Decode(raw, &out); err != nil {
		return nil, malformedOutput(s.msgs.Advice, err)
	}
	return &out, nil
}
