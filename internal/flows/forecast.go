package flows

import (
	"context"
	"strings"

	"agrisentry/internal/llm"
	"agrisentry/internal/llmtool"
)

func (r ForecastRequest) validate() error {
	if strings.TrimSpace(r.Crop) == "" {
		return validationError("Crop is required.")
	}
	if strings.TrimSpace(r.RainForecast) == "" {
		return validationError("Rain forecast is required.")
	}
	return nil
}

// RunForecast predicts up to three pest/disease threats for the crop under
// the given weather. No tools are exposed to the model here.
func (s *Service) RunForecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPhase(ctx, "forecast")

	raw, err := s.loop(nil).Run(ctx, nil, llmtool.StructuredPromptBuilder(forecastPrompt(req)))
	if err != nil {
		return nil, invocationError(s.msgs.Forecast, err)
	}

	var out ForecastResult
	if err := forecastSchema().Decode(raw, &out); err != nil {
		return nil, malformedOutput(s.msgs.Forecast, err)
	}
	if out.Forecasts == nil {
		out.Forecasts = []ForecastItem{}
	}
	return &out, nil
}
