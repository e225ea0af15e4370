package flows

import "agrisentry/internal/dealers"

// DiagnosisRequest carries one plant photo plus the simulated weather
// readings captured alongside it.
type DiagnosisRequest struct {
	Image        []byte
	ImageMIME    string
	Temperature  float64
	Humidity     float64
	RainForecast string
}

// DiagnosisResult is the validated model output for one diagnosis, optionally
// augmented with synthesized audio by the downstream step.
type DiagnosisResult struct {
	Disease           string           `json:"disease" prompt_desc:"The name of the disease."`
	Confidence        int              `json:"confidence" prompt_type:"int" prompt_desc:"The confidence level of the diagnosis (0-100)."`
	Advice            string           `json:"advice" prompt_desc:"Actionable treatment advice (max 15 words)."`
	RemedyCategory    string           `json:"remedy_category" prompt_desc:"The general category of the recommended treatment product: \"fungicide\", \"pesticide\", \"bio-pesticide\", \"nematicide\", or \"none\"."`
	InsuranceEligible bool             `json:"insurance_eligible" prompt_desc:"Whether the disease is climate-linked and eligible for insurance."`
	Dealers           []dealers.Dealer `json:"dealers" prompt_type:"[]Dealer" prompt_desc:"A list of dealers who can supply the necessary remedy, from the dealers.lookup tool."`
	Audio             string           `json:"audio,omitempty" prompt:"-"`
}

// ForecastRequest carries the weather readings and the cultivated crop.
type ForecastRequest struct {
	Temperature  float64
	Humidity     float64
	RainForecast string
	Crop         string
}

// ForecastItem is one predicted pest or disease threat.
type ForecastItem struct {
	Kind             string `json:"type" prompt_desc:"The type of threat: \"disease\" or \"pest\"."`
	Name             string `json:"name" prompt_desc:"The common name of the potential disease or pest (e.g., \"Downy Mildew\", \"Aphids\")."`
	RiskScore        int    `json:"riskScore" prompt_type:"int" prompt_desc:"The predicted risk of an outbreak (0-100)."`
	Timeline         string `json:"timeline" prompt_desc:"The likely timeframe for the outbreak (e.g., \"Next 3-5 days\", \"Within a week\")."`
	PreventiveAction string `json:"preventiveAction" prompt_desc:"A concise, actionable preventive measure a farmer can take. Max 150 characters."`
}

// ForecastResult holds up to three forecast items; it may be empty when no
// realistic threats are identified.
type ForecastResult struct {
	Forecasts []ForecastItem `json:"forecasts" prompt_type:"[]ForecastItem" prompt_desc:"An array of up to 3 most likely pest and disease forecasts."`
}

// AdviceRequest asks for climate-smart treatment advice for a known disease.
// The photo is optional.
type AdviceRequest struct {
	Disease      string
	Temperature  float64
	Humidity     float64
	RainForecast string
	CropType     string
	Image        []byte
	ImageMIME    string
}

// AdviceResult is the validated treatment-advice output.
type AdviceResult struct {
	Disease           string `json:"disease" prompt_desc:"The name of the diagnosed disease."`
	Confidence        int    `json:"confidence" prompt_type:"int" prompt_desc:"Confidence level (0-100) in the diagnosis."`
	Advice            string `json:"advice" prompt_desc:"Actionable treatment advice (max 15 words)."`
	InsuranceEligible bool   `json:"insurance_eligible" prompt_desc:"Whether the disease qualifies for micro-insurance."`
}

// ChatTurn is one prior exchange in a caller-owned conversation. History is
// replayed in full on every call; nothing is kept server-side.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the farmer's question, the response language, and the
// replayed history.
type ChatRequest struct {
	Question string
	Language string
	History  []ChatTurn
}

type chatResponse struct {
	Response string `json:"response" prompt_desc:"The assistant's answer to the farmer, in the requested language."`
}
