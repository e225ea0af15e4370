package flows

import (
	"fmt"
	"strings"

	"agrisentry/internal/llmtool"
)

func weatherFact(temperature, humidity float64, rainForecast string) llmtool.Fact {
	return llmtool.Fact{
		Name:  "CURRENT WEATHER",
		Value: fmt.Sprintf("%g°C, %g%% humidity, Forecast: %s", temperature, humidity, rainForecast),
	}
}

func diagnosisPrompt(req DiagnosisRequest) llmtool.StructuredPromptSpec {
	return llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
		Purpose: "You are AgriSentry AI, a climate-smart farming assistant for Indian smallholder farmers. Analyze the attached plant image and weather context, identify the disease, provide simple actionable advice, determine insurance eligibility, classify the required treatment, and find dealers who stock the remedy.",
		Facts: []llmtool.Fact{
			{Name: "LOCATION", Value: "India (assume tropical/subtropical conditions)"},
			weatherFact(req.Temperature, req.Humidity, req.RainForecast),
			{Name: "CROP TYPE", Value: "Assume common Indian crop (rice, tomato, chilli, cotton, etc.) unless visible"},
			{Name: "PLANT PHOTO", Value: "attached to this message as an image part"},
		},
		Rules: []string{
			"advice: Direct, simple English. Max 15 words. Example: \"Apply neem oil spray after sunset.\"",
			"remedy_category: Based on your advice, classify the treatment. E.g., if advice is \"Apply neem oil\", the category is \"bio-pesticide\". If it's a sulfur-based treatment, it's \"fungicide\". If no product is needed, use \"none\".",
			"insurance_eligible: true if disease is fungal, bacterial, or moisture/heat-triggered. false if mechanical/nutrient/viral (non-climate).",
			"dealers: Call the dealers.lookup tool with the remedy_category you identified. If the category is \"none\", use an empty array and do not call the tool.",
		},
		OutputFields: llmtool.MustFieldsFromStruct(DiagnosisResult{}),
	}, llmtool.PresetStrictJSON(), llmtool.PresetCautiousDiagnosis())
}

func forecastPrompt(req ForecastRequest) llmtool.StructuredPromptSpec {
	return llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
		Purpose: "You are AgriSentry AI, a specialist in agricultural epidemiology and predictive modeling for Indian farming conditions. Predict the top 3 most likely pest and disease outbreaks for the given crop under the provided weather conditions.",
		Facts: []llmtool.Fact{
			{Name: "CROP", Value: req.Crop},
			weatherFact(req.Temperature, req.Humidity, req.RainForecast),
			{Name: "REGION", Value: "Assume farming conditions in India."},
		},
		Rules: []string{
			"Analyze the weather context. High humidity and rain favor fungal/bacterial diseases. Temperature affects insect life cycles.",
			"Identify up to 3 specific diseases or pests most likely to become a problem under these conditions for the specified crop.",
			"riskScore: An integer from 0-100 representing the outbreak probability. Be realistic. Not everything is a high risk. A 30 is a low-medium risk, a 75 is a high risk.",
			"timeline: A short, simple timeframe (e.g., \"Within 5-7 days\", \"High risk after next rain\").",
			"preventiveAction: A single, clear, actionable preventive step. Max 150 characters.",
		},
		OutputFields: llmtool.MustFieldsFromStruct(ForecastResult{}),
	}, llmtool.PresetStrictJSON())
}

func advicePrompt(req AdviceRequest) llmtool.StructuredPromptSpec {
	facts := []llmtool.Fact{
		{Name: "LOCATION", Value: "India (assume tropical/subtropical conditions)"},
		{Name: "DIAGNOSED DISEASE", Value: req.Disease},
		weatherFact(req.Temperature, req.Humidity, req.RainForecast),
		{Name: "CROP TYPE", Value: req.CropType},
	}
	// The photo block is resolved here by presence-check, not left to the model.
	if len(req.Image) > 0 {
		facts = append(facts, llmtool.Fact{Name: "PLANT PHOTO", Value: "attached to this message as an image part"})
	}
	return llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
		Purpose: "You are AgriSentry AI, a climate-smart farming assistant for Indian smallholder farmers. Given an already-diagnosed disease and the weather context, return tailored treatment advice.",
		Facts:   facts,
		Rules: []string{
			"advice: Direct, simple English. Max 15 words. Example: \"Wait 6 hrs — rain coming.\"",
			"insurance_eligible: true if disease is fungal, bacterial, or moisture/heat-triggered. false if mechanical/nutrient/viral (non-climate).",
		},
		OutputFields: llmtool.MustFieldsFromStruct(AdviceResult{}),
	}, llmtool.PresetStrictJSON(), llmtool.PresetCautiousDiagnosis())
}

func chatPrompt(req ChatRequest) llmtool.StructuredPromptSpec {
	return llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
		Purpose: "You are AgriSentry AI Assistant, an expert in Indian agriculture, crop diseases, and climate-smart farming. Your goal is to help Indian farmers with their questions.",
		Rules: []string{
			fmt.Sprintf("Respond ONLY in the user's specified language: %s.", req.Language),
			"Keep your answers concise, clear, and easy to understand for a non-technical audience.",
			"If you don't know the answer, say so. Do not make up information.",
			"Be friendly and encouraging.",
		},
		OutputFields: llmtool.MustFieldsFromStruct(chatResponse{}),
		Language:     req.Language,
		Sections: []llmtool.Section{
			{Title: "HISTORY", Body: formatHistory(req.History)},
			{Title: "QUESTION", Body: req.Question},
		},
	}, llmtool.PresetStrictJSON())
}

func formatHistory(history []ChatTurn) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
