package llmtool

// PromptPreset holds reusable constraints and rules for structured prompts.
type PromptPreset struct {
	Constraints []string
	Rules       []string
}

// ApplyPresets prepends preset constraints/rules to a structured prompt spec.
func ApplyPresets(spec StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return spec
	}
	var merged PromptPreset
	for _, p := range presets {
		merged.Constraints = append(merged.Constraints, p.Constraints...)
		merged.Rules = append(merged.Rules, p.Rules...)
	}
	spec.Constraints = append(merged.Constraints, spec.Constraints...)
	spec.Rules = append(merged.Rules, spec.Rules...)
	return spec
}

// PresetStrictJSON enforces strict JSON-only output.
func PresetStrictJSON() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Return strict JSON only.",
			"Match the output schema exactly; no extra fields.",
			"NEVER add explanations, notes, or formatting outside the JSON.",
		},
	}
}

// PresetCautiousDiagnosis pins the fallback values used under uncertainty.
func PresetCautiousDiagnosis() PromptPreset {
	return PromptPreset{
		Rules: []string{
			`disease: Use precise scientific/common name. If unsure, use "Unknown Disease".`,
			"confidence: 0-100 integer. 50 if uncertain.",
		},
	}
}
