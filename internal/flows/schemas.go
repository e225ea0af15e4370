package flows

import "agrisentry/internal/schema"

// Output schemas applied to every model response before it is handed back.
// The model's output contract is re-checked here with the same discipline as
// caller input; a violation is a service failure, not a silent coercion.

var remedyCategories = []string{"fungicide", "pesticide", "bio-pesticide", "nematicide", "none"}

func dealerSchema() *schema.Schema {
	return &schema.Schema{Fields: []schema.Field{
		{Name: "name", Kind: schema.String, Required: true},
		{Name: "address", Kind: schema.String, Required: true},
		{Name: "phone", Kind: schema.String, Required: true},
	}}
}

func diagnosisSchema() *schema.Schema {
	min, max := schema.Bounds(0, 100)
	return &schema.Schema{Fields: []schema.Field{
		{Name: "disease", Kind: schema.String, Required: true},
		{Name: "confidence", Kind: schema.Integer, Required: true, Min: min, Max: max, Clamp: true},
		{Name: "advice", Kind: schema.String, Required: true},
		{Name: "remedy_category", Kind: schema.String, Required: true, Enum: remedyCategories},
		{Name: "insurance_eligible", Kind: schema.Boolean, Required: true},
		{Name: "dealers", Kind: schema.Array, Required: true, Items: dealerSchema()},
	}}
}

func forecastSchema() *schema.Schema {
	min, max := schema.Bounds(0, 100)
	return &schema.Schema{Fields: []schema.Field{
		{Name: "forecasts", Kind: schema.Array, Required: true, MaxItems: 3,
			Items: &schema.Schema{Fields: []schema.Field{
				{Name: "type", Kind: schema.String, Required: true, Enum: []string{"disease", "pest"}},
				{Name: "name", Kind: schema.String, Required: true},
				{Name: "riskScore", Kind: schema.Integer, Required: true, Min: min, Max: max, Clamp: true},
				{Name: "timeline", Kind: schema.String, Required: true},
				{Name: "preventiveAction", Kind: schema.String, Required: true, MaxLen: 150},
			}},
		},
	}}
}

func adviceSchema() *schema.Schema {
	min, max := schema.Bounds(0, 100)
	return &schema.Schema{Fields: []schema.Field{
		{Name: "disease", Kind: schema.String, Required: true},
		{Name: "confidence", Kind: schema.Integer, Required: true, Min: min, Max: max, Clamp: true},
		{Name: "advice", Kind: schema.String, Required: true},
		{Name: "insurance_eligible", Kind: schema.Boolean, Required: true},
	}}
}

func chatSchema() *schema.Schema {
	return &schema.Schema{Fields: []schema.Field{
		{Name: "response", Kind: schema.String, Required: true},
	}}
}
