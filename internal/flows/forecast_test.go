package flows

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForecastRequest() ForecastRequest {
	return ForecastRequest{
		Temperature:  29,
		Humidity:     85,
		RainForecast: "Heavy rain expected",
		Crop:         "Tomato",
	}
}

func TestRunForecast_ValidationShortCircuits(t *testing.T) {
	client := &scriptedLLM{}
	svc := newTestService(client, nil)

	_, err := svc.RunForecast(context.Background(), ForecastRequest{RainForecast: "No rain"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, client.calls)
}

func TestRunForecast_HappyPath(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{json.RawMessage(`{"forecasts":[
		{"type":"disease","name":"Late Blight","riskScore":80,"timeline":"Within 3-5 days","preventiveAction":"Avoid overhead irrigation and improve drainage."},
		{"type":"pest","name":"Whitefly","riskScore":45,"timeline":"Within a week","preventiveAction":"Install yellow sticky traps near field borders."}
	]}`)}}
	svc := newTestService(client, nil)

	data, err := svc.RunForecast(context.Background(), validForecastRequest())
	require.NoError(t, err)
	require.Len(t, data.Forecasts, 2)
	assert.Equal(t, "disease", data.Forecasts[0].Kind)
	assert.Equal(t, 80, data.Forecasts[0].RiskScore)

	// Forecast flow exposes no tools to the model.
	require.Equal(t, 1, client.calls)
	assert.NotContains(t, client.prompts[0], "[TOOLS]")
	assert.Nil(t, client.media[0])
}

func TestRunForecast_TruncatesToThreeAndClampsRisk(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{json.RawMessage(`{"forecasts":[
		{"type":"disease","name":"A","riskScore":120,"timeline":"t","preventiveAction":"p"},
		{"type":"pest","name":"B","riskScore":-5,"timeline":"t","preventiveAction":"p"},
		{"type":"pest","name":"C","riskScore":50,"timeline":"t","preventiveAction":"p"},
		{"type":"pest","name":"D","riskScore":50,"timeline":"t","preventiveAction":"p"}
	]}`)}}
	svc := newTestService(client, nil)

	data, err := svc.RunForecast(context.Background(), validForecastRequest())
	require.NoError(t, err)
	require.Len(t, data.Forecasts, 3)
	assert.Equal(t, 100, data.Forecasts[0].RiskScore)
	assert.Equal(t, 0, data.Forecasts[1].RiskScore)
	for _, f := range data.Forecasts {
		assert.GreaterOrEqual(t, f.RiskScore, 0)
		assert.LessOrEqual(t, f.RiskScore, 100)
	}
}

func TestRunForecast_EmptyForecastListIsValid(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{json.RawMessage(`{"forecasts":[]}`)}}
	svc := newTestService(client, nil)

	data, err := svc.RunForecast(context.Background(), validForecastRequest())
	require.NoError(t, err)
	assert.Empty(t, data.Forecasts)
	assert.NotNil(t, data.Forecasts)
}

func TestRunForecast_UnknownThreatTypeRejected(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{json.RawMessage(`{"forecasts":[
		{"type":"weed","name":"A","riskScore":10,"timeline":"t","preventiveAction":"p"}
	]}`)}}
	svc := newTestService(client, nil)

	data, err := svc.RunForecast(context.Background(), validForecastRequest())
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, KindMalformedOutput, KindOf(err))
	assert.Equal(t, DefaultMessages().Forecast, UserMessage(err))
}

func TestRunForecast_LongPreventiveActionTruncated(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	payload, _ := json.Marshal(map[string]any{"forecasts": []any{map[string]any{
		"type": "pest", "name": "Thrips", "riskScore": 40, "timeline": "soon",
		"preventiveAction": string(long),
	}}})
	client := &scriptedLLM{responses: []json.RawMessage{payload}}
	svc := newTestService(client, nil)

	data, err := svc.RunForecast(context.Background(), validForecastRequest())
	require.NoError(t, err)
	assert.Len(t, data.Forecasts[0].PreventiveAction, 150)
}
