package flows

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisentry/internal/llmtool"
)

func validChatRequest() ChatRequest {
	return ChatRequest{
		Question: "When should I irrigate my cotton field?",
		Language: "Tamil",
		History: []ChatTurn{
			{Role: "user", Content: "What pests attack cotton?"},
			{Role: "model", Content: "Bollworm and whitefly are the most common."},
		},
	}
}

func TestChatPrompt_PinsLanguageAndReplaysHistory(t *testing.T) {
	build := llmtool.StructuredPromptBuilder(chatPrompt(validChatRequest()))
	out, err := build(context.Background(), &llmtool.ToolState{}, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Respond ONLY in the user's specified language: Tamil.")
	assert.Contains(t, out, "[LANGUAGE]\nTamil")
	assert.Contains(t, out, "user: What pests attack cotton?")
	assert.Contains(t, out, "model: Bollworm and whitefly are the most common.")
	assert.Contains(t, out, "[QUESTION]\nWhen should I irrigate my cotton field?")
}

func TestChatPrompt_OmitsHistorySectionWhenEmpty(t *testing.T) {
	req := validChatRequest()
	req.History = nil
	build := llmtool.StructuredPromptBuilder(chatPrompt(req))
	out, err := build(context.Background(), &llmtool.ToolState{}, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "[HISTORY]")
}

func TestRunChat_HappyPath(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{
		json.RawMessage(`{"response":"பருத்திக்கு வாரம் ஒருமுறை நீர் பாய்ச்சவும்."}`),
	}}
	svc := newTestService(client, nil)

	resp, err := svc.RunChat(context.Background(), validChatRequest())
	require.NoError(t, err)
	assert.Equal(t, "பருத்திக்கு வாரம் ஒருமுறை நீர் பாய்ச்சவும்.", resp)
	assert.Equal(t, 1, client.calls)
}

func TestRunChat_Validation(t *testing.T) {
	client := &scriptedLLM{}
	svc := newTestService(client, nil)

	cases := []ChatRequest{
		{Language: "Hindi"},                           // missing question
		{Question: "q"},                               // missing language
		{Question: "q", Language: "Hindi", History: []ChatTurn{{Role: "system", Content: "x"}}},
	}
	for _, req := range cases {
		_, err := svc.RunChat(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
	}
	assert.Zero(t, client.calls)
}

func TestRunChat_ServiceFailure(t *testing.T) {
	client := &scriptedLLM{err: context.Canceled}
	svc := newTestService(client, nil)

	resp, err := svc.RunChat(context.Background(), validChatRequest())
	require.Error(t, err)
	assert.Empty(t, resp)
	assert.Equal(t, DefaultMessages().Chat, UserMessage(err))
}

func TestRunChat_MissingResponseFieldIsMalformed(t *testing.T) {
	client := &scriptedLLM{responses: []json.RawMessage{json.RawMessage(`{"answer":"hello"}`)}}
	svc := newTestService(client, nil)

	_, err := svc.RunChat(context.Background(), validChatRequest())
	require.Error(t, err)
	assert.Equal(t, KindMalformedOutput, KindOf(err))
}
