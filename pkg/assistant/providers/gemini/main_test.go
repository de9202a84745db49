package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

func TestSplitMessages(t *testing.T) {
	system, history, prompt := SplitMessages([]assistant.Message{
		{Role: assistant.SYSTEM, Content: "be brief"},
		{Role: assistant.USER, Content: "hi"},
		{Role: assistant.ASSISTANT, Content: "hey"},
		{Role: assistant.USER, Content: "how are you?"},
	})
	assert.Equal(t, "be brief", system)
	assert.Equal(t, "how are you?", prompt)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("hey")}, history[1].Parts)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("there.")}}},
			{Content: nil},
		},
	}
	assert.Equal(t, "Hello there.", ResponseText(resp))
	assert.Equal(t, "", ResponseText(nil))
}
