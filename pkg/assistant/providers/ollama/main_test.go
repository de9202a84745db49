package ollama

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

func TestConvertMsgs(t *testing.T) {
	got := ConvertMsgs([]assistant.Message{
		{Role: assistant.SYSTEM, Content: "sys"},
		{Role: assistant.USER, Content: "hi"},
	})
	assert.Len(t, got, 2)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, "hi", got[1].Content)
}
