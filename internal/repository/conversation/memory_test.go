package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xpanvictor/xarvis-voice/internal/types"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := types.ConversationRecord{
		ParticipantID: "p1",
		CreatedAt:     time.Now(),
		Entries:       []types.ConversationEntry{{Role: assistant.USER, Content: "hi"}},
	}
	require.NoError(t, s.Save(ctx, rec, time.Hour))
	rec.Entries[0].Content = "mutated"

	got, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hi", got.Entries[0].Content)

	got.Entries[0].Content = "also mutated"
	again, _ := s.Load(ctx, "p1")
	assert.Equal(t, "hi", again.Entries[0].Content)

	require.NoError(t, s.Delete(ctx, "p1"))
	missing, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecordEntityKeepsMillisecondTimestamps(t *testing.T) {
	created := time.UnixMilli(1736000000123)
	var e RecordEntity
	e.FromDomain(types.ConversationRecord{
		ParticipantID: "p1",
		CreatedAt:     created,
		Entries: []types.ConversationEntry{
			{Role: assistant.USER, Content: "q"},
			{Role: assistant.ASSISTANT, Content: "a"},
		},
	})
	assert.Equal(t, int64(1736000000123), e.CreatedAt)

	back := e.ToDomain()
	assert.True(t, created.Equal(back.CreatedAt))
	assert.Equal(t, assistant.ASSISTANT, back.Entries[1].Role)
	assert.Equal(t, "participant:p1:conversation", RecordKey("p1"))
}
