package conversation

import (
	"time"

	"github.com/xpanvictor/xarvis-voice/internal/types"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

// RecordEntity is the stored shape of a conversation record.
type RecordEntity struct {
	ParticipantID string        `json:"participant_id"`
	CreatedAt     int64         `json:"created_at_ms"`
	Entries       []EntryEntity `json:"entries"`
}

type EntryEntity struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (e *RecordEntity) FromDomain(rec types.ConversationRecord) {
	e.ParticipantID = rec.ParticipantID
	e.CreatedAt = rec.CreatedAt.UnixMilli()
	e.Entries = make([]EntryEntity, 0, len(rec.Entries))
	for _, en := range rec.Entries {
		e.Entries = append(e.Entries, EntryEntity{Role: string(en.Role), Content: en.Content})
	}
}

func (e *RecordEntity) ToDomain() *types.ConversationRecord {
	rec := &types.ConversationRecord{
		ParticipantID: e.ParticipantID,
		CreatedAt:     time.UnixMilli(e.CreatedAt),
		Entries:       make([]types.ConversationEntry, 0, len(e.Entries)),
	}
	for _, en := range e.Entries {
		rec.Entries = append(rec.Entries, types.ConversationEntry{Role: assistant.Role(en.Role), Content: en.Content})
	}
	return rec
}
