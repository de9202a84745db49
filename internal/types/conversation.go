package types

import (
	"time"

	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

type ConversationEntry struct {
	Role    assistant.Role `json:"role"`
	Content string         `json:"content"`
}

// ConversationRecord is the short-term memory kept for one participant.
// Entries always come in user/assistant pairs.
type ConversationRecord struct {
	ParticipantID string              `json:"participant_id"`
	CreatedAt     time.Time           `json:"created_at"`
	Entries       []ConversationEntry `json:"entries"`
}

func (r ConversationRecord) Clone() ConversationRecord {
	r.Entries = append([]ConversationEntry(nil), r.Entries...)
	return r
}

func ToAssistantMessages(entries []ConversationEntry) []assistant.Message {
	msgs := make([]assistant.Message, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, assistant.Message{Role: e.Role, Content: e.Content})
	}
	return msgs
}
