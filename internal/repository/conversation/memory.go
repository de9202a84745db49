package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/xpanvictor/xarvis-voice/internal/types"
)

// MemoryStore is the process-local default.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.ConversationRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]types.ConversationRecord)}
}

func (m *MemoryStore) Load(_ context.Context, participantID string) (*types.ConversationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[participantID]
	if !ok {
		return nil, nil
	}
	rec = rec.Clone()
	return &rec, nil
}

func (m *MemoryStore) Save(_ context.Context, rec types.ConversationRecord, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ParticipantID] = rec.Clone()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, participantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, participantID)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
