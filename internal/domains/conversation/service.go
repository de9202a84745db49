package conversation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xpanvictor/xarvis-voice/internal/types"
	"github.com/xpanvictor/xarvis-voice/pkg/assistant"
)

const (
	DefaultTTL      = 24 * time.Hour
	DefaultMaxPairs = 10
)

// Cache is short-term dialogue memory keyed by participant. Records expire
// lazily: a record whose age has reached the TTL is discarded the next time
// it is read or written.
type Cache struct {
	store    Store
	ttl      time.Duration
	maxPairs int
	now      func() time.Time

	// serialises read-modify-write in Append
	mu sync.Mutex
}

func NewCache(store Store, ttl time.Duration, maxPairs int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	return &Cache{
		store:    store,
		ttl:      ttl,
		maxPairs: maxPairs,
		now:      time.Now,
	}
}

// Get returns the participant's entries, oldest first. Unknown or expired
// participants get an empty slice.
func (c *Cache) Get(ctx context.Context, participantID string) ([]types.ConversationEntry, error) {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil, nil
	}
	rec, err := c.live(ctx, participantID)
	if err != nil || rec == nil {
		return nil, err
	}
	return rec.Clone().Entries, nil
}

// History is Get shaped for the generator.
func (c *Cache) History(ctx context.Context, participantID string) ([]assistant.Message, error) {
	entries, err := c.Get(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return types.ToAssistantMessages(entries), nil
}

// Append records one exchange, dropping the oldest pairs beyond the cap.
func (c *Cache) Append(ctx context.Context, participantID, userText, assistantText string) error {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.live(ctx, participantID)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &types.ConversationRecord{ParticipantID: participantID, CreatedAt: c.now()}
	}
	rec.Entries = append(rec.Entries,
		types.ConversationEntry{Role: assistant.USER, Content: userText},
		types.ConversationEntry{Role: assistant.ASSISTANT, Content: assistantText},
	)
	if over := len(rec.Entries) - 2*c.maxPairs; over > 0 {
		rec.Entries = append([]types.ConversationEntry(nil), rec.Entries[over:]...)
	}

	remaining := c.ttl - c.now().Sub(rec.CreatedAt)
	if err := c.store.Save(ctx, *rec, remaining); err != nil {
		return fmt.Errorf("conversation: save %s: %w", participantID, err)
	}
	return nil
}

// live loads the record and evicts it when stale.
func (c *Cache) live(ctx context.Context, participantID string) (*types.ConversationRecord, error) {
	rec, err := c.store.Load(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("conversation: load %s: %w", participantID, err)
	}
	if rec == nil {
		return nil, nil
	}
	if c.now().Sub(rec.CreatedAt) >= c.ttl {
		if err := c.store.Delete(ctx, participantID); err != nil {
			return nil, fmt.Errorf("conversation: evict %s: %w", participantID, err)
		}
		return nil, nil
	}
	return rec, nil
}
