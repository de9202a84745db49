package conversation

import (
	"context"
	"time"

	"github.com/xpanvictor/xarvis-voice/internal/types"
)

// Store persists one record per participant. Load returns (nil, nil) when
// nothing is stored. ttl on Save is how long the record may still live; stores
// may use it for expiry but the cache decides staleness itself.
type Store interface {
	Load(ctx context.Context, participantID string) (*types.ConversationRecord, error)
	Save(ctx context.Context, rec types.ConversationRecord, ttl time.Duration) error
	Delete(ctx context.Context, participantID string) error
}
