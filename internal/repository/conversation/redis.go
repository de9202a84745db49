package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/xarvis-voice/internal/types"
	"github.com/xpanvictor/xarvis-voice/pkg/utils"
)

// RedisStore keeps each record as one JSON value with a key expiry matching
// the record's remaining lifetime.
type RedisStore struct {
	rc *redis.Client
}

func NewRedisStore(rc *redis.Client) *RedisStore {
	return &RedisStore{rc: rc}
}

func RecordKey(participantID string) string {
	return fmt.Sprintf("participant:%s:conversation", participantID)
}

func (r *RedisStore) Load(ctx context.Context, participantID string) (*types.ConversationRecord, error) {
	raw, err := r.rc.WithContext(ctx).Get(RecordKey(participantID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, utils.XError{Reason: "loading conversation", Meta: err}.ToError()
	}
	var e RecordEntity
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, utils.XError{Reason: "decoding conversation", Meta: err}.ToError()
	}
	return e.ToDomain(), nil
}

func (r *RedisStore) Save(ctx context.Context, rec types.ConversationRecord, ttl time.Duration) error {
	if ttl <= 0 {
		return r.Delete(ctx, rec.ParticipantID)
	}
	var e RecordEntity
	e.FromDomain(rec)
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("can't marshal conversation: %w", err)
	}
	if err := r.rc.WithContext(ctx).Set(RecordKey(rec.ParticipantID), data, ttl).Err(); err != nil {
		return utils.XError{Reason: "storing conversation", Meta: err}.ToError()
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, participantID string) error {
	if err := r.rc.WithContext(ctx).Del(RecordKey(participantID)).Err(); err != nil {
		return utils.XError{Reason: "deleting conversation", Meta: err}.ToError()
	}
	return nil
}
