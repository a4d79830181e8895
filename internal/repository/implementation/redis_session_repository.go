package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexter-ai-be/internal/entity"
	"nexter-ai-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "assistant:session:"
	sessionIndexKey  = "assistant:sessions"
)

// RedisSessionRepository stores JSON-marshaled sessions with a TTL and keeps
// a sorted-set index (score = creation time) so Latest stays O(log n).
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.SessionRepository = &RedisSessionRepository{}

func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := sessionKeyPrefix + session.Id.String()
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, payload, r.ttl)
	pipe.ZAdd(ctx, sessionIndexKey, redis.Z{
		Score:  float64(session.CreatedAt.UnixNano()),
		Member: session.Id.String(),
	})
	// The index must not outlive its newest entry.
	pipe.Expire(ctx, sessionIndexKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id.String())
	pipe.ZRem(ctx, sessionIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Latest(ctx context.Context) (*entity.Session, error) {
	// Newest first. Index members can outlive their TTL-evicted sessions,
	// so walk down and prune dead entries as they are found.
	ids, err := r.client.ZRevRange(ctx, sessionIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read session index: %w", err)
	}

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			r.client.ZRem(ctx, sessionIndexKey, raw)
			continue
		}
		session, err := r.Get(ctx, id)
		if errors.Is(err, contract.ErrSessionNotFound) {
			r.client.ZRem(ctx, sessionIndexKey, raw)
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, contract.ErrSessionNotFound
}
