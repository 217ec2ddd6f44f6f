package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/csg33k/hrnet/internal/form"
)

const redisKeyPrefix = "hrnet:form:"

// RedisBackend stores snapshots as JSON with a sliding TTL.
type RedisBackend struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisBackend(client redis.UniversalClient, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

func (b *RedisBackend) Load(ctx context.Context, id string) (form.Snapshot, bool, error) {
	raw, err := b.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.Snapshot{}, false, nil
	}
	if err != nil {
		return form.Snapshot{}, false, err
	}
	var s form.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return form.Snapshot{}, false, err
	}
	return s, true, nil
}

func (b *RedisBackend) Save(ctx context.Context, id string, s form.Snapshot) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, redisKeyPrefix+id, raw, b.ttl).Err()
}
