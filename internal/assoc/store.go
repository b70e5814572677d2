package assoc

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// MapKey is the single key the serialized association map lives under,
// in both the redis and badger backends.
const MapKey = "catalog:category_brand_map"

// Store persists the association map. Writes are write-through: the engine
// calls Save after every mutation, with no batching, so an association
// established by one request is durable before the response is sent.
type Store interface {
	Load(ctx context.Context) (Map, error)
	Save(ctx context.Context, m Map) error
}

// ── Redis store ──────────────────────────────────────────────────────────────

type redisStore struct{ rdb *redis.Client }

// NewRedisStore persists the map as a JSON string under MapKey.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Load(ctx context.Context) (Map, error) {
	raw, err := s.rdb.Get(ctx, MapKey).Result()
	if err == redis.Nil {
		return make(Map), nil
	}
	if err != nil {
		return nil, err
	}
	var m Map
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *redisStore) Save(ctx context.Context, m Map) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, MapKey, data, 0).Err()
}
