package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"teach-trade/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatsCache holds per-trainer earnings reports. Values are JSON encoded.
//
// Every trainer has a generation counter that Delete bumps. Get reports the
// generation it observed and Set only stores a report computed under the
// current generation, so a report read before an eviction is never cached
// after it.
type StatsCache interface {
	// Get decodes the cached report into dest; ok is false on a miss
	Get(ctx context.Context, trainerID uuid.UUID, dest any) (generation int64, ok bool, err error)
	// Set stores value unless the trainer was evicted after generation was read
	Set(ctx context.Context, trainerID uuid.UUID, generation int64, value any) error
	Delete(ctx context.Context, trainerIDs ...uuid.UUID) error
	Close() error
}

// KEYS[1] report, KEYS[2] generation; ARGV generation, payload, ttl in ms
var setIfCurrent = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg utils.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, trainerID uuid.UUID, dest any) (int64, bool, error) {
	vals, err := c.client.MGet(ctx, statsKey(trainerID), generationKey(trainerID)).Result()
	if err != nil {
		return 0, false, fmt.Errorf("get stats for %s: %w", trainerID.String(), err)
	}

	var generation int64
	if s, ok := vals[1].(string); ok {
		if generation, err = strconv.ParseInt(s, 10, 64); err != nil {
			return 0, false, fmt.Errorf("decode stats generation: %w", err)
		}
	}

	data, ok := vals[0].(string)
	if !ok {
		return generation, false, nil
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return generation, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return generation, true, nil
}

func (c *RedisCache) Set(ctx context.Context, trainerID uuid.UUID, generation int64, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}

	keys := []string{statsKey(trainerID), generationKey(trainerID)}
	if err := setIfCurrent.Run(ctx, c.client, keys, generation, payload, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("set stats for %s: %w", trainerID.String(), err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, trainerIDs ...uuid.UUID) error {
	if len(trainerIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range trainerIDs {
			pipe.Incr(ctx, generationKey(id))
			pipe.Del(ctx, statsKey(id))
		}
		return nil
	})
	return err
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func statsKey(trainerID uuid.UUID) string {
	return fmt.Sprintf("cache:stats:trainer:%s", trainerID.String())
}

func generationKey(trainerID uuid.UUID) string {
	return statsKey(trainerID) + ":gen"
}

// Noop is used when Redis is not configured; every lookup misses
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, any) (int64, bool, error) { return 0, false, nil }
func (Noop) Set(context.Context, uuid.UUID, int64, any) error         { return nil }
func (Noop) Delete(context.Context, ...uuid.UUID) error               { return nil }
func (Noop) Close() error                                             { return nil }
