package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/todo-tracker/internal/logger"
)

// Cache keys for the public counters
const (
	UsersCountKey = "stats:users:count"
	TodosCountKey = "stats:todos:count"
)

// ErrCacheMiss is returned when a key is absent from the cache.
var ErrCacheMiss = errors.New("cache miss")

// StatsCacheRepository caches the public user and todo counts in Redis
type StatsCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached counts
}

// NewStatsCacheRepository creates a new repository instance with the given TTL
func NewStatsCacheRepository(client *redis.Client, expiration time.Duration) *StatsCacheRepository {
	return &StatsCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetCount returns the cached count stored under key, or ErrCacheMiss.
func (r *StatsCacheRepository) GetCount(ctx context.Context, key string) (int64, error) {
	val, err := r.client.Get(ctx, key).Result()
	logger.Log.Debugw("cache get", "key", key, "value", val, "error", err)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Warnw("corrupt cached count", "key", key, "value", val, "error", err)
		return 0, ErrCacheMiss
	}
	return count, nil
}

// setCountIfVersion writes the count only while the version key still holds the version
// the caller read before querying the database.
var setCountIfVersion = redis.NewScript(`
if (redis.call('GET', KEYS[2]) or '0') ~= ARGV[1] then
	return 0
end
if ARGV[3] == '0' then
	redis.call('SET', KEYS[1], ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
end
return 1
`)

func versionKey(key string) string {
	return key + ":version"
}

// Version returns how many times key has been invalidated. Zero before the first invalidation.
func (r *StatsCacheRepository) Version(ctx context.Context, key string) (int64, error) {
	v, err := r.client.Get(ctx, versionKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetCount stores count under key with the repository TTL, unless key was invalidated
// after version was read. It reports whether the value was stored.
func (r *StatsCacheRepository) SetCount(ctx context.Context, key string, version, count int64) (bool, error) {
	res, err := setCountIfVersion.Run(ctx, r.client,
		[]string{key, versionKey(key)},
		version, count, r.exp.Milliseconds(),
	).Int()
	logger.Log.Debugw("cache set", "key", key, "value", count, "version", version, "stored", res == 1, "error", err)
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Invalidate removes the given keys and bumps their versions in one transaction.
func (r *StatsCacheRepository) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, key := range keys {
			pipe.Incr(ctx, versionKey(key))
		}
		return nil
	})
	logger.Log.Debugw("cache invalidate", "keys", keys, "error", err)
	return err
}
