package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/todo-tracker/internal/logger"
	"github.com/sbilibin2017/todo-tracker/internal/repositories"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=stats.go -destination=mock_stats.go -package=services

// Counter returns the size of a table.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// CountCache caches counts under string keys. Every invalidation bumps the key's version,
// and SetCount refuses to store a count read under an older version.
type CountCache interface {
	GetCount(ctx context.Context, key string) (int64, error)
	Version(ctx context.Context, key string) (int64, error)
	SetCount(ctx context.Context, key string, version, count int64) (bool, error)
}

// StatsService serves the public user and todo totals with a read-through cache.
type StatsService struct {
	users Counter
	todos Counter
	cache CountCache
	group singleflight.Group
}

// NewStatsService creates a StatsService. cache may be nil, in which case every call hits the database.
func NewStatsService(users, todos Counter, cache CountCache) *StatsService {
	return &StatsService{
		users: users,
		todos: todos,
		cache: cache,
	}
}

// CountUsers returns the number of registered users.
func (s *StatsService) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, repositories.UsersCountKey, s.users)
}

// CountTodos returns the number of todos across all users.
func (s *StatsService) CountTodos(ctx context.Context) (int64, error) {
	return s.count(ctx, repositories.TodosCountKey, s.todos)
}

func (s *StatsService) count(ctx context.Context, key string, source Counter) (int64, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCount(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repositories.ErrCacheMiss) {
			logger.Log.Warnw("stats cache unavailable, falling back to database", "key", key, "error", err)
		}
	}

	// Concurrent misses for the same key share one database query.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// The version is read before counting so a write that commits mid-query
		// keeps its invalidation.
		var version int64
		cacheable := s.cache != nil
		if cacheable {
			var err error
			if version, err = s.cache.Version(ctx, key); err != nil {
				logger.Log.Warnw("failed to read cache version", "key", key, "error", err)
				cacheable = false
			}
		}

		count, err := source.Count(ctx)
		if err != nil {
			return int64(0), err
		}
		if cacheable {
			stored, err := s.cache.SetCount(ctx, key, version, count)
			switch {
			case err != nil:
				logger.Log.Warnw("failed to cache count", "key", key, "error", err)
			case !stored:
				logger.Log.Debugw("count invalidated while querying, not cached", "key", key)
			}
		}
		return count, nil
	})
	if err != nil {
		logger.Log.Errorw("failed to count", "key", key, "error", err)
		return 0, err
	}
	return v.(int64), nil
}
