package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/todo-tracker/internal/repositories"
	"github.com/sbilibin2017/todo-tracker/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Count(t *testing.T) {
	type mocks struct {
		users *services.MockCounter
		todos *services.MockCounter
		cache *services.MockCountCache
	}

	tests := []struct {
		name    string
		key     string
		call    func(*services.StatsService) (int64, error)
		setup   func(m mocks, source *services.MockCounter)
		want    int64
		wantErr bool
	}{
		{
			name: "users from cache",
			key:  repositories.UsersCountKey,
			call: func(s *services.StatsService) (int64, error) { return s.CountUsers(context.Background()) },
			setup: func(m mocks, _ *services.MockCounter) {
				m.cache.EXPECT().GetCount(gomock.Any(), repositories.UsersCountKey).Return(int64(7), nil)
			},
			want: 7,
		},
		{
			name: "todos miss fills cache",
			key:  repositories.TodosCountKey,
			call: func(s *services.StatsService) (int64, error) { return s.CountTodos(context.Background()) },
			setup: func(m mocks, source *services.MockCounter) {
				m.cache.EXPECT().GetCount(gomock.Any(), repositories.TodosCountKey).Return(int64(0), repositories.ErrCacheMiss)
				m.cache.EXPECT().Version(gomock.Any(), repositories.TodosCountKey).Return(int64(3), nil)
				source.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
				m.cache.EXPECT().SetCount(gomock.Any(), repositories.TodosCountKey, int64(3), int64(12)).Return(true, nil)
			},
			want: 12,
		},
		{
			name: "count invalidated while querying is still returned",
			key:  repositories.TodosCountKey,
			call: func(s *services.StatsService) (int64, error) { return s.CountTodos(context.Background()) },
			setup: func(m mocks, source *services.MockCounter) {
				m.cache.EXPECT().GetCount(gomock.Any(), repositories.TodosCountKey).Return(int64(0), repositories.ErrCacheMiss)
				m.cache.EXPECT().Version(gomock.Any(), repositories.TodosCountKey).Return(int64(4), nil)
				source.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
				m.cache.EXPECT().SetCount(gomock.Any(), repositories.TodosCountKey, int64(4), int64(12)).Return(false, nil)
			},
			want: 12,
		},
		{
			name: "cache error falls back to database",
			key:  repositories.UsersCountKey,
			call: func(s *services.StatsService) (int64, error) { return s.CountUsers(context.Background()) },
			setup: func(m mocks, source *services.MockCounter) {
				m.cache.EXPECT().GetCount(gomock.Any(), repositories.UsersCountKey).Return(int64(0), errors.New("redis down"))
				m.cache.EXPECT().Version(gomock.Any(), repositories.UsersCountKey).Return(int64(0), errors.New("redis down"))
				source.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
			},
			want: 3,
		},
		{
			name: "database error",
			key:  repositories.TodosCountKey,
			call: func(s *services.StatsService) (int64, error) { return s.CountTodos(context.Background()) },
			setup: func(m mocks, source *services.MockCounter) {
				m.cache.EXPECT().GetCount(gomock.Any(), repositories.TodosCountKey).Return(int64(0), repositories.ErrCacheMiss)
				m.cache.EXPECT().Version(gomock.Any(), repositories.TodosCountKey).Return(int64(0), nil)
				source.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks{
				users: services.NewMockCounter(ctrl),
				todos: services.NewMockCounter(ctrl),
				cache: services.NewMockCountCache(ctrl),
			}
			source := m.users
			if tt.key == repositories.TodosCountKey {
				source = m.todos
			}
			tt.setup(m, source)

			svc := services.NewStatsService(m.users, m.todos, m.cache)
			got, err := tt.call(svc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatsService_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := services.NewMockCounter(ctrl)
	todos := services.NewMockCounter(ctrl)

	users.EXPECT().Count(gomock.Any()).Return(int64(2), nil)
	todos.EXPECT().Count(gomock.Any()).Return(int64(5), nil)

	svc := services.NewStatsService(users, todos, nil)

	u, err := svc.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), u)

	n, err := svc.CountTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

// versionedCache mirrors StatsCacheRepository: invalidation bumps the version
// and SetCount only stores under the current one.
type versionedCache struct {
	counts   map[string]int64
	versions map[string]int64
}

func newVersionedCache() *versionedCache {
	return &versionedCache{counts: map[string]int64{}, versions: map[string]int64{}}
}

func (c *versionedCache) GetCount(_ context.Context, key string) (int64, error) {
	n, ok := c.counts[key]
	if !ok {
		return 0, repositories.ErrCacheMiss
	}
	return n, nil
}

func (c *versionedCache) Version(_ context.Context, key string) (int64, error) {
	return c.versions[key], nil
}

func (c *versionedCache) SetCount(_ context.Context, key string, version, count int64) (bool, error) {
	if c.versions[key] != version {
		return false, nil
	}
	c.counts[key] = count
	return true, nil
}

func (c *versionedCache) Invalidate(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.counts, key)
		c.versions[key]++
	}
	return nil
}

// commitDuringCount returns the row count as it was when the query started,
// while a concurrent create commits and invalidates the cache.
type commitDuringCount struct {
	rows  int64
	cache *versionedCache
}

func (c *commitDuringCount) Count(ctx context.Context) (int64, error) {
	snapshot := c.rows
	c.rows++
	if err := c.cache.Invalidate(ctx, repositories.TodosCountKey); err != nil {
		return 0, err
	}
	return snapshot, nil
}

func TestStatsService_WriteDuringCountIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache := newVersionedCache()
	todos := &commitDuringCount{rows: 5, cache: cache}
	svc := services.NewStatsService(nil, todos, cache)

	n, err := svc.CountTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	_, err = cache.GetCount(ctx, repositories.TodosCountKey)
	assert.ErrorIs(t, err, repositories.ErrCacheMiss, "stale count must not outlive the invalidation")

	n, err = svc.CountTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}
