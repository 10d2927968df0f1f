package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"team-project-api/internal/repository"
	"team-project-api/internal/repository/mocks"
	"team-project-api/internal/service"
)

type systemMocks struct {
	cache    *mocks.StatsCache
	users    *mocks.UserRepository
	posts    *mocks.PostRepository
	comments *mocks.CommentRepository
}

func newSystemService(t *testing.T, withCache bool) (*service.SystemService, systemMocks) {
	m := systemMocks{
		users:    mocks.NewUserRepository(t),
		posts:    mocks.NewPostRepository(t),
		comments: mocks.NewCommentRepository(t),
	}
	var cache repository.StatsCache
	if withCache {
		m.cache = mocks.NewStatsCache(t)
		cache = m.cache
	}
	svc := service.NewSystemService(time.Now().Add(-time.Minute), cache, passthroughTx(t), m.users, m.posts, m.comments)
	return svc, m
}

func TestSystemService_Uptime(t *testing.T) {
	svc, _ := newSystemService(t, false)
	assert.GreaterOrEqual(t, svc.Uptime(), time.Minute)
}

func TestSystemService_RefreshEntityCounts(t *testing.T) {
	svc, m := newSystemService(t, true)
	m.users.On("Count", mock.Anything).Return(int64(2), nil).Once()
	m.posts.On("Count", mock.Anything).Return(int64(3), nil).Once()
	m.comments.On("Count", mock.Anything).Return(int64(4), nil).Once()
	m.cache.On("SetEntityCounts", mock.Anything, mock.MatchedBy(func(c repository.EntityCounts) bool {
		return c.Users == 2 && c.Posts == 3 && c.Comments == 4 && !c.RefreshedAt.IsZero()
	}), service.StatsTTL).Return(nil).Once()

	counts, err := svc.RefreshEntityCounts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Comments)
}

func TestSystemService_RefreshEntityCounts_StoreDown(t *testing.T) {
	svc, m := newSystemService(t, true)
	m.users.On("Count", mock.Anything).Return(int64(0), repository.ErrStoreUnavailable).Once()

	_, err := svc.RefreshEntityCounts(context.Background())

	assert.ErrorIs(t, err, service.ErrServiceUnavailable)
	m.cache.AssertNotCalled(t, "SetEntityCounts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSystemService_EntityCounts(t *testing.T) {
	svc, m := newSystemService(t, true)
	cached := &repository.EntityCounts{Users: 1}
	m.cache.On("GetEntityCounts", mock.Anything).Return(cached, nil).Once()
	m.cache.On("GetEntityCounts", mock.Anything).Return(nil, repository.ErrNotFound).Once()
	m.cache.On("GetEntityCounts", mock.Anything).Return(nil, errors.New("redis down")).Once()

	counts, ok := svc.EntityCounts(context.Background())
	assert.True(t, ok)
	assert.Equal(t, cached, counts)

	_, ok = svc.EntityCounts(context.Background())
	assert.False(t, ok, "缓存未命中")

	_, ok = svc.EntityCounts(context.Background())
	assert.False(t, ok, "缓存出错时降级为未知")
}

func TestSystemService_EntityCounts_NoCache(t *testing.T) {
	svc, _ := newSystemService(t, false)
	_, ok := svc.EntityCounts(context.Background())
	assert.False(t, ok)
}
