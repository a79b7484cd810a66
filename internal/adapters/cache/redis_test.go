package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/buildermatch/internal/domain/types"
)

func newTestCache(t *testing.T, opts ...Option) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func sampleResults() []types.MatchResult {
	return []types.MatchResult{
		{SubjectID: "p1", TotalScore: 85, Breakdown: types.MatchBreakdown{SkillCompatibility: 100, GoalAlignment: 73, ReputationCompatibility: 100, ActivityScore: 80, DiversityScore: 50}},
		{SubjectID: "p2", TotalScore: 60},
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "match:projects:u1:10", ProjectsKey("u1", 10))
	assert.Equal(t, "match:members:p1:5", MembersKey("p1", 5))
	assert.Equal(t, "match:projects:u1:", UserProjectsPrefix("u1"))
	assert.Equal(t, `a\*b\?c\[d\]\\`, escapeGlob(`a*b?c[d]\`))
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	got, ok, err := c.Get(ctx, ProjectsKey("u1", 10))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, ProjectsKey("u1", 10), sampleResults()))

	got, ok, err = c.Get(ctx, ProjectsKey("u1", 10))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleResults(), got)
}

func TestRedisCache_EmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, MembersKey("p1", 10), nil))

	got, ok, err := c.Get(ctx, MembersKey("p1", 10))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, WithTTL(time.Minute))

	require.NoError(t, c.Set(ctx, "k", sampleResults()))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, WithScanCount(2))

	for _, key := range []string{
		ProjectsKey("u1", 5), ProjectsKey("u1", 10), ProjectsKey("u10", 10),
		MembersKey("p1", 10), MembersKey("p2", 3),
	} {
		require.NoError(t, c.Set(ctx, key, sampleResults()))
	}

	removed, err := c.DeletePrefix(ctx, UserProjectsPrefix("u1"))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.True(t, mr.Exists(ProjectsKey("u10", 10)))

	removed, err = c.DeletePrefix(ctx, MembersPrefix)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{ProjectsKey("u10", 10)}, mr.Keys())

	removed, err = c.DeletePrefix(ctx, MembersPrefix)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRedisCache_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt entry", func(t *testing.T) {
		c, mr := newTestCache(t)
		require.NoError(t, mr.Set("bad", "{not json"))

		_, ok, err := c.Get(ctx, "bad")
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrCorrupt))
	})

	t.Run("server error", func(t *testing.T) {
		c, mr := newTestCache(t)
		require.NoError(t, c.Set(ctx, "warm", sampleResults()))
		mr.SetError("ERR injected failure")

		_, _, err := c.Get(ctx, "k")
		assert.True(t, errors.Is(err, ErrUnavailable))
		assert.True(t, errors.Is(c.Set(ctx, "k", sampleResults()), ErrUnavailable))
		_, err = c.DeletePrefix(ctx, MembersPrefix)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}

func TestNewRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	addr := mr.Addr()
	c, err := NewRedis(ctx, RedisConfig{Addr: addr})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	mr.Close()
	_, err = NewRedis(ctx, RedisConfig{Addr: addr})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c ResultCache = Noop{}

	require.NoError(t, c.Set(ctx, "k", sampleResults()))
	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	n, err := c.DeletePrefix(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Close())
}
