package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/config"
	"userhub/internal/logging"
)

func newTestCache(t *testing.T) (UserCache, *miniredis.Miniredis, *RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)

	rc, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = rc.Close()
	})

	return NewUserCache(rc), mr, rc
}

func TestUserCache_SetGetDelete(t *testing.T) {
	c, mr, rc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Ping(ctx))

	data, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, data, "miss should be nil, nil")

	require.NoError(t, c.Set(ctx, 1, []byte(`{"id":1}`), time.Minute))
	assert.True(t, mr.Exists("user:1"))

	data, err = c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(data))

	require.NoError(t, c.Delete(ctx, 1))
	assert.False(t, mr.Exists("user:1"))
}

func TestUserCache_TTLExpires(t *testing.T) {
	c, mr, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 2, []byte(`{}`), time.Minute))
	mr.FastForward(2 * time.Minute)

	data, err := c.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr}, logging.NewNop())
	require.Error(t, err)
}

func TestNoopUserCache(t *testing.T) {
	var c UserCache = NoopUserCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 1, []byte("x"), time.Second))
	data, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, data)
	require.NoError(t, c.Delete(ctx, 1))
}
