package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis-backed store for testing
func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisFromClient(client, zaptest.NewLogger(t)), mr
}

func TestRedis_SetGet(t *testing.T) {
	s, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user-profiles-dev-mode", "true"))

	got, err := s.Get(ctx, "user-profiles-dev-mode")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
}

func TestRedis_Get_MissingKey(t *testing.T) {
	s, _ := setupTestRedis(t)

	_, err := s.Get(context.Background(), "never-set")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedis_Delete(t *testing.T) {
	s, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestRedis_ServerGone(t *testing.T) {
	s, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v"))
	mr.Close()

	_, err := s.Get(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
