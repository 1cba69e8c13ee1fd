package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unagency-contact/internal/storage"
)

var _ fiber.Storage = (*storage.RedisStorage)(nil)

func newStore(t *testing.T) (*storage.RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return storage.NewRedisStorage(client, "test:"), mr
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := storage.ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = storage.ConnectRedis(context.Background(), "")
	require.Error(t, err)

	_, err = storage.ConnectRedis(context.Background(), "://bad")
	require.Error(t, err)
}

func TestRedisStorageSetGetDelete(t *testing.T) {
	store, mr := newStore(t)

	value, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, store.Set("client", []byte("3"), time.Minute))
	value, err = store.Get("client")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), value)
	assert.True(t, mr.Exists("test:client"))

	require.NoError(t, store.Delete("client"))
	value, err = store.Get("client")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRedisStorageExpiry(t *testing.T) {
	store, mr := newStore(t)

	require.NoError(t, store.Set("client", []byte("1"), time.Second))
	mr.FastForward(2 * time.Second)

	value, err := store.Get("client")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestRedisStorageResetKeepsForeignKeys(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("other", "keep"))

	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))
	require.NoError(t, store.Reset())

	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("other"))
}
