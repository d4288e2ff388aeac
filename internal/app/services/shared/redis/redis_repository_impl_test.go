package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) (*redisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return newRedisRepository(client), mr
}

type payload struct {
	PatientID string  `json:"patient_id"`
	Weight    float64 `json:"weight"`
}

func TestRedisRepository_SetAndGetJSON(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	err := repo.Set(ctx, "kiosk:test", payload{PatientID: "P-001", Weight: 70.5}, time.Minute)
	require.NoError(t, err)

	var got payload
	found, err := repo.GetJSON(ctx, "kiosk:test", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "P-001", got.PatientID)
	assert.Equal(t, 70.5, got.Weight)

	assert.Equal(t, time.Minute, mr.TTL("kiosk:test"))
}

func TestRedisRepository_GetMissingKey(t *testing.T) {
	repo, _ := setupRepository(t)
	ctx := context.Background()

	data, err := repo.Get(ctx, "kiosk:missing")
	require.NoError(t, err)
	assert.Empty(t, data)

	var got payload
	found, err := repo.GetJSON(ctx, "kiosk:missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisRepository_IncrementAndDelete(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	first, err := repo.Increment(ctx, "kiosk:counter")
	require.NoError(t, err)
	second, err := repo.Increment(ctx, "kiosk:counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	require.NoError(t, repo.Expire(ctx, "kiosk:counter", 30*time.Second))
	assert.Equal(t, 30*time.Second, mr.TTL("kiosk:counter"))

	require.NoError(t, repo.Delete(ctx, "kiosk:counter"))
	assert.False(t, mr.Exists("kiosk:counter"))
}

func TestRedisRepository_ConnectionFailure(t *testing.T) {
	repo, mr := setupRepository(t)
	mr.Close()

	_, err := repo.Get(context.Background(), "kiosk:test")
	assert.Error(t, err)
}

func TestRedisRepository_TrySetNX(t *testing.T) {
	repo, mr := setupRepository(t)
	ctx := context.Background()

	acquired, err := repo.TrySetNX(ctx, "kiosk:lock", "owner-1", 20*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TrySetNX(ctx, "kiosk:lock", "owner-2", 20*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired)

	stored, err := mr.Get("kiosk:lock")
	require.NoError(t, err)
	assert.Equal(t, `"owner-1"`, stored)
}
