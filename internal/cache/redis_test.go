package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, time.Minute), mr
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	cars, err := cache.GetCars(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, cars)
}

func TestRedisCache_SetGetExpire(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()
	cars := []domain.Car{{ID: "kia-rio", Brand: "Kia", Model: "Rio", PricePerDay: 30}}

	require.NoError(t, cache.SetCars(ctx, cars))
	assert.Equal(t, time.Minute, mr.TTL(carsKey()))

	got, err := cache.GetCars(ctx)
	require.NoError(t, err)
	assert.Equal(t, cars, got)

	mr.FastForward(2 * time.Minute)
	got, err = cache.GetCars(ctx)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(carsKey(), "{broken"))

	_, err := cache.GetCars(context.Background())
	assert.Error(t, err)
}
