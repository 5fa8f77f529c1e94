package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCarRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCarRepository(SeedCars())

	cars, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, len(SeedCars()))

	car, err := repo.GetByID(ctx, "kia-rio")
	require.NoError(t, err)
	assert.Equal(t, 30.0, car.PricePerDay)

	_, err = repo.GetByID(ctx, "lada")
	assert.ErrorIs(t, err, ErrCarNotFound)
}
