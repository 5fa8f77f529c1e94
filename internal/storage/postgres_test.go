package storage

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewPGStore(t *testing.T) {
	pool := &pgxpool.Pool{}
	store := NewPGStore(pool, "app:")
	assert.NotNil(t, store)
	assert.Equal(t, "app:", store.prefix)
}
