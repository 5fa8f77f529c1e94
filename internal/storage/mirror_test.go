package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// gatedStore blocks its first Set until release is closed.
type gatedStore struct {
	*MemoryStore

	mu      sync.Mutex
	writes  []string
	entered chan struct{}
	release chan struct{}
	first   sync.Once
	failSet bool
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (s *gatedStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.writes = append(s.writes, value)
	s.mu.Unlock()

	s.first.Do(func() {
		close(s.entered)
		<-s.release
	})
	if s.failSet {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *gatedStore) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

func waitOrFail(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestMirror_CoalescesPendingWrites(t *testing.T) {
	ctx := context.Background()
	backend := newGatedStore()
	m := NewMirror(backend, zap.NewNop())
	defer m.Close(ctx)

	require.NoError(t, m.Set(ctx, KeyCartItems, "v1"))
	waitOrFail(t, backend.entered)

	require.NoError(t, m.Set(ctx, KeyCartItems, "v2"))
	require.NoError(t, m.Set(ctx, KeyCartItems, "v3"))

	v, err := m.Get(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.Equal(t, "v3", v)

	close(backend.release)
	require.NoError(t, m.Flush(ctx))

	assert.Equal(t, []string{"v1", "v3"}, backend.recorded())
	stored, err := backend.Get(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.Equal(t, "v3", stored)
}

func TestMirror_PendingRemoveHidesValue(t *testing.T) {
	ctx := context.Background()
	backend := newGatedStore()
	close(backend.release)
	require.NoError(t, backend.MemoryStore.Set(ctx, KeyPaymentMethod, "visa"))

	m := NewMirror(backend, nil)
	defer m.Close(ctx)

	require.NoError(t, m.Remove(ctx, KeyPaymentMethod))
	_, err := m.Get(ctx, KeyPaymentMethod)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Flush(ctx))
	_, err = backend.Get(ctx, KeyPaymentMethod)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMirror_WriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	backend := newGatedStore()
	backend.failSet = true
	close(backend.release)

	m := NewMirror(backend, nil)
	defer m.Close(ctx)

	assert.NoError(t, m.Set(ctx, KeyCartItems, "[]"))
	require.NoError(t, m.Flush(ctx))

	_, err := backend.Get(ctx, KeyCartItems)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMirror_CloseDrainsAndWritesThrough(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	m := NewMirror(backend, nil)

	require.NoError(t, m.Set(ctx, KeyCartItems, "a"))
	require.NoError(t, m.Close(ctx))

	v, err := backend.Get(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	require.NoError(t, m.Set(ctx, KeyCartItems, "b"))
	v, err = backend.Get(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	assert.NoError(t, m.Flush(ctx))
	assert.NoError(t, m.Close(ctx))
}

func TestMirror_WriteDuringCloseLandsLast(t *testing.T) {
	ctx := context.Background()
	backend := newGatedStore()
	m := NewMirror(backend, nil)

	require.NoError(t, m.Set(ctx, KeyCartItems, "v0"))
	waitOrFail(t, backend.entered)
	require.NoError(t, m.Set(ctx, KeyCartItems, "v1"))

	closeErr := make(chan error, 1)
	go func() { closeErr <- m.Close(ctx) }()
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.closed
	}, 2*time.Second, time.Millisecond)

	setErr := make(chan error, 1)
	go func() { setErr <- m.Set(ctx, KeyCartItems, "v2") }()

	close(backend.release)
	require.NoError(t, <-closeErr)
	require.NoError(t, <-setErr)

	assert.Equal(t, []string{"v0", "v1", "v2"}, backend.recorded())
	stored, err := backend.Get(ctx, KeyCartItems)
	require.NoError(t, err)
	assert.Equal(t, "v2", stored)
}

func TestMirror_WriteAfterCloseRespectsContext(t *testing.T) {
	backend := newGatedStore()
	m := NewMirror(backend, nil)

	require.NoError(t, m.Set(context.Background(), KeyCartItems, "v0"))
	waitOrFail(t, backend.entered)

	go func() { _ = m.Close(context.Background()) }()
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.closed
	}, 2*time.Second, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Set(ctx, KeyCartItems, "v1"), context.Canceled)

	close(backend.release)
	require.NoError(t, m.Close(context.Background()))
	assert.Equal(t, []string{"v0"}, backend.recorded())
}
