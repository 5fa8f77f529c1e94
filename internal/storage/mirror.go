package storage

import (
	"context"
	"sync"

	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/metrics"
	"go.uber.org/zap"
)

type pendingOp struct {
	value  string
	remove bool
}

// Mirror makes writes to a backend asynchronous. Set and Remove record the
// latest operation per key and return at once; a single goroutine applies
// them in the background, so writes to one key never overlap and an
// overwritten snapshot that was not yet written is skipped. Write failures
// are logged and counted, never retried.
type Mirror struct {
	kv  KeyValue
	log *zap.Logger

	mu       sync.Mutex
	pending  map[string]pendingOp
	inflight map[string]pendingOp
	closed   bool

	wake  chan struct{}
	flush chan chan struct{}
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func NewMirror(kv KeyValue, log *zap.Logger) *Mirror {
	m := &Mirror{
		kv:      kv,
		log:     logger.OrNop(log),
		pending: make(map[string]pendingOp),
		wake:    make(chan struct{}, 1),
		flush:   make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.run()
	return m
}

// Get sees writes that are still pending.
func (m *Mirror) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	op, ok := m.pending[key]
	if !ok {
		op, ok = m.inflight[key]
	}
	m.mu.Unlock()

	if ok {
		if op.remove {
			return "", ErrNotFound
		}
		return op.value, nil
	}
	return m.kv.Get(ctx, key)
}

func (m *Mirror) Set(ctx context.Context, key, value string) error {
	return m.schedule(ctx, key, pendingOp{value: value})
}

func (m *Mirror) Remove(ctx context.Context, key string) error {
	return m.schedule(ctx, key, pendingOp{remove: true})
}

// Flush blocks until every write scheduled before the call is applied.
func (m *Mirror) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case m.flush <- reply:
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close applies pending writes and stops the worker. Later writes wait for
// that final drain and then go straight to the backend.
func (m *Mirror) Close(ctx context.Context) error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.stop)
	})
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mirror) schedule(ctx context.Context, key string, op pendingOp) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		// writes scheduled before Close must land first
		select {
		case <-m.done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if op.remove {
			return m.kv.Remove(ctx, key)
		}
		return m.kv.Set(ctx, key, op.value)
	}
	m.pending[key] = op
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return nil
}

func (m *Mirror) run() {
	defer close(m.done)
	for {
		select {
		case <-m.wake:
			m.drain()
		case reply := <-m.flush:
			m.drain()
			close(reply)
		case <-m.stop:
			m.drain()
			return
		}
	}
}

func (m *Mirror) drain() {
	for {
		m.mu.Lock()
		m.inflight = nil
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		batch := m.pending
		m.inflight = batch
		m.pending = make(map[string]pendingOp)
		m.mu.Unlock()

		for key, op := range batch {
			m.apply(key, op)
		}
	}
}

func (m *Mirror) apply(key string, op pendingOp) {
	ctx := context.Background()
	var err error
	if op.remove {
		err = m.kv.Remove(ctx, key)
	} else {
		err = m.kv.Set(ctx, key, op.value)
	}
	if err != nil {
		metrics.StorageWriteFailures.WithLabelValues(key).Inc()
		m.log.Error("mirror write failed", zap.String("key", key), zap.Bool("remove", op.remove), zap.Error(err))
	}
}

var _ KeyValue = (*Mirror)(nil)
