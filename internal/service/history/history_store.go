package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/metrics"
	"github.com/Domenick1991/carrental/internal/storage"
	"go.uber.org/zap"
)

// Limit is the number of records history keeps.
const Limit = 10

type HistoryUseCase interface {
	Record(ctx context.Context, record domain.NotificationRecord) error
	List(ctx context.Context) []domain.NotificationRecord
	Clear(ctx context.Context)
}

// Store keeps the most recent notifications, newest first, as one JSON array
// under storage.KeyNotificationHistory.
type Store struct {
	mu  sync.Mutex
	kv  storage.KeyValue
	log *zap.Logger
	now func() time.Time
}

func NewStore(kv storage.KeyValue, log *zap.Logger) *Store {
	return &Store{kv: kv, log: logger.OrNop(log), now: time.Now}
}

// Record prepends record with a fresh ReceivedAt and keeps the newest Limit
// entries. Storage errors are returned.
func (s *Store) Record(ctx context.Context, record domain.NotificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return fmt.Errorf("read notification history: %w", err)
	}

	record.ReceivedAt = s.now().UTC()
	history := make([]domain.NotificationRecord, 0, len(current)+1)
	history = append(history, record)
	history = append(history, current...)
	if len(history) > Limit {
		history = history[:Limit]
	}

	payload, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode notification history: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyNotificationHistory, string(payload)); err != nil {
		metrics.StorageWriteFailures.WithLabelValues(storage.KeyNotificationHistory).Inc()
		return fmt.Errorf("save notification history: %w", err)
	}
	metrics.NotificationsRecorded.Inc()
	return nil
}

// List never fails: unreadable or malformed history reads as empty.
func (s *Store) List(ctx context.Context) []domain.NotificationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read(ctx)
	if err != nil {
		s.log.Error("get notification history", zap.Error(err))
		return []domain.NotificationRecord{}
	}
	return history
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, storage.KeyNotificationHistory); err != nil {
		s.log.Error("clear notification history", zap.Error(err))
	}
}

// read returns an error only when the backend fails. A missing or malformed
// value is an empty history.
func (s *Store) read(ctx context.Context) ([]domain.NotificationRecord, error) {
	raw, err := s.kv.Get(ctx, storage.KeyNotificationHistory)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []domain.NotificationRecord{}, nil
		}
		return nil, err
	}

	var history []domain.NotificationRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		s.log.Warn("stored notification history is malformed", zap.Error(err))
		return []domain.NotificationRecord{}, nil
	}
	if history == nil {
		history = []domain.NotificationRecord{}
	}
	return history, nil
}

var _ HistoryUseCase = (*Store)(nil)
