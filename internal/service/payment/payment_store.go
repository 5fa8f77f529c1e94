package payment

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/storage"
	"go.uber.org/zap"
)

var ErrEmptyPaymentMethod = errors.New("payment method is required")

type PaymentUseCase interface {
	Select(ctx context.Context, method string) error
	Selected() (string, bool)
	Clear(ctx context.Context)
}

// Store remembers the chosen payment method as a plain string under
// storage.KeyPaymentMethod.
type Store struct {
	mu       sync.Mutex
	selected string

	kv  storage.KeyValue
	log *zap.Logger
}

func NewStore(ctx context.Context, kv storage.KeyValue, log *zap.Logger) *Store {
	s := &Store{kv: kv, log: logger.OrNop(log)}

	method, err := kv.Get(ctx, storage.KeyPaymentMethod)
	switch {
	case err == nil:
		s.selected = method
	case !errors.Is(err, storage.ErrNotFound):
		s.log.Error("load payment method from storage", zap.Error(err))
	}
	return s
}

// Select normalizes method to lower case. Any non-empty identifier is accepted.
func (s *Store) Select(ctx context.Context, method string) error {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		return ErrEmptyPaymentMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = method
	if err := s.kv.Set(ctx, storage.KeyPaymentMethod, method); err != nil {
		s.log.Error("save payment method to storage", zap.Error(err))
	}
	return nil
}

func (s *Store) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.selected != ""
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = ""
	if err := s.kv.Remove(ctx, storage.KeyPaymentMethod); err != nil {
		s.log.Error("remove payment method from storage", zap.Error(err))
	}
}

var _ PaymentUseCase = (*Store)(nil)
