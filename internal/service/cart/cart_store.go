package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/metrics"
	"github.com/Domenick1991/carrental/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartUseCase interface {
	AddItem(ctx context.Context, car domain.Car) domain.CartLineItem
	RemoveItem(ctx context.Context, id string)
	RemoveItems(ctx context.Context, ids ...string)
	UpdateQuantity(ctx context.Context, id string, quantity int)
	ToggleSelect(ctx context.Context, id string)
	SetDefaultSelected(selected bool)
	ClearCart(ctx context.Context)
	Items() []domain.CartLineItem
	SelectedItems() []domain.CartLineItem
	TotalItems() int
	TotalQuantity() int
	TotalPrice() float64
	Summary() Summary
}

// Summary is the cart and its totals read under one lock.
type Summary struct {
	Items         []domain.CartLineItem `json:"items"`
	TotalItems    int                   `json:"totalItems"`
	TotalQuantity int                   `json:"totalQuantity"`
	TotalPrice    float64               `json:"totalPrice"`
}

// Store holds the cart line items. The in-memory list is authoritative; after
// each mutation the full list is handed to a storage.Mirror, which writes it
// under storage.KeyCartItems in the background. A slow or failed write never
// blocks or undoes a mutation.
type Store struct {
	mu              sync.Mutex
	items           []domain.CartLineItem
	defaultSelected bool

	kv         storage.KeyValue
	mirror     *storage.Mirror
	ownsMirror bool
	log        *zap.Logger
	newID      func() string
}

type StoreOption func(*Store)

func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		s.newID = gen
	}
}

func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore hydrates the cart from kv once. An absent, unreadable or malformed
// snapshot gives an empty cart. A kv that is not already a *storage.Mirror is
// wrapped in one owned by the store; release it with Close.
func NewStore(ctx context.Context, kv storage.KeyValue, opts ...StoreOption) *Store {
	s := &Store{
		kv:    kv,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrNop(s.log)
	s.items = s.load(ctx)

	if m, ok := kv.(*storage.Mirror); ok {
		s.mirror = m
	} else {
		s.mirror = storage.NewMirror(kv, s.log)
		s.ownsMirror = true
	}
	return s
}

// Flush waits until every snapshot written so far reached the backend.
func (s *Store) Flush(ctx context.Context) error {
	return s.mirror.Flush(ctx)
}

// Close flushes and stops the store's own mirror. A shared mirror is left to
// its owner.
func (s *Store) Close(ctx context.Context) error {
	if !s.ownsMirror {
		return s.mirror.Flush(ctx)
	}
	return s.mirror.Close(ctx)
}

func (s *Store) load(ctx context.Context) []domain.CartLineItem {
	raw, err := s.kv.Get(ctx, storage.KeyCartItems)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("load cart from storage", zap.Error(err))
		}
		return nil
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("stored cart is malformed, starting empty", zap.Error(err))
		return nil
	}
	return items
}

// AddItem increments the quantity of the line item for car.ID, or appends a
// new one with quantity 1.
func (s *Store) AddItem(ctx context.Context, car domain.Car) domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added domain.CartLineItem
	if i := s.indexByCar(car.ID); i >= 0 {
		s.items[i].Quantity++
		added = s.items[i]
	} else {
		added = domain.CartLineItem{
			ID:         s.newID(),
			Car:        car,
			Quantity:   1,
			IsSelected: s.defaultSelected,
		}
		s.items = append(s.items, added)
	}
	s.persist(ctx, "add")
	return added
}

func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.RemoveItems(ctx, id)
}

// RemoveItems drops every line item whose id is listed; unknown ids are
// ignored. One snapshot is written.
func (s *Store) RemoveItems(ctx context.Context, ids ...string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.CartLineItem, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := drop[item.ID]; !ok {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx, "remove")
}

// UpdateQuantity ignores quantities below 1.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByID(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
	s.persist(ctx, "update_quantity")
}

func (s *Store) ToggleSelect(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexByID(id); i >= 0 {
		s.items[i].IsSelected = !s.items[i].IsSelected
	}
	s.persist(ctx, "toggle_select")
}

// SetDefaultSelected sets the selection flag newly added items start with.
func (s *Store) SetDefaultSelected(selected bool) {
	s.mu.Lock()
	s.defaultSelected = selected
	s.mu.Unlock()
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx, "clear")
}

func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLineItem{}, s.items...)
}

func (s *Store) SelectedItems() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make([]domain.CartLineItem, 0, len(s.items))
	for _, item := range s.items {
		if item.IsSelected {
			selected = append(selected, item)
		}
	}
	return selected
}

// TotalItems is the number of line items.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// TotalQuantity sums quantities over all line items.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SumPrice(s.items)
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		Items:      append([]domain.CartLineItem{}, s.items...),
		TotalItems: len(s.items),
		TotalPrice: SumPrice(s.items),
	}
	for _, item := range s.items {
		summary.TotalQuantity += item.Quantity
	}
	return summary
}

// SumPrice is quantity times price per day, summed.
func SumPrice(items []domain.CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price()
	}
	return total
}

func (s *Store) indexByID(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) indexByCar(carID string) int {
	for i := range s.items {
		if s.items[i].Car.ID == carID {
			return i
		}
	}
	return -1
}

// persist schedules the whole list on the mirror. Callers hold s.mu so
// snapshots are scheduled in mutation order; the mirror never blocks on the
// backend.
func (s *Store) persist(ctx context.Context, op string) {
	metrics.CartMutations.WithLabelValues(op).Inc()

	items := s.items
	if items == nil {
		items = []domain.CartLineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		s.log.Error("encode cart snapshot", zap.Error(err))
		return
	}
	if err := s.mirror.Set(ctx, storage.KeyCartItems, string(payload)); err != nil {
		metrics.StorageWriteFailures.WithLabelValues(storage.KeyCartItems).Inc()
		s.log.Error("save cart to storage", zap.String("op", op), zap.Error(err))
	}
}

var _ CartUseCase = (*Store)(nil)
