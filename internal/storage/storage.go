package storage

import (
	"context"
	"errors"
)

// Keys used by the stores.
const (
	KeyCartItems           = "cart_items"
	KeyNotificationHistory = "notification_history"
	KeyPaymentMethod       = "payment_method"
	KeyDriverLicense       = "driver_license"
)

var ErrNotFound = errors.New("key not found")

// KeyValue is a string key-value backend. Get returns ErrNotFound when the
// key is absent.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
