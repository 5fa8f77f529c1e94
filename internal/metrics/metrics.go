package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"op"},
	)

	StorageWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_write_failures_total",
			Help: "Total number of failed key-value writes by key",
		},
		[]string{"key"},
	)

	NotificationsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_history_records_total",
			Help: "Total number of notifications recorded into history",
		},
	)

	BookingsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Total number of booked cars",
		},
	)

	NotificationsDelivered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_delivered_total",
			Help: "Total number of notifications delivered by the worker",
		},
	)
)
