package kafka

import "time"

// NotificationEvent is a local notification on its way to the device.
type NotificationEvent struct {
	Identifier string         `json:"identifier"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
	SentAt     time.Time      `json:"sent_at"`
}

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	CarID         string    `json:"car_id"`
	CarBrand      string    `json:"car_brand"`
	CarModel      string    `json:"car_model"`
	RentalDays    int       `json:"rental_days"`
	TotalPrice    float64   `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}
