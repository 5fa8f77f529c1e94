package domain

import "time"

const NotificationTypeBookingConfirmed = "booking_confirmed"

// NotificationRecord is a sent local notification as kept in history.
// Data is loosely typed: a "type" tag plus kind-specific attributes.
type NotificationRecord struct {
	Identifier string         `json:"identifier"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
	ReceivedAt time.Time      `json:"receivedAt"`
}
