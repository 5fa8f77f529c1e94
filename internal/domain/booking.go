package domain

import "time"

// Quote is the price breakdown of the selected cart items.
type Quote struct {
	Items      []CartLineItem `json:"items"`
	Subtotal   float64        `json:"subtotal"`
	DriversFee float64        `json:"driversFee"`
	GrandTotal float64        `json:"grandTotal"`
}

type BookedCar struct {
	BookingID      string  `json:"bookingId"`
	LineItemID     string  `json:"lineItemId"`
	Car            Car     `json:"car"`
	RentalDays     int     `json:"rentalDays"`
	TotalPrice     float64 `json:"totalPrice"`
	NotificationID string  `json:"notificationId,omitempty"`
}

type Booking struct {
	Cars          []BookedCar `json:"cars"`
	PaymentMethod string      `json:"paymentMethod"`
	Quote         Quote       `json:"quote"`
	ConfirmedAt   time.Time   `json:"confirmedAt"`
}
