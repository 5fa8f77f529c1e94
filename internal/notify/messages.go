package notify

import (
	"fmt"
	"time"

	"github.com/Domenick1991/carrental/internal/domain"
)

type BookingDetails struct {
	BookingID  string
	CarBrand   string
	CarModel   string
	RentalDays int
	TotalPrice float64
}

// BookingConfirmed builds the title, body and payload of the confirmation
// sent for one booked car.
func BookingConfirmed(d BookingDetails, now time.Time) (title, body string, data map[string]any) {
	title = fmt.Sprintf("Booking Confirmed: %s %s 🥳", d.CarBrand, d.CarModel)
	body = fmt.Sprintf("Your %d day rental has been confirmed. Total: $%.2f", d.RentalDays, d.TotalPrice)
	data = map[string]any{
		"type":       domain.NotificationTypeBookingConfirmed,
		"bookingId":  d.BookingID,
		"carBrand":   d.CarBrand,
		"carModel":   d.CarModel,
		"totalPrice": d.TotalPrice,
		"rentalDays": d.RentalDays,
		"timestamp":  now.UTC().Format(time.RFC3339),
	}
	return title, body, data
}
