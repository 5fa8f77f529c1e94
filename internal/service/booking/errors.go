package booking

import "errors"

var (
	ErrNothingSelected = errors.New("no cart items are selected")
	ErrNoPaymentMethod = errors.New("payment method is not selected")
	ErrCardRequired    = errors.New("credit card details are required for card payments")
)
