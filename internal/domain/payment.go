package domain

const (
	PaymentMethodVisa       = "visa"
	PaymentMethodMastercard = "mastercard"
	PaymentMethodPaypal     = "paypal"
)

// IsCardPayment reports whether the method needs a credit card form.
func IsCardPayment(method string) bool {
	return method == PaymentMethodVisa || method == PaymentMethodMastercard
}

// CreditCard is the card form submitted at checkout. ExpirationYear is two
// digits.
type CreditCard struct {
	CardNumber      string `json:"cardNumber" validate:"required,len=16,number"`
	ExpirationMonth string `json:"expirationMonth" validate:"required,number"`
	ExpirationYear  string `json:"expirationYear" validate:"required,number"`
	CCV             string `json:"ccv" validate:"required,len=3,number"`
}
