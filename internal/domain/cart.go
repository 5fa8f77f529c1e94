package domain

// CartLineItem is one car in the cart. Quantity is the number of rental days.
type CartLineItem struct {
	ID         string `json:"id"`
	Car        Car    `json:"car"`
	Quantity   int    `json:"quantity"`
	IsSelected bool   `json:"isSelected"`
}

func (i CartLineItem) Price() float64 {
	return i.Car.PricePerDay * float64(i.Quantity)
}
