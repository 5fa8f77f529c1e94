package domain

// CarCategory groups cars in the catalog. CarCategoryAll matches every car.
type CarCategory string

const (
	CarCategoryAll      CarCategory = "ALL"
	CarCategorySedan    CarCategory = "SEDAN"
	CarCategorySUV      CarCategory = "SUV"
	CarCategorySport    CarCategory = "SPORT"
	CarCategoryElectric CarCategory = "ELECTRIC"
)

type Car struct {
	ID          string      `json:"id"`
	Brand       string      `json:"brand"`
	Model       string      `json:"model"`
	Category    CarCategory `json:"category,omitempty"`
	PricePerDay float64     `json:"pricePerDay"`
	Image       string      `json:"image,omitempty"`
}

// DisplayModel falls back to the brand when the model is empty.
func (c Car) DisplayModel() string {
	if c.Model == "" {
		return c.Brand
	}
	return c.Model
}
