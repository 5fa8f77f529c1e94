package repository

import (
	"context"

	"github.com/Domenick1991/carrental/internal/domain"
)

// MemoryCarRepository serves a fixed catalog.
type MemoryCarRepository struct {
	cars []domain.Car
}

func NewMemoryCarRepository(cars []domain.Car) *MemoryCarRepository {
	return &MemoryCarRepository{cars: append([]domain.Car(nil), cars...)}
}

func (r *MemoryCarRepository) List(_ context.Context) ([]domain.Car, error) {
	return append([]domain.Car{}, r.cars...), nil
}

func (r *MemoryCarRepository) GetByID(_ context.Context, id string) (*domain.Car, error) {
	for _, c := range r.cars {
		if c.ID == id {
			car := c
			return &car, nil
		}
	}
	return nil, ErrCarNotFound
}

// SeedCars is the catalog used when no database is configured.
func SeedCars() []domain.Car {
	return []domain.Car{
		{ID: "tesla-model-3", Brand: "Tesla", Model: "Model 3", Category: domain.CarCategoryElectric, PricePerDay: 89, Image: "/images/tesla-model-3.png"},
		{ID: "toyota-camry", Brand: "Toyota", Model: "Camry", Category: domain.CarCategorySedan, PricePerDay: 50, Image: "/images/toyota-camry.png"},
		{ID: "bmw-x5", Brand: "BMW", Model: "X5", Category: domain.CarCategorySUV, PricePerDay: 120, Image: "/images/bmw-x5.png"},
		{ID: "porsche-911", Brand: "Porsche", Model: "911", Category: domain.CarCategorySport, PricePerDay: 250, Image: "/images/porsche-911.png"},
		{ID: "kia-rio", Brand: "Kia", Model: "Rio", Category: domain.CarCategorySedan, PricePerDay: 30, Image: "/images/kia-rio.png"},
	}
}

var _ CarRepository = (*MemoryCarRepository)(nil)
