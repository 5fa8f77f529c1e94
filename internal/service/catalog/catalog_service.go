package catalog

import (
	"context"
	"strings"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/repository"
	"go.uber.org/zap"
)

type CatalogUseCase interface {
	List(ctx context.Context, category domain.CarCategory) ([]domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
}

type CarCache interface {
	GetCars(ctx context.Context) ([]domain.Car, error)
	SetCars(ctx context.Context, cars []domain.Car) error
}

type CatalogService struct {
	repo  repository.CarRepository
	cache CarCache
	log   *zap.Logger
}

// NewCatalogService accepts a nil cache and a nil logger.
func NewCatalogService(repo repository.CarRepository, cache CarCache, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, log: logger.OrNop(log)}
}

// List returns every car, or only cars of category. Empty and ALL mean no
// filter.
func (s *CatalogService) List(ctx context.Context, category domain.CarCategory) ([]domain.Car, error) {
	cars, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	category = domain.CarCategory(strings.ToUpper(string(category)))
	if category == "" || category == domain.CarCategoryAll {
		return cars, nil
	}
	filtered := make([]domain.Car, 0, len(cars))
	for _, c := range cars {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) all(ctx context.Context) ([]domain.Car, error) {
	if s.cache != nil {
		cached, err := s.cache.GetCars(ctx)
		if err != nil {
			s.log.Warn("read cars cache", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	cars, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCars(ctx, cars); err != nil {
			s.log.Warn("write cars cache", zap.Error(err))
		}
	}
	return cars, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
