package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCarNotFound = errors.New("car not found")

type CarRepository interface {
	List(ctx context.Context) ([]domain.Car, error)
	GetByID(ctx context.Context, id string) (*domain.Car, error)
}

type PGCarRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) CarRepository {
	return &PGCarRepository{db: db}
}

func (r *PGCarRepository) List(ctx context.Context) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT id, brand, model, category, price_per_day, image FROM cars ORDER BY brand, model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]domain.Car, 0)
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.Category, &c.PricePerDay, &c.Image); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *PGCarRepository) GetByID(ctx context.Context, id string) (*domain.Car, error) {
	row := r.db.QueryRow(ctx, `SELECT id, brand, model, category, price_per_day, image FROM cars WHERE id=$1`, id)
	var c domain.Car
	if err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.Category, &c.PricePerDay, &c.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &c, nil
}

var _ CarRepository = (*PGCarRepository)(nil)
