package region

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrProvinceNotFound = errors.New("province not found")
	ErrCityNotFound     = errors.New("city not found")
)

type Province struct {
	ID   int    `json:"proID"`
	Name string `json:"proName"`
}

type City struct {
	ID         int    `json:"cityID"`
	Name       string `json:"cityName"`
	ProvinceID int    `json:"proID"`
}

type Repository interface {
	provinceIDByName(ctx context.Context, name string) (int, error)
	provinceExists(ctx context.Context, provinceID int) (bool, error)
	cityIDByName(ctx context.Context, cityName string, provinceID int) (int, error)
	cityNamesByProvince(ctx context.Context, provinceID int) ([]string, error)
	provinces(ctx context.Context) ([]Province, error)
}

type regionRepository struct {
	db *sql.DB
}

func NewRegionRepository(db *sql.DB) Repository {
	return &regionRepository{db: db}
}

func (r *regionRepository) provinceIDByName(ctx context.Context, name string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, "SELECT id FROM provinces WHERE name = $1", name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProvinceNotFound
		}
		return 0, fmt.Errorf("could not find province: %w", err)
	}
	return id, nil
}

func (r *regionRepository) provinceExists(ctx context.Context, provinceID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM provinces WHERE id = $1)", provinceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check province: %w", err)
	}
	return exists, nil
}

func (r *regionRepository) cityIDByName(ctx context.Context, cityName string, provinceID int) (int, error) {
	var id int
	query := "SELECT id FROM cities WHERE name = $1 AND province_id = $2"
	err := r.db.QueryRowContext(ctx, query, cityName, provinceID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCityNotFound
		}
		return 0, fmt.Errorf("could not find city: %w", err)
	}
	return id, nil
}

func (r *regionRepository) cityNamesByProvince(ctx context.Context, provinceID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM cities WHERE province_id = $1 ORDER BY id", provinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *regionRepository) provinces(ctx context.Context) ([]Province, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM provinces ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var provinces []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		provinces = append(provinces, p)
	}
	return provinces, rows.Err()
}
