// Package region resolves the pre-seeded province and city reference tables.
package region

import (
	"context"
	"errors"
)

// NotFoundID is returned by the id lookups when no row matches.
const NotFoundID = -1

var ErrInvalidProvinceID = errors.New("province id must be greater than zero")

type Service interface {
	ProvinceIDByName(ctx context.Context, name string) (int, error)
	ProvinceExists(ctx context.Context, provinceID int) (bool, error)
	CityIDByName(ctx context.Context, cityName string, provinceID int) (int, error)
	CityNamesByProvince(ctx context.Context, provinceID int) ([]string, error)
	Provinces(ctx context.Context) ([]Province, error)
}

type service struct {
	repo Repository
}

func NewRegionService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ProvinceIDByName(ctx context.Context, name string) (int, error) {
	id, err := s.repo.provinceIDByName(ctx, name)
	if errors.Is(err, ErrProvinceNotFound) {
		return NotFoundID, nil
	}
	if err != nil {
		return NotFoundID, err
	}
	return id, nil
}

func (s *service) ProvinceExists(ctx context.Context, provinceID int) (bool, error) {
	if provinceID <= 0 {
		return false, nil
	}
	return s.repo.provinceExists(ctx, provinceID)
}

func (s *service) CityIDByName(ctx context.Context, cityName string, provinceID int) (int, error) {
	if provinceID <= 0 {
		return NotFoundID, ErrInvalidProvinceID
	}
	id, err := s.repo.cityIDByName(ctx, cityName, provinceID)
	if errors.Is(err, ErrCityNotFound) {
		return NotFoundID, nil
	}
	if err != nil {
		return NotFoundID, err
	}
	return id, nil
}

func (s *service) CityNamesByProvince(ctx context.Context, provinceID int) ([]string, error) {
	if provinceID <= 0 {
		return nil, ErrInvalidProvinceID
	}
	return s.repo.cityNamesByProvince(ctx, provinceID)
}

func (s *service) Provinces(ctx context.Context) ([]Province, error) {
	return s.repo.provinces(ctx)
}
