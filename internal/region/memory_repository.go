package region

import (
	"context"
	"sort"
)

// MemoryRepository serves fixed reference tables from memory.
type MemoryRepository struct {
	provinceList []Province
	cityList     []City
}

func NewMemoryRepository(provinces []Province, cities []City) *MemoryRepository {
	p := append([]Province(nil), provinces...)
	c := append([]City(nil), cities...)
	sort.Slice(p, func(i, j int) bool { return p[i].ID < p[j].ID })
	sort.Slice(c, func(i, j int) bool { return c[i].ID < c[j].ID })
	return &MemoryRepository{provinceList: p, cityList: c}
}

func (m *MemoryRepository) provinceIDByName(_ context.Context, name string) (int, error) {
	for _, p := range m.provinceList {
		if p.Name == name {
			return p.ID, nil
		}
	}
	return 0, ErrProvinceNotFound
}

func (m *MemoryRepository) provinceExists(_ context.Context, provinceID int) (bool, error) {
	for _, p := range m.provinceList {
		if p.ID == provinceID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepository) cityIDByName(_ context.Context, cityName string, provinceID int) (int, error) {
	for _, c := range m.cityList {
		if c.Name == cityName && c.ProvinceID == provinceID {
			return c.ID, nil
		}
	}
	return 0, ErrCityNotFound
}

func (m *MemoryRepository) cityNamesByProvince(_ context.Context, provinceID int) ([]string, error) {
	var names []string
	for _, c := range m.cityList {
		if c.ProvinceID == provinceID {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

func (m *MemoryRepository) provinces(_ context.Context) ([]Province, error) {
	return append([]Province(nil), m.provinceList...), nil
}
