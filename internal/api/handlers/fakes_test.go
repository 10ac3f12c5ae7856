package handlers

import (
	"context"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// 内存版仓库，测试专用

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.WithFields(apperrors.CodeInvalid, "user already exists",
				map[string]string{"username": "A user with that username already exists."})
		}
		if u.Email == user.Email {
			return apperrors.WithFields(apperrors.CodeInvalid, "user already exists",
				map[string]string{"email": "A user with that email already exists."})
		}
	}
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	clone := *u
	return &clone, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

type fakeBrandStore struct {
	nextID    int64
	brands    map[int64]*models.Brand
	carModels *fakeCarModelStore
}

func newFakeBrandStore() *fakeBrandStore {
	return &fakeBrandStore{brands: map[int64]*models.Brand{}}
}

func (s *fakeBrandStore) Create(_ context.Context, brand *models.Brand) error {
	s.nextID++
	brand.ID = s.nextID
	clone := *brand
	s.brands[brand.ID] = &clone
	return nil
}

func (s *fakeBrandStore) GetByID(_ context.Context, id int64) (*models.Brand, error) {
	b, ok := s.brands[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	clone := *b
	return &clone, nil
}

func (s *fakeBrandStore) List(_ context.Context) ([]*models.Brand, error) {
	result := []*models.Brand{}
	for id := int64(1); id <= s.nextID; id++ {
		if b, ok := s.brands[id]; ok {
			clone := *b
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *fakeBrandStore) Update(_ context.Context, brand *models.Brand) error {
	if _, ok := s.brands[brand.ID]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	clone := *brand
	s.brands[brand.ID] = &clone
	return nil
}

func (s *fakeBrandStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.brands[id]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	if s.carModels != nil {
		for _, m := range s.carModels.carModels {
			if m.BrandID == id {
				return apperrors.New(apperrors.CodeConflict, "brand has associated car models")
			}
		}
	}
	delete(s.brands, id)
	return nil
}

type fakeCarModelStore struct {
	nextID    int64
	carModels map[int64]*models.CarModel
	cars      *fakeCarStore
}

func newFakeCarModelStore() *fakeCarModelStore {
	return &fakeCarModelStore{carModels: map[int64]*models.CarModel{}}
}

func (s *fakeCarModelStore) Create(_ context.Context, model *models.CarModel) error {
	for _, m := range s.carModels {
		if m.BrandID == model.BrandID && m.Title == model.Title {
			return apperrors.New(apperrors.CodeConflict, "car model already exists for this brand")
		}
	}
	s.nextID++
	model.ID = s.nextID
	clone := *model
	s.carModels[model.ID] = &clone
	return nil
}

func (s *fakeCarModelStore) GetByID(_ context.Context, id int64) (*models.CarModel, error) {
	m, ok := s.carModels[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "car model not found")
	}
	clone := *m
	return &clone, nil
}

func (s *fakeCarModelStore) List(_ context.Context, brandID *int64) ([]*models.CarModel, error) {
	result := []*models.CarModel{}
	for id := int64(1); id <= s.nextID; id++ {
		m, ok := s.carModels[id]
		if !ok {
			continue
		}
		if brandID != nil && m.BrandID != *brandID {
			continue
		}
		clone := *m
		result = append(result, &clone)
	}
	return result, nil
}

func (s *fakeCarModelStore) Update(_ context.Context, model *models.CarModel) error {
	if _, ok := s.carModels[model.ID]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "car model not found")
	}
	clone := *model
	s.carModels[model.ID] = &clone
	return nil
}

func (s *fakeCarModelStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.carModels[id]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "car model not found")
	}
	if s.cars != nil {
		for _, c := range s.cars.cars {
			if c.ModelID == id {
				return apperrors.New(apperrors.CodeConflict, "car model has associated cars")
			}
		}
	}
	delete(s.carModels, id)
	return nil
}

type fakeCarStore struct {
	nextID   int64
	cars     map[int64]*models.Car
	brands   *fakeBrandStore
	models   *fakeCarModelStore
	services *fakeServiceStore
}

func newFakeCarStore() *fakeCarStore {
	return &fakeCarStore{cars: map[int64]*models.Car{}}
}

func (s *fakeCarStore) fill(car *models.Car) {
	if s.brands != nil {
		if b, ok := s.brands.brands[car.BrandID]; ok {
			car.BrandTitle = b.Title
			car.BrandLogo = b.LogoFilename
		}
	}
	if s.models != nil {
		if m, ok := s.models.carModels[car.ModelID]; ok {
			car.ModelTitle = m.Title
		}
	}
}

func (s *fakeCarStore) Create(_ context.Context, car *models.Car) error {
	s.nextID++
	car.ID = s.nextID
	car.Mileage = car.InitialMileage
	clone := *car
	s.cars[car.ID] = &clone
	return nil
}

func (s *fakeCarStore) GetByID(_ context.Context, id int64) (*models.Car, error) {
	c, ok := s.cars[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "car not found")
	}
	clone := *c
	s.fill(&clone)
	return &clone, nil
}

func (s *fakeCarStore) ListByOwner(_ context.Context, ownerID int64) ([]*models.Car, error) {
	result := []*models.Car{}
	for id := int64(1); id <= s.nextID; id++ {
		c, ok := s.cars[id]
		if !ok || c.OwnerID != ownerID {
			continue
		}
		clone := *c
		s.fill(&clone)
		result = append(result, &clone)
	}
	return result, nil
}

func (s *fakeCarStore) Update(_ context.Context, car *models.Car) error {
	if _, ok := s.cars[car.ID]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "car not found")
	}
	clone := *car
	s.cars[car.ID] = &clone
	return nil
}

func (s *fakeCarStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.cars[id]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "car not found")
	}
	delete(s.cars, id)
	// 模拟外键级联删除保养记录
	if s.services != nil {
		for sid, svc := range s.services.services {
			if svc.CarID == id {
				delete(s.services.services, sid)
			}
		}
	}
	return nil
}

type fakeServiceStore struct {
	nextID   int64
	services map[int64]*models.Service
	cars     *fakeCarStore
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{services: map[int64]*models.Service{}}
}

func (s *fakeServiceStore) fill(svc *models.Service) {
	if s.cars == nil {
		return
	}
	c, ok := s.cars.cars[svc.CarID]
	if !ok {
		return
	}
	svc.CarOwnerID = c.OwnerID
	clone := *c
	s.cars.fill(&clone)
	svc.CarInfo = &models.CarInfo{ID: c.ID, Brand: clone.BrandTitle, Model: clone.ModelTitle}
}

func (s *fakeServiceStore) Create(_ context.Context, svc *models.Service) error {
	s.nextID++
	svc.ID = s.nextID
	clone := *svc
	s.services[svc.ID] = &clone
	return nil
}

func (s *fakeServiceStore) GetByID(_ context.Context, id int64) (*models.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "service not found")
	}
	clone := *svc
	s.fill(&clone)
	return &clone, nil
}

func (s *fakeServiceStore) ListByOwner(_ context.Context, ownerID int64, carID *int64) ([]*models.Service, error) {
	result := []*models.Service{}
	for id := int64(1); id <= s.nextID; id++ {
		svc, ok := s.services[id]
		if !ok {
			continue
		}
		if carID != nil && svc.CarID != *carID {
			continue
		}
		clone := *svc
		s.fill(&clone)
		if clone.CarOwnerID != ownerID {
			continue
		}
		result = append(result, &clone)
	}
	return result, nil
}

func (s *fakeServiceStore) Update(_ context.Context, svc *models.Service) error {
	if _, ok := s.services[svc.ID]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "service not found")
	}
	clone := *svc
	s.services[svc.ID] = &clone
	return nil
}

func (s *fakeServiceStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.services[id]; !ok {
		return apperrors.New(apperrors.CodeNotFound, "service not found")
	}
	delete(s.services, id)
	return nil
}
