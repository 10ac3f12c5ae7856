package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/langchou/autocheck/internal/models"
	"github.com/langchou/autocheck/internal/service"
	"github.com/langchou/autocheck/pkg/token"
)

// UserStore 用户存取能力
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// BrandStore 品牌存取能力
type BrandStore interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	List(ctx context.Context) ([]*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id int64) error
}

// CarModelStore 车型存取能力
type CarModelStore interface {
	Create(ctx context.Context, model *models.CarModel) error
	GetByID(ctx context.Context, id int64) (*models.CarModel, error)
	List(ctx context.Context, brandID *int64) ([]*models.CarModel, error)
	Update(ctx context.Context, model *models.CarModel) error
	Delete(ctx context.Context, id int64) error
}

// CarStore 车辆存取能力
type CarStore interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id int64) error
}

// ServiceStore 保养记录存取能力
type ServiceStore interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	ListByOwner(ctx context.Context, ownerID int64, carID *int64) ([]*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id int64) error
}

// Handler HTTP 处理器
type Handler struct {
	logger    *zap.Logger
	auth      *service.AuthService
	status    *service.StatusLifecycle
	tokens    *token.Issuer
	users     UserStore
	brands    BrandStore
	carModels CarModelStore
	cars      CarStore
	services  ServiceStore
}

// NewHandler 创建处理器
func NewHandler(
	logger *zap.Logger,
	auth *service.AuthService,
	status *service.StatusLifecycle,
	tokens *token.Issuer,
	users UserStore,
	brands BrandStore,
	carModels CarModelStore,
	cars CarStore,
	services ServiceStore,
) *Handler {
	return &Handler{
		logger:    logger,
		auth:      auth,
		status:    status,
		tokens:    tokens,
		users:     users,
		brands:    brands,
		carModels: carModels,
		cars:      cars,
		services:  services,
	}
}
