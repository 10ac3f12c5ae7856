package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// CarRepository 车辆数据仓库
type CarRepository struct {
	db *DB
}

// NewCarRepository 创建车辆仓库
func NewCarRepository(db *DB) *CarRepository {
	return &CarRepository{db: db}
}

const carSelect = `
	SELECT c.id, c.owner_id, c.brand_id, c.model_id, c.initial_mileage, c.mileage, c.updated_mileage_at, c.created_at,
	       b.title, m.title, b.logo_filename
	FROM cars c
	JOIN brands b ON b.id = c.brand_id
	JOIN car_models m ON m.id = c.model_id
`

func scanCar(row pgx.Row) (*models.Car, error) {
	car := &models.Car{}
	err := row.Scan(
		&car.ID,
		&car.OwnerID,
		&car.BrandID,
		&car.ModelID,
		&car.InitialMileage,
		&car.Mileage,
		&car.UpdatedMileageAt,
		&car.CreatedAt,
		&car.BrandTitle,
		&car.ModelTitle,
		&car.BrandLogo,
	)
	if err != nil {
		return nil, err
	}
	return car, nil
}

// Create 创建车辆，mileage 初始化为 initial_mileage
func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	query := `
		INSERT INTO cars (owner_id, brand_id, model_id, initial_mileage, mileage, updated_mileage_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	car.Mileage = car.InitialMileage
	err := r.db.Pool.QueryRow(ctx, query,
		car.OwnerID,
		car.BrandID,
		car.ModelID,
		car.InitialMileage,
		car.Mileage,
		now,
		now,
	).Scan(&car.ID)

	if err != nil {
		return conflictOr(err, "brand or car model does not exist", fmt.Errorf("insert car: %w", err))
	}

	car.UpdatedMileageAt = now
	car.CreatedAt = now
	return nil
}

// GetByID 通过 ID 获取车辆（不做属主过滤，属主校验在上层）
func (r *CarRepository) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	car, err := scanCar(r.db.Pool.QueryRow(ctx, carSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "car not found")
		}
		return nil, fmt.Errorf("get car by id: %w", err)
	}
	return car, nil
}

// ListByOwner 获取某个用户的全部车辆
func (r *CarRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Car, error) {
	rows, err := r.db.Pool.Query(ctx, carSelect+` WHERE c.owner_id = $1 ORDER BY c.id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	cars := []*models.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}

// Update 更新车辆，同时刷新里程更新时间
func (r *CarRepository) Update(ctx context.Context, car *models.Car) error {
	query := `
		UPDATE cars SET brand_id = $1, model_id = $2, mileage = $3, updated_mileage_at = $4
		WHERE id = $5
	`
	car.UpdatedMileageAt = time.Now()
	tag, err := r.db.Pool.Exec(ctx, query,
		car.BrandID,
		car.ModelID,
		car.Mileage,
		car.UpdatedMileageAt,
		car.ID,
	)
	if err != nil {
		return conflictOr(err, "brand or car model does not exist", fmt.Errorf("update car: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "car not found")
	}
	return nil
}

// Delete 删除车辆，保养记录随外键级联删除
func (r *CarRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "car not found")
	}
	return nil
}
