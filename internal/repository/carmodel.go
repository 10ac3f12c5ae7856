package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// CarModelRepository 车型数据仓库
type CarModelRepository struct {
	db *DB
}

// NewCarModelRepository 创建车型仓库
func NewCarModelRepository(db *DB) *CarModelRepository {
	return &CarModelRepository{db: db}
}

// Create 创建车型，(brand, title) 冲突时返回领域冲突错误
func (r *CarModelRepository) Create(ctx context.Context, model *models.CarModel) error {
	query := `INSERT INTO car_models (brand_id, title) VALUES ($1, $2) RETURNING id`
	err := r.db.Pool.QueryRow(ctx, query, model.BrandID, model.Title).Scan(&model.ID)
	if err != nil {
		return conflictOr(err, "car model already exists for this brand", fmt.Errorf("insert car model: %w", err))
	}
	return nil
}

// GetByID 通过 ID 获取车型
func (r *CarModelRepository) GetByID(ctx context.Context, id int64) (*models.CarModel, error) {
	query := `SELECT id, brand_id, title FROM car_models WHERE id = $1`
	model := &models.CarModel{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&model.ID, &model.BrandID, &model.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "car model not found")
		}
		return nil, fmt.Errorf("get car model by id: %w", err)
	}
	return model, nil
}

// List 获取车型列表，brandID 非空时按品牌过滤
func (r *CarModelRepository) List(ctx context.Context, brandID *int64) ([]*models.CarModel, error) {
	query := `SELECT id, brand_id, title FROM car_models`
	args := []interface{}{}
	if brandID != nil {
		query += ` WHERE brand_id = $1`
		args = append(args, *brandID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list car models: %w", err)
	}
	defer rows.Close()

	result := []*models.CarModel{}
	for rows.Next() {
		model := &models.CarModel{}
		if err := rows.Scan(&model.ID, &model.BrandID, &model.Title); err != nil {
			return nil, fmt.Errorf("scan car model: %w", err)
		}
		result = append(result, model)
	}

	return result, nil
}

// Update 更新车型
func (r *CarModelRepository) Update(ctx context.Context, model *models.CarModel) error {
	query := `UPDATE car_models SET brand_id = $1, title = $2 WHERE id = $3`
	tag, err := r.db.Pool.Exec(ctx, query, model.BrandID, model.Title, model.ID)
	if err != nil {
		return conflictOr(err, "car model already exists for this brand", fmt.Errorf("update car model: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "car model not found")
	}
	return nil
}

// Delete 删除车型，存在关联车辆时返回冲突错误
func (r *CarModelRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM car_models WHERE id = $1`, id)
	if err != nil {
		return conflictOr(err, "car model has associated cars", fmt.Errorf("delete car model: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "car model not found")
	}
	return nil
}
