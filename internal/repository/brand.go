package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// BrandRepository 品牌数据仓库
type BrandRepository struct {
	db *DB
}

// NewBrandRepository 创建品牌仓库
func NewBrandRepository(db *DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create 创建品牌
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	query := `INSERT INTO brands (title, logo_filename) VALUES ($1, $2) RETURNING id`
	err := r.db.Pool.QueryRow(ctx, query, brand.Title, brand.LogoFilename).Scan(&brand.ID)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID 通过 ID 获取品牌
func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	query := `SELECT id, title, logo_filename FROM brands WHERE id = $1`
	brand := &models.Brand{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Title, &brand.LogoFilename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "brand not found")
		}
		return nil, fmt.Errorf("get brand by id: %w", err)
	}
	return brand, nil
}

// List 获取所有品牌
func (r *BrandRepository) List(ctx context.Context) ([]*models.Brand, error) {
	query := `SELECT id, title, logo_filename FROM brands ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []*models.Brand{}
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Title, &brand.LogoFilename); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, brand)
	}

	return brands, nil
}

// Update 更新品牌
func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	query := `UPDATE brands SET title = $1, logo_filename = $2 WHERE id = $3`
	tag, err := r.db.Pool.Exec(ctx, query, brand.Title, brand.LogoFilename, brand.ID)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	return nil
}

// Delete 删除品牌，存在关联车型时返回冲突错误
func (r *BrandRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return conflictOr(err, "brand has associated car models", fmt.Errorf("delete brand: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "brand not found")
	}
	return nil
}
