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

// ServiceRepository 保养记录数据仓库
type ServiceRepository struct {
	db *DB
}

// NewServiceRepository 创建保养记录仓库
func NewServiceRepository(db *DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceSelect = `
	SELECT s.id, s.car_id, s.work_description, s.hours, s.scheduled_date, s.status, s.price, s.created_at,
	       c.owner_id, b.title, m.title
	FROM services s
	JOIN cars c ON c.id = s.car_id
	JOIN brands b ON b.id = c.brand_id
	JOIN car_models m ON m.id = c.model_id
`

func scanService(row pgx.Row) (*models.Service, error) {
	svc := &models.Service{CarInfo: &models.CarInfo{}}
	err := row.Scan(
		&svc.ID,
		&svc.CarID,
		&svc.WorkDescription,
		&svc.Hours,
		&svc.ScheduledDate,
		&svc.Status,
		&svc.Price,
		&svc.CreatedAt,
		&svc.CarOwnerID,
		&svc.CarInfo.Brand,
		&svc.CarInfo.Model,
	)
	if err != nil {
		return nil, err
	}
	svc.CarInfo.ID = svc.CarID
	return svc, nil
}

// Create 创建保养记录
func (r *ServiceRepository) Create(ctx context.Context, svc *models.Service) error {
	query := `
		INSERT INTO services (car_id, work_description, hours, scheduled_date, status, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	err := r.db.Pool.QueryRow(ctx, query,
		svc.CarID,
		svc.WorkDescription,
		svc.Hours,
		svc.ScheduledDate,
		svc.Status,
		svc.Price,
		now,
	).Scan(&svc.ID)

	if err != nil {
		return conflictOr(err, "car does not exist", fmt.Errorf("insert service: %w", err))
	}

	svc.CreatedAt = now
	return nil
}

// GetByID 通过 ID 获取保养记录（带所属车辆信息，属主校验在上层）
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := scanService(r.db.Pool.QueryRow(ctx, serviceSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "service not found")
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}
	return svc, nil
}

// ListByOwner 获取某个用户名下车辆的保养记录，carID 非空时按车辆过滤
func (r *ServiceRepository) ListByOwner(ctx context.Context, ownerID int64, carID *int64) ([]*models.Service, error) {
	query := serviceSelect + ` WHERE c.owner_id = $1`
	args := []interface{}{ownerID}
	if carID != nil {
		query += ` AND s.car_id = $2`
		args = append(args, *carID)
	}
	query += ` ORDER BY s.scheduled_date DESC, s.id DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	result := []*models.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		result = append(result, svc)
	}

	return result, nil
}

// Update 更新保养记录
func (r *ServiceRepository) Update(ctx context.Context, svc *models.Service) error {
	query := `
		UPDATE services SET car_id = $1, work_description = $2, hours = $3, scheduled_date = $4, status = $5, price = $6
		WHERE id = $7
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		svc.CarID,
		svc.WorkDescription,
		svc.Hours,
		svc.ScheduledDate,
		svc.Status,
		svc.Price,
		svc.ID,
	)
	if err != nil {
		return conflictOr(err, "car does not exist", fmt.Errorf("update service: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "service not found")
	}
	return nil
}

// Delete 删除保养记录
func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "service not found")
	}
	return nil
}
