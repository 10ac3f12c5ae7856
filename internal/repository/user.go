package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

// UserRepository 用户数据仓库
type UserRepository struct {
	db *DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, photo_filename, date_birth, country, currency, distance_units, created_at, updated_at`

// uniqueUserFields 用户唯一约束冲突转为字段级校验错误，非唯一冲突返回 nil
func uniqueUserFields(err error) map[string]string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return map[string]string{"email": "A user with that email already exists."}
	}
	return map[string]string{"username": "A user with that username already exists."}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.PhotoFilename,
		&user.DateBirth,
		&user.Country,
		&user.Currency,
		&user.DistanceUnits,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create 创建用户，username/email 冲突时返回领域冲突错误
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, photo_filename, country, currency, distance_units, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	now := time.Now()
	if user.PhotoFilename == "" {
		user.PhotoFilename = "default-user.png"
	}
	if user.Currency == "" {
		user.Currency = models.CurrencyUSD
	}
	if user.DistanceUnits == "" {
		user.DistanceUnits = models.DistanceKm
	}
	err := r.db.Pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.PhotoFilename,
		user.Country,
		user.Currency,
		user.DistanceUnits,
		now,
		now,
	).Scan(&user.ID)

	if err != nil {
		if fields := uniqueUserFields(err); fields != nil {
			return apperrors.WithFields(apperrors.CodeInvalid, "user already exists", fields)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByID 通过 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername 通过用户名获取用户
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

// GetByEmail 通过邮箱获取用户
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// Update 更新用户资料
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET first_name = $1, last_name = $2, photo_filename = $3, date_birth = $4, country = $5, currency = $6, distance_units = $7, updated_at = $8
		WHERE id = $9
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.Pool.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.PhotoFilename,
		user.DateBirth,
		user.Country,
		user.Currency,
		user.DistanceUnits,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
