package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/langchou/autocheck/internal/apperrors"
)

// Postgres 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isPgError 判断是否为指定错误码的 Postgres 错误
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// conflictOr 唯一约束/外键冲突时返回领域冲突错误，否则返回 fallback
func conflictOr(err error, message string, fallback error) error {
	if isPgError(err, pgUniqueViolation) || isPgError(err, pgForeignKeyViolation) {
		return apperrors.Wrap(apperrors.CodeConflict, message, err)
	}
	return fallback
}
