package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// 连接池配置
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// 测试连接
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	migrations := []string{
		migrationCreateUsers,
		migrationCreateBrands,
		migrationCreateCarModels,
		migrationCreateCars,
		migrationCreateServices,
	}

	for _, m := range migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

// 数据库迁移 SQL
const migrationCreateUsers = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(150) NOT NULL UNIQUE,
    email VARCHAR(254) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    first_name VARCHAR(150) NOT NULL DEFAULT '',
    last_name VARCHAR(150) NOT NULL DEFAULT '',
    photo_filename VARCHAR(255) NOT NULL DEFAULT 'default-user.png',
    date_birth DATE,
    country VARCHAR(100) NOT NULL DEFAULT '',
    currency VARCHAR(10) NOT NULL DEFAULT 'usd',
    distance_units VARCHAR(2) NOT NULL DEFAULT 'km',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
`

const migrationCreateBrands = `
CREATE TABLE IF NOT EXISTS brands (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(100) NOT NULL,
    logo_filename VARCHAR(100) NOT NULL DEFAULT ''
);
`

const migrationCreateCarModels = `
CREATE TABLE IF NOT EXISTS car_models (
    id BIGSERIAL PRIMARY KEY,
    brand_id BIGINT NOT NULL REFERENCES brands(id),
    title VARCHAR(100) NOT NULL,
    UNIQUE (brand_id, title)
);
CREATE INDEX IF NOT EXISTS idx_car_models_brand_id ON car_models(brand_id);
`

// 品牌/车型被车辆引用时禁止删除，车主删除时级联删除车辆
const migrationCreateCars = `
CREATE TABLE IF NOT EXISTS cars (
    id BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    brand_id BIGINT NOT NULL REFERENCES brands(id),
    model_id BIGINT NOT NULL REFERENCES car_models(id),
    initial_mileage INT NOT NULL CHECK (initial_mileage >= 0),
    mileage INT NOT NULL,
    updated_mileage_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_cars_owner_id ON cars(owner_id);
`

const migrationCreateServices = `
CREATE TABLE IF NOT EXISTS services (
    id BIGSERIAL PRIMARY KEY,
    car_id BIGINT NOT NULL REFERENCES cars(id) ON DELETE CASCADE,
    work_description VARCHAR(255) NOT NULL,
    hours NUMERIC(4,1) NOT NULL DEFAULT 0,
    scheduled_date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    price NUMERIC(10,2),
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_services_car_id ON services(car_id);
CREATE INDEX IF NOT EXISTS idx_services_scheduled_date ON services(scheduled_date);
`
