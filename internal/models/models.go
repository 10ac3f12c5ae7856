package models

import "time"

// 货币单位
const (
	CurrencyEUR = "eur"
	CurrencyGBP = "gbp"
	CurrencyUSD = "usd"
	CurrencyUAH = "uah"
	CurrencyPLN = "pln"
)

// 里程单位
const (
	DistanceKm = "km"
	DistanceMi = "mi"
)

// 保养记录状态
const (
	ServiceStatusPending    = "pending"
	ServiceStatusInProgress = "in_progress"
	ServiceStatusCompleted  = "completed"
)

// User 用户
type User struct {
	ID            int64      `json:"id" db:"id"`
	Username      string     `json:"username" db:"username"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FirstName     string     `json:"name" db:"first_name"`
	LastName      string     `json:"lastName" db:"last_name"`
	PhotoFilename string     `json:"photoFilename" db:"photo_filename"`
	DateBirth     *Date      `json:"dateBirth,omitempty" db:"date_birth"`
	Country       string     `json:"country" db:"country"`
	Currency      string     `json:"currency" db:"currency"`
	DistanceUnits string     `json:"distance_units" db:"distance_units"`
	CreatedAt     time.Time  `json:"-" db:"created_at"`
	UpdatedAt     time.Time  `json:"-" db:"updated_at"`
}

// Brand 汽车品牌
type Brand struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	LogoFilename string `json:"logo_filename" db:"logo_filename"`
}

// CarModel 车型，隶属于一个品牌，(brand, title) 唯一
type CarModel struct {
	ID      int64  `json:"id" db:"id"`
	BrandID int64  `json:"car_brand" db:"brand_id"`
	Title   string `json:"title" db:"title"`
}

// Car 车辆
type Car struct {
	ID               int64     `json:"id" db:"id"`
	OwnerID          int64     `json:"-" db:"owner_id"`
	BrandID          int64     `json:"car_brand" db:"brand_id"`
	ModelID          int64     `json:"car_model" db:"model_id"`
	InitialMileage   int       `json:"initial_mileage" db:"initial_mileage"`
	Mileage          int       `json:"mileage" db:"mileage"`
	UpdatedMileageAt time.Time `json:"updated_mileage_at" db:"updated_mileage_at"`
	CreatedAt        time.Time `json:"-" db:"created_at"`

	// 关联品牌/车型信息（查询时 JOIN 得到）
	BrandTitle string `json:"brand" db:"brand_title"`
	ModelTitle string `json:"model" db:"model_title"`
	BrandLogo  string `json:"logo" db:"brand_logo"`
}

// Service 保养记录
type Service struct {
	ID              int64     `json:"id" db:"id"`
	CarID           int64     `json:"car" db:"car_id"`
	WorkDescription string    `json:"work_description" db:"work_description"`
	Hours           float64   `json:"hours" db:"hours"`
	ScheduledDate   Date      `json:"scheduled_date" db:"scheduled_date"`
	Status          string    `json:"status" db:"status"`
	Price           *float64  `json:"price,omitempty" db:"price"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// 所属车辆信息（查询时 JOIN 得到）
	CarOwnerID int64    `json:"-" db:"car_owner_id"`
	CarInfo    *CarInfo `json:"car_info,omitempty"`
}

// CarInfo 保养记录里嵌入的车辆摘要
type CarInfo struct {
	ID    int64  `json:"id"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}
