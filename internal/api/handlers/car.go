package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

type createCarRequest struct {
	BrandID        int64 `json:"car_brand" binding:"required"`
	ModelID        int64 `json:"car_model" binding:"required"`
	InitialMileage *int  `json:"initial_mileage" binding:"required,gte=0"`
}

// ownedCar 取车辆并校验属主：不存在返回 404，不属于调用方返回 403
func (h *Handler) ownedCar(c *gin.Context, id int64) (*models.Car, bool) {
	car, err := h.cars.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}
	if car.OwnerID != currentUserID(c) {
		h.renderError(c, apperrors.New(apperrors.CodePermissionDenied, "you do not have permission to perform this action"))
		return nil, false
	}
	return car, true
}

// ListCars 获取当前用户的车辆列表
func (h *Handler) ListCars(c *gin.Context) {
	cars, err := h.cars.ListByOwner(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cars})
}

// GetCar 获取车辆详情
func (h *Handler) GetCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	car, ok := h.ownedCar(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": car})
}

// CreateCar 创建车辆。属主固定为当前用户，mileage 初始化为 initial_mileage
func (h *Handler) CreateCar(c *gin.Context) {
	var req createCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car := &models.Car{
		OwnerID:        currentUserID(c),
		BrandID:        req.BrandID,
		ModelID:        req.ModelID,
		InitialMileage: *req.InitialMileage,
	}
	if err := h.cars.Create(c.Request.Context(), car); err != nil {
		h.renderError(c, err)
		return
	}

	// 带品牌/车型信息重新读取
	created, err := h.cars.GetByID(c.Request.Context(), car.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// UpdateCar 更新车辆。里程允许改小，录入笔误可以直接修正
func (h *Handler) UpdateCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	car, ok := h.ownedCar(c, id)
	if !ok {
		return
	}

	var req struct {
		BrandID *int64 `json:"car_brand"`
		ModelID *int64 `json:"car_model"`
		Mileage *int   `json:"mileage" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BrandID != nil {
		car.BrandID = *req.BrandID
	}
	if req.ModelID != nil {
		car.ModelID = *req.ModelID
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}

	if err := h.cars.Update(c.Request.Context(), car); err != nil {
		h.renderError(c, err)
		return
	}

	updated, err := h.cars.GetByID(c.Request.Context(), car.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteCar 删除车辆，保养记录级联删除
func (h *Handler) DeleteCar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, ok := h.ownedCar(c, id); !ok {
		return
	}

	if err := h.cars.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
