package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/langchou/autocheck/internal/models"
)

type brandRequest struct {
	Title        string `json:"title" binding:"required"`
	LogoFilename string `json:"logo_filename"`
}

// ListBrands 获取品牌列表
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.brands.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brands})
}

// GetBrand 获取品牌详情
func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	brand, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}

// CreateBrand 创建品牌
func (h *Handler) CreateBrand(c *gin.Context) {
	var req brandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand := &models.Brand{Title: req.Title, LogoFilename: req.LogoFilename}
	if err := h.brands.Create(c.Request.Context(), brand); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": brand})
}

// UpdateBrand 更新品牌
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	brand, err := h.brands.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var req struct {
		Title        *string `json:"title"`
		LogoFilename *string `json:"logo_filename"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		brand.Title = *req.Title
	}
	if req.LogoFilename != nil {
		brand.LogoFilename = *req.LogoFilename
	}

	if err := h.brands.Update(c.Request.Context(), brand); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": brand})
}

// DeleteBrand 删除品牌，存在关联车型时返回 409
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type carModelRequest struct {
	BrandID int64  `json:"car_brand" binding:"required"`
	Title   string `json:"title" binding:"required"`
}

// ListCarModels 获取车型列表，?brand= 可按品牌过滤
func (h *Handler) ListCarModels(c *gin.Context) {
	var brandID *int64
	if raw := c.Query("brand"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
			return
		}
		brandID = &id
	}

	carModels, err := h.carModels.List(c.Request.Context(), brandID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": carModels})
}

// GetCarModel 获取车型详情
func (h *Handler) GetCarModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	model, err := h.carModels.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": model})
}

// CreateCarModel 创建车型
func (h *Handler) CreateCarModel(c *gin.Context) {
	var req carModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := &models.CarModel{BrandID: req.BrandID, Title: req.Title}
	if err := h.carModels.Create(c.Request.Context(), model); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": model})
}

// UpdateCarModel 更新车型
func (h *Handler) UpdateCarModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	model, err := h.carModels.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var req struct {
		BrandID *int64  `json:"car_brand"`
		Title   *string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BrandID != nil {
		model.BrandID = *req.BrandID
	}
	if req.Title != nil {
		model.Title = *req.Title
	}

	if err := h.carModels.Update(c.Request.Context(), model); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": model})
}

// DeleteCarModel 删除车型，存在关联车辆时返回 409
func (h *Handler) DeleteCarModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.carModels.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
