package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/langchou/autocheck/internal/apperrors"
	"github.com/langchou/autocheck/internal/models"
)

type createServiceRequest struct {
	CarID           int64        `json:"car" binding:"required"`
	WorkDescription string       `json:"work_description" binding:"required,max=255"`
	Hours           float64      `json:"hours" binding:"gte=0"`
	ScheduledDate   *models.Date `json:"scheduled_date" binding:"required"`
	Status          string       `json:"status"`
	Price           *float64     `json:"price" binding:"omitempty,gte=0"`
}

// ownedService 取保养记录并经由所属车辆校验属主
func (h *Handler) ownedService(c *gin.Context, id int64) (*models.Service, bool) {
	svc, err := h.services.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}
	if svc.CarOwnerID != currentUserID(c) {
		h.renderError(c, apperrors.New(apperrors.CodePermissionDenied, "you do not have permission to perform this action"))
		return nil, false
	}
	return svc, true
}

// ListServices 获取当前用户车辆的保养记录，?car= 可按车辆过滤
func (h *Handler) ListServices(c *gin.Context) {
	var carID *int64
	if raw := c.Query("car"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
			return
		}
		carID = &id
	}

	services, err := h.services.ListByOwner(c.Request.Context(), currentUserID(c), carID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": services})
}

// GetService 获取保养记录详情
func (h *Handler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	svc, ok := h.ownedService(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": svc})
}

// CreateService 创建保养记录。引用他人车辆时返回 403，字段再合法也不行
func (h *Handler) CreateService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 先显式校验车辆属主，不依赖查询过滤
	if _, ok := h.ownedCar(c, req.CarID); !ok {
		return
	}

	status, err := h.status.Transition(c.Request.Context(), 0, models.ServiceStatusPending, defaultStatus(req.Status))
	if err != nil {
		h.renderError(c, err)
		return
	}

	svc := &models.Service{
		CarID:           req.CarID,
		WorkDescription: req.WorkDescription,
		Hours:           req.Hours,
		ScheduledDate:   *req.ScheduledDate,
		Status:          status,
		Price:           req.Price,
	}
	if err := h.services.Create(c.Request.Context(), svc); err != nil {
		h.renderError(c, err)
		return
	}

	created, err := h.services.GetByID(c.Request.Context(), svc.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// UpdateService 更新保养记录
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	svc, ok := h.ownedService(c, id)
	if !ok {
		return
	}

	var req struct {
		CarID           *int64       `json:"car"`
		WorkDescription *string      `json:"work_description" binding:"omitempty,max=255"`
		Hours           *float64     `json:"hours" binding:"omitempty,gte=0"`
		ScheduledDate   *models.Date `json:"scheduled_date"`
		Status          *string      `json:"status"`
		Price           *float64     `json:"price" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CarID != nil && *req.CarID != svc.CarID {
		// 换车也必须换到自己的车上
		if _, ok := h.ownedCar(c, *req.CarID); !ok {
			return
		}
		svc.CarID = *req.CarID
	}
	if req.WorkDescription != nil {
		svc.WorkDescription = *req.WorkDescription
	}
	if req.Hours != nil {
		svc.Hours = *req.Hours
	}
	if req.ScheduledDate != nil {
		svc.ScheduledDate = *req.ScheduledDate
	}
	if req.Status != nil {
		status, err := h.status.Transition(c.Request.Context(), svc.ID, svc.Status, *req.Status)
		if err != nil {
			h.renderError(c, err)
			return
		}
		svc.Status = status
	}
	if req.Price != nil {
		svc.Price = req.Price
	}

	if err := h.services.Update(c.Request.Context(), svc); err != nil {
		h.renderError(c, err)
		return
	}

	updated, err := h.services.GetByID(c.Request.Context(), svc.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteService 删除保养记录
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, ok := h.ownedService(c, id); !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func defaultStatus(status string) string {
	if status == "" {
		return models.ServiceStatusPending
	}
	return status
}
