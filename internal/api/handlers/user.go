package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/langchou/autocheck/internal/models"
)

// Me 获取当前用户资料
func (h *Handler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

type updateProfileRequest struct {
	Name          *string      `json:"name"`
	LastName      *string      `json:"lastName"`
	Country       *string      `json:"country"`
	DateBirth     *models.Date `json:"dateBirth"`
	Photo         *string      `json:"photo"`
	Currency      *string      `json:"currency" binding:"omitempty,oneof=eur gbp usd uah pln"`
	DistanceUnits *string      `json:"distance_units" binding:"omitempty,oneof=km mi"`
}

// UpdateMe 更新当前用户资料，未出现的字段保持不变
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if req.Name != nil {
		user.FirstName = *req.Name
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.DateBirth != nil {
		user.DateBirth = req.DateBirth
	}
	if req.Photo != nil {
		user.PhotoFilename = *req.Photo
	}
	if req.Currency != nil {
		user.Currency = *req.Currency
	}
	if req.DistanceUnits != nil {
		user.DistanceUnits = *req.DistanceUnits
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
