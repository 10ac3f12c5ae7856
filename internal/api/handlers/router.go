package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 认证
		auth := api.Group("/auth")
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
		auth.POST("/token/refresh", h.RefreshToken)
		auth.POST("/logout", h.AuthRequired(), h.Logout)

		// 当前用户
		users := api.Group("/users", h.AuthRequired())
		users.GET("/me", h.Me)
		users.PUT("/me", h.UpdateMe)
		users.PATCH("/me", h.UpdateMe)

		// 品牌目录：读公开，写需要登录
		brands := api.Group("/brands")
		brands.GET("", h.ListBrands)
		brands.GET("/:id", h.GetBrand)
		brands.POST("", h.AuthRequired(), h.CreateBrand)
		brands.PUT("/:id", h.AuthRequired(), h.UpdateBrand)
		brands.PATCH("/:id", h.AuthRequired(), h.UpdateBrand)
		brands.DELETE("/:id", h.AuthRequired(), h.DeleteBrand)

		// 车型目录：读公开，写需要登录
		carModels := api.Group("/models")
		carModels.GET("", h.ListCarModels)
		carModels.GET("/:id", h.GetCarModel)
		carModels.POST("", h.AuthRequired(), h.CreateCarModel)
		carModels.PUT("/:id", h.AuthRequired(), h.UpdateCarModel)
		carModels.PATCH("/:id", h.AuthRequired(), h.UpdateCarModel)
		carModels.DELETE("/:id", h.AuthRequired(), h.DeleteCarModel)

		// 车辆：仅限车主
		cars := api.Group("/cars", h.AuthRequired())
		cars.GET("", h.ListCars)
		cars.POST("", h.CreateCar)
		cars.GET("/:id", h.GetCar)
		cars.PUT("/:id", h.UpdateCar)
		cars.PATCH("/:id", h.UpdateCar)
		cars.DELETE("/:id", h.DeleteCar)

		// 保养记录：经由车辆属主授权
		services := api.Group("/services", h.AuthRequired())
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.PATCH("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
