package record

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	recordGroup := protected.Group("/records")
	{
		recordGroup.POST("", h.Create)
		recordGroup.GET("/duplicate-check", h.CheckDuplicate)
		recordGroup.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes — edit and delete are admin-only.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	recordGroup := admin.Group("/records")
	{
		recordGroup.PUT("/:id", h.Update)
		recordGroup.DELETE("/:id", h.Delete)
	}
}
