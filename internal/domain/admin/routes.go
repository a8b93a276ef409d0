package admin

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id/role", h.UpdateRole)
		users.DELETE("/:id", h.DeleteUser)
	}
	r.GET("/audit-logs", h.ListAuditLogs)
	r.GET("/login-attempts", h.ListLoginAttempts)
}
