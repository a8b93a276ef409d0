package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/reset/request", h.RequestReset)
		authGroup.POST("/reset/validate", h.ValidateAnswer)
		authGroup.POST("/reset/confirm", h.ConfirmReset)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/users/me", h.GetMe)
}
