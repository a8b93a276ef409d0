package report

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/records", h.History)
	r.GET("/records/export", h.Export)

	reports := r.Group("/reports")
	{
		reports.GET("/operators", h.OperatorStats)
		reports.GET("/daily-counts", h.DailyCounts)
		reports.GET("/dashboard", h.Dashboard)
	}
}
