package report

import (
	"net/http"
	"time"

	"sic/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) queryFrom(c *gin.Context) HistoryQuery {
	q := HistoryQuery{
		Period:       ParsePeriod(c.Query("period")),
		ServiceType:  c.Query("service_type"),
		Neighborhood: c.Query("neighborhood"),
		Operator:     c.Query("operator"),
	}
	if raw := c.Query("date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			q.CustomDate = &d
		}
	}
	return q
}

func (h *Handler) History(c *gin.Context) {
	result, err := h.service.History(c.Request.Context(), h.queryFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch records")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) OperatorStats(c *gin.Context) {
	q := h.queryFrom(c)
	stats, err := h.service.OperatorStats(c.Request.Context(), q.Period, q.CustomDate)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch operator stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) DailyCounts(c *gin.Context) {
	q := h.queryFrom(c)
	counts, err := h.service.DailyCounts(c.Request.Context(), q.Period, q.CustomDate)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch daily counts")
		return
	}
	response.Success(c, http.StatusOK, counts)
}

func (h *Handler) Dashboard(c *gin.Context) {
	result, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch dashboard data")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Export(c *gin.Context) {
	data, filename, err := h.service.Export(c.Request.Context(), h.queryFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export records")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
