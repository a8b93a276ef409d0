package admin

import (
	"errors"
	"net/http"
	"strconv"

	"sic/internal/domain/auth"
	"sic/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListUsers(c *gin.Context) {
	result, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, password, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be admin, user or visitor")
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create user")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":             user,
		"initial_password": password,
	})
}

func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), auth.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRole):
			response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be admin, user or visitor")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update role")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	err := h.service.DeleteUser(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfDelete):
			response.Error(c, http.StatusBadRequest, "SELF_DELETE", "You cannot delete your own account")
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete user")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.service.ListAuditLogs(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch audit logs")
		return
	}
	response.Success(c, http.StatusOK, logs)
}

func (h *Handler) ListLoginAttempts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	attempts, err := h.service.ListLoginAttempts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch login attempts")
		return
	}
	response.Success(c, http.StatusOK, attempts)
}
