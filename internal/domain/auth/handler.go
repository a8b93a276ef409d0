package auth

import (
	"errors"
	"net/http"

	"sic/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccountLocked):
			response.Error(c, http.StatusTooManyRequests, "ACCOUNT_LOCKED", "Too many failed attempts, try again later")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.AccessToken,
		"user":  result.User,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch user")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) RequestReset(c *gin.Context) {
	var req ResetRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	question, err := h.service.RequestReset(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrResetUnavailable) {
			response.Error(c, http.StatusNotFound, "RESET_UNAVAILABLE", "Password reset is not available for this account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to start password reset")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"question": question})
}

func (h *Handler) ValidateAnswer(c *gin.Context) {
	var req ResetValidateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	code, err := h.service.ValidateAnswer(c.Request.Context(), req.Email, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, ErrResetUnavailable):
			response.Error(c, http.StatusNotFound, "RESET_UNAVAILABLE", "Password reset is not available for this account")
		case errors.Is(err, ErrResetBlocked):
			response.Error(c, http.StatusTooManyRequests, "RESET_BLOCKED", "Too many wrong answers, try again later")
		case errors.Is(err, ErrWrongAnswer):
			response.Error(c, http.StatusUnauthorized, "WRONG_ANSWER", "Security answer is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to validate answer")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"code": code})
}

func (h *Handler) ConfirmReset(c *gin.Context) {
	var req ResetConfirmDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.ConfirmReset(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters with a digit and a special character")
		case errors.Is(err, ErrResetBlocked):
			response.Error(c, http.StatusTooManyRequests, "RESET_BLOCKED", "Too many wrong answers, try again later")
		case errors.Is(err, ErrInvalidResetCode):
			response.Error(c, http.StatusUnauthorized, "INVALID_CODE", "Reset code is invalid or expired")
		default:
			response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset password")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true})
}
