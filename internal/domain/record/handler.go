package record

import (
	"errors"
	"net/http"
	"strings"

	"sic/internal/pkg/response"
	"sic/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	role := c.GetString("role")
	if role == "visitor" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Visitors cannot create service records")
		return
	}

	var req RecordPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", fields)
		return
	}

	rec, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingRequiredData):
			response.Error(c, http.StatusBadRequest, "MISSING_DATA", "Operator, technician, company and contract number are required")
		case errors.Is(err, ErrCommentsRequired):
			response.Error(c, http.StatusBadRequest, "COMMENTS_REQUIRED", "General comments are required")
		case errors.Is(err, ErrInvalidServiceType):
			response.Error(c, http.StatusBadRequest, "INVALID_SERVICE_TYPE", "Unknown service type")
		case errors.Is(err, ErrTooManyImages):
			response.Error(c, http.StatusBadRequest, "TOO_MANY_IMAGES", "A record can have at most 6 images")
		default:
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to save service record")
		}
		return
	}

	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) CheckDuplicate(c *gin.Context) {
	contractNumber := strings.TrimSpace(c.Query("contract_number"))
	if contractNumber == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "contract_number is required")
		return
	}

	isDuplicate, err := h.service.CheckDuplicate(c.Request.Context(), contractNumber)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to check for duplicates")
		return
	}

	response.Success(c, http.StatusOK, DuplicateCheckResponse{
		ContractNumber: contractNumber,
		IsDuplicate:    isDuplicate,
	})
}

func (h *Handler) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load service record")
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Update(c *gin.Context) {
	var req RecordPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body", fields)
		return
	}

	rec, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service record not found")
		case errors.Is(err, ErrMissingRequiredData):
			response.Error(c, http.StatusBadRequest, "MISSING_DATA", "Operator, technician, company and contract number are required")
		case errors.Is(err, ErrCommentsRequired):
			response.Error(c, http.StatusBadRequest, "COMMENTS_REQUIRED", "General comments are required")
		case errors.Is(err, ErrInvalidServiceType):
			response.Error(c, http.StatusBadRequest, "INVALID_SERVICE_TYPE", "Unknown service type")
		case errors.Is(err, ErrTooManyImages):
			response.Error(c, http.StatusBadRequest, "TOO_MANY_IMAGES", "A record can have at most 6 images")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to save changes")
		}
		return
	}

	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Service record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete service record")
		return
	}
	c.Status(http.StatusNoContent)
}
