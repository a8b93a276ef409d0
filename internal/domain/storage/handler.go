package storage

import (
	"errors"
	"net/http"

	"sic/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxImageSize); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Failed to parse form")
		return
	}

	files := c.Request.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "NO_FILES", "No files uploaded")
		return
	}

	type uploaded struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	results := make([]uploaded, 0, len(files))
	for _, file := range files {
		name, url, err := h.store.Save(file)
		if err != nil {
			switch {
			case errors.Is(err, ErrFileTooBig):
				response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_BIG", "Images must be at most 5MB")
			case errors.Is(err, ErrNotAnImage):
				response.Error(c, http.StatusBadRequest, "NOT_AN_IMAGE", "Only image files are accepted")
			default:
				response.Error(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save file")
			}
			return
		}
		results = append(results, uploaded{Name: name, URL: url})
	}

	response.Success(c, http.StatusCreated, gin.H{"images": results})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("name")); err != nil {
		if errors.Is(err, ErrInvalidName) {
			response.Error(c, http.StatusBadRequest, "INVALID_NAME", "Invalid object name")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete file")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/uploads", h.Upload)
	r.DELETE("/uploads/:name", h.Delete)
}
