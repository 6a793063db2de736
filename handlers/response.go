package handlers

import (
	"errors"
	"net/http"

	"legal-roster/repository"
	"legal-roster/service"
	"legal-roster/storage"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// classify maps a service or repository error onto an HTTP status and code
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_FAILED"
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, repository.ErrReferenceNotFound):
		return http.StatusUnprocessableEntity, "REFERENCE_NOT_FOUND"
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, "DUPLICATE"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, repository.ErrWrite):
		return http.StatusInternalServerError, "WRITE_FAILED"
	case errors.Is(err, repository.ErrQuery):
		return http.StatusInternalServerError, "QUERY_FAILED"
	case errors.Is(err, service.ErrExportFailed):
		return http.StatusInternalServerError, "EXPORT_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respondErr(c *gin.Context, err error) {
	status, code := classify(err)
	respondError(c, status, code, err.Error())
}
