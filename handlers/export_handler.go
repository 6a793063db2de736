package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"legal-roster/service"
	"legal-roster/storage"

	"github.com/gin-gonic/gin"
)

// Exporter produces roster snapshots
type Exporter interface {
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler handles HTTP requests for roster snapshots
type ExportHandler struct {
	exporter Exporter
	storage  storage.Storage
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter Exporter, store storage.Storage) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
		storage:  store,
	}
}

// RegisterRoutes mounts the export endpoints on r
func (h *ExportHandler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.POST("/exports", h.CreateExport)
		api.GET("/exports/*key", h.DownloadExport)
		api.DELETE("/exports/*key", h.DeleteExport)
	}
}

type createExportBody struct {
	Format string `json:"format"`
}

// CreateExport handles POST /api/exports
func (h *ExportHandler) CreateExport(c *gin.Context) {
	var body createExportBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	if body.Format == "" {
		body.Format = c.Query("format")
	}

	format, err := service.ParseExportFormat(body.Format)
	if err != nil {
		respondErr(c, err)
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

// DownloadExport handles GET /api/exports/*key
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	key, ok := exportKeyParam(c)
	if !ok {
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), key)
	if err != nil {
		respondErr(c, err)
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	switch path.Ext(key) {
	case ".json":
		contentType = "application/json"
	case ".xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=\"%s\"", path.Base(key)),
	})
}

// DeleteExport handles DELETE /api/exports/*key. Deleting a missing
// export succeeds.
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	key, ok := exportKeyParam(c)
	if !ok {
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"key": key, "deleted": true})
}

// exportKeyParam reads the wildcard key and rejects anything outside exports/
func exportKeyParam(c *gin.Context) (string, bool) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" || !strings.HasPrefix(key, "exports/") {
		respondError(c, http.StatusBadRequest, "INVALID_KEY", "Invalid export key")
		return "", false
	}
	return key, true
}
