package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legal-roster/service"
	"legal-roster/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) Export(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error) {
	args := m.Called(ctx, format)
	result, _ := args.Get(0).(*service.ExportResult)
	return result, args.Error(1)
}

func setupExportRouter(t *testing.T, exporter Exporter, store storage.Storage) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewExportHandler(exporter, store).RegisterRoutes(r)
	return r
}

func TestCreateExport(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	exporter := &mockExporter{}
	exporter.On("Export", mock.Anything, service.ExportFormatXLSX).Return(&service.ExportResult{
		ExportID: uuid.New(),
		Format:   service.ExportFormatXLSX,
		Key:      "exports/ab/abc/roster.xlsx",
	}, nil)

	r := setupExportRouter(t, exporter, store)

	w, env := do(t, r, http.MethodPost, "/api/exports", map[string]string{"format": "xlsx"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), "roster.xlsx")

	w, env = do(t, r, http.MethodPost, "/api/exports?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", env.Error.Code)
	exporter.AssertNumberOfCalls(t, "Export", 1)
}

func TestDownloadExport(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := store.Upload(context.Background(), uuid.New(), "roster.json", strings.NewReader(`{"lawyers":[]}`))
	require.NoError(t, err)

	r := setupExportRouter(t, &mockExporter{}, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/exports/"+key, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "roster.json")
	assert.Equal(t, `{"lawyers":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/exports/exports/00/missing/roster.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/exports/etc/passwd", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteExport(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	key, err := store.Upload(context.Background(), uuid.New(), "roster.json", strings.NewReader(`{}`))
	require.NoError(t, err)

	r := setupExportRouter(t, &mockExporter{}, store)

	w, env := do(t, r, http.MethodDelete, "/api/exports/"+key, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	_, err = store.Download(context.Background(), key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	w, _ = do(t, r, http.MethodDelete, "/api/exports/"+key, nil)
	assert.Equal(t, http.StatusOK, w.Code, "deleting twice is not an error")

	w, env = do(t, r, http.MethodDelete, "/api/exports/etc/passwd", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_KEY", env.Error.Code)
}
