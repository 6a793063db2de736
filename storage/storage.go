// Package storage persists roster snapshot exports on the local filesystem
// or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Download when no object exists at the key
var ErrNotFound = errors.New("export not found")

// Storage interface for export object operations
type Storage interface {
	// Upload stores an export and returns its object key
	Upload(ctx context.Context, exportID uuid.UUID, filename string, data io.Reader) (string, error)

	// Download retrieves an export by object key
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an export by object key
	Delete(ctx context.Context, key string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string
	S3Endpoint   string // S3-compatible endpoints such as MinIO
	S3PathStyle  bool
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal, "":
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("s3 storage requires a bucket")
		}
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// exportKey lays exports out as exports/<id prefix>/<id>/<filename>
func exportKey(exportID uuid.UUID, filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "\\", "_")

	id := exportID.String()
	return path.Join("exports", id[:2], id, name)
}

// contentType determines the content type from the export filename
func contentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
