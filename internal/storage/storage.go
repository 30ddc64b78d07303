package storage

import (
	"context"
	"fmt"
	"strings"

	"storerate/internal/config"
)

const (
	// TypeLocal stores photos on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores photos in Amazon S3 or an S3-compatible backend.
	TypeS3 = "s3"
)

// Storage persists store photos and returns a storage-relative path that the
// HTTP layer turns into a public URL.
type Storage interface {
	SavePhoto(ctx context.Context, data []byte, storeID uint, ext string) (string, error)
}

// LocalBaseDirProvider is implemented by storage drivers exposing a local
// directory that can be served directly over HTTP.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the configured storage backend.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// photoObjectPath builds the storage-relative path for a store photo. Photos
// are keyed by store so re-uploads stay grouped; the timestamp component is
// added by the backend to keep old URLs resolvable.
func photoObjectPath(storeID uint, nano int64, ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("stores/%d/%d.%s", storeID, nano, ext)
}

// detectContentType maps a photo extension onto its MIME type.
func detectContentType(ext string) string {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
