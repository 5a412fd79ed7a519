// Package instancestore provides the object-storage abstraction used to
// fetch Brandimarte-format instance files shared across a research
// cluster, plus a local filesystem cache in front of it.
package instancestore

import (
	"context"
	"fmt"
	"io"

	"github.com/fjss-ccgp/ccgp/pkg/config"
)

// Storage defines the interface for retrieving and publishing instance
// files, independent of backend.
type Storage interface {
	// Upload uploads data from reader to the specified key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// UploadFile uploads a local file to the specified key.
	UploadFile(ctx context.Context, key string, localPath string) error

	// Download downloads data from the specified key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile downloads data from the specified key to a local file.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete deletes the object at the specified key.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the URL for the specified key (if applicable).
	GetURL(key string) string
}

// StorageType represents the type of storage backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeCOS   StorageType = "cos"
)

// NewStorage creates a new Storage instance based on the configuration.
// Any type other than cos falls back to the local backend.
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	if StorageType(cfg.Type) != StorageTypeCOS {
		cfg.Type = string(StorageTypeLocal)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	switch StorageType(cfg.Type) {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeCOS:
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	default:
		return NewLocalStorage(cfg.LocalPath)
	}
}

// ValidateConfig validates the storage configuration.
func ValidateConfig(cfg config.StorageConfig) error {
	storageType := StorageType(cfg.Type)

	if storageType == "" {
		storageType = StorageTypeLocal
	}

	if storageType != StorageTypeCOS && storageType != StorageTypeLocal {
		return fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	if storageType == StorageTypeCOS {
		if cfg.Bucket == "" {
			return fmt.Errorf("COS bucket is required")
		}
		if cfg.Region == "" {
			return fmt.Errorf("COS region is required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return fmt.Errorf("COS credentials are required")
		}
	}

	if storageType == StorageTypeLocal {
		if cfg.LocalPath == "" {
			return fmt.Errorf("local storage path is required")
		}
	}

	return nil
}

// EnsureLocal guarantees that key is present at localPath, downloading it
// from store first if it is missing. It lets internal/problem load an
// instance file by name without caring whether the backing store is the
// local filesystem or a shared object store.
func EnsureLocal(ctx context.Context, store Storage, key, localPath string) error {
	exists, err := pathExists(localPath)
	if err != nil {
		return fmt.Errorf("failed to check cache path: %w", err)
	}
	if exists {
		return nil
	}
	if err := store.DownloadFile(ctx, key, localPath); err != nil {
		return fmt.Errorf("failed to populate instance cache for %s: %w", key, err)
	}
	return nil
}
