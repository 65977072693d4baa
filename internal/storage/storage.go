// Package storage persists uploaded photos and backgrounds behind a small
// blob interface with S3 and local-disk backends.
package storage

import (
	"context"
	"fmt"

	"github.com/bjo163/pairlink/config"
)

// BlobStore writes an object and returns its public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// New builds the blob store named by the config.
func New(cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Store(cfg)
	case "local", "":
		return NewLocalStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
