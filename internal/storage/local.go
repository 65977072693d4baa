package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/bjo163/pairlink/config"
)

// LocalStore writes blobs under a directory served as static files. The
// single-binary default; S3 is the deployed backend.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create storage dir")
	}
	return &LocalStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create key dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write blob")
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

// Dir exposes the root so the web server can mount it as a static route.
func (s *LocalStore) Dir() string { return s.dir }
