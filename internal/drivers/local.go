package drivers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalDriver implements the Driver interface on the local filesystem.
// Containers map to directories under basePath. Intended for development
// and tests; production deployments use the S3 or Azure drivers.
type LocalDriver struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalDriver creates a new local filesystem driver.
func NewLocalDriver(basePath string, logger *zap.Logger) *LocalDriver {
	return &LocalDriver{
		basePath: basePath,
		logger:   logger,
	}
}

// Name returns the driver name.
func (d *LocalDriver) Name() string {
	return "local"
}

// Get retrieves an object from a container.
func (d *LocalDriver) Get(ctx context.Context, container, key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(d.basePath, container, key)

	d.logger.Debug("LocalDriver.Get",
		zap.String("container", container),
		zap.String("key", key),
		zap.String("fullPath", fullPath))

	f, err := os.Open(fullPath)
	if os.IsNotExist(err) {
		return nil, ErrNotFound(container, key)
	}
	if err != nil {
		return nil, fmt.Errorf("open object %s/%s: %w", container, key, err)
	}
	return f, nil
}

// Put stores an object in a container. Content type is not persisted; the
// filesystem has nowhere to put it and callers re-derive it from the key.
func (d *LocalDriver) Put(ctx context.Context, container, key string, data io.Reader, contentType string) error {
	fullPath := filepath.Join(d.basePath, container, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
		return fmt.Errorf("create container directory: %w", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write object %s/%s: %w", container, key, err)
	}
	return nil
}

// Exists reports whether an object is present in a container.
func (d *LocalDriver) Exists(ctx context.Context, container, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(d.basePath, container, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat object %s/%s: %w", container, key, err)
	}
	return true, nil
}

// EnsureContainer creates the container directory if missing.
func (d *LocalDriver) EnsureContainer(ctx context.Context, container string) error {
	if err := os.MkdirAll(filepath.Join(d.basePath, container), 0750); err != nil {
		return fmt.Errorf("create container %s: %w", container, err)
	}
	return nil
}
