// Package store binds a storage driver to a single container and exposes a
// byte-oriented object API. Request-handling code works against ObjectStore
// values and never sees container names or driver types.
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pixelvault/pixelvault/internal/drivers"
	"go.uber.org/zap"
)

// ObjectStore is a typed view of one container on a Driver.
type ObjectStore struct {
	driver    drivers.Driver
	container string
	logger    *zap.Logger
}

// New creates an ObjectStore for container on driver.
func New(driver drivers.Driver, container string, logger *zap.Logger) *ObjectStore {
	return &ObjectStore{
		driver:    driver,
		container: container,
		logger:    logger,
	}
}

// Container returns the container name this store is bound to.
func (s *ObjectStore) Container() string {
	return s.container
}

// Get reads the full object under key. Absence surfaces as a
// drivers.NotFoundError.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.driver.Get(ctx, s.container, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object %s/%s: %w", s.container, key, err)
	}
	return data, nil
}

// Put writes data under key with the given content type, overwriting any
// existing object.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return s.driver.Put(ctx, s.container, key, bytes.NewReader(data), contentType)
}

// Exists reports whether key is present.
func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	return s.driver.Exists(ctx, s.container, key)
}

// EnsureContainer provisions the backing container. Run once at startup;
// callers treat failure as non-fatal.
func (s *ObjectStore) EnsureContainer(ctx context.Context) error {
	if err := s.driver.EnsureContainer(ctx, s.container); err != nil {
		return err
	}
	s.logger.Debug("container ready", zap.String("container", s.container))
	return nil
}
