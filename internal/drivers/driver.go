package drivers

import (
	"context"
	"io"
)

// Driver is the common interface all object store backends must implement.
// Containers are logical namespaces (buckets in S3 terms); keys address
// objects within one. Every call is a single attempt, no retries.
type Driver interface {
	Get(ctx context.Context, container, key string) (io.ReadCloser, error)
	Put(ctx context.Context, container, key string, data io.Reader, contentType string) error
	Exists(ctx context.Context, container, key string) (bool, error)

	// EnsureContainer provisions the container if it does not exist.
	// Idempotent; meant to run once at startup, never per request.
	EnsureContainer(ctx context.Context, container string) error
}
