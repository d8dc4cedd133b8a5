package drivers

import (
	"errors"
	"fmt"
)

// NotFoundError reports an object absent from the backing store. All drivers
// translate their backend's flavor of absence into this type so callers can
// branch on it without knowing the backend.
type NotFoundError struct {
	Container string
	Key       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s/%s", e.Container, e.Key)
}

// ErrNotFound constructs a NotFoundError.
func ErrNotFound(container, key string) error {
	return &NotFoundError{Container: container, Key: key}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
