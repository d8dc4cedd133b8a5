package media

import (
	"context"

	"github.com/pixelvault/pixelvault/internal/store"
	"go.uber.org/zap"
)

// Resolver fetches original asset bytes, substituting the placeholder when
// the requested source is absent.
type Resolver struct {
	source      *store.ObjectStore
	placeholder string
	logger      *zap.Logger
}

// NewResolver creates a Resolver over the source store. placeholder is the
// well-known fallback object; it is expected to always exist.
func NewResolver(source *store.ObjectStore, placeholder string, logger *zap.Logger) *Resolver {
	return &Resolver{
		source:      source,
		placeholder: placeholder,
		logger:      logger,
	}
}

// Resolve returns the bytes for name, or the placeholder's bytes when name
// cannot be fetched for any reason. The returned effective name is the
// object the bytes actually came from and drives all downstream extension
// and format inference. When the placeholder itself cannot be fetched,
// Resolve returns a *SourceUnavailableError.
func (r *Resolver) Resolve(ctx context.Context, name string) (data []byte, effectiveName string, err error) {
	data, err = r.source.Get(ctx, name)
	if err == nil {
		return data, name, nil
	}

	r.logger.Warn("source fetch failed, falling back to placeholder",
		zap.String("source", name),
		zap.String("placeholder", r.placeholder),
		zap.Error(err))

	data, err = r.source.Get(ctx, r.placeholder)
	if err != nil {
		r.logger.Error("placeholder fetch failed",
			zap.String("placeholder", r.placeholder),
			zap.Error(err))
		return nil, "", &SourceUnavailableError{Name: name, Err: err}
	}

	return data, r.placeholder, nil
}
