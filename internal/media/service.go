// Package media ties the cache, source resolution and transform pipeline
// into one deterministic request flow. The derived-asset store is the only
// cache; the service keeps no state between requests.
package media

import (
	"context"
	"strings"

	"github.com/pixelvault/pixelvault/internal/asset"
	"github.com/pixelvault/pixelvault/internal/drivers"
	"github.com/pixelvault/pixelvault/internal/store"
	"github.com/pixelvault/pixelvault/internal/transform"
	"go.uber.org/zap"
)

// Request describes one media rendition request. Nil fields are
// "not requested".
type Request struct {
	Filename string
	Width    *int
	Height   *int
	Format   *asset.Format
}

// hasTransform reports whether the request asks for any transformation at
// all. Without one the original is passed through verbatim and nothing is
// cached.
func (r Request) hasTransform() bool {
	return r.Width != nil || r.Height != nil || r.Format != nil
}

// Rendition is the response payload for a media request.
type Rendition struct {
	Data        []byte
	ContentType string

	// Filename is the derived key, surfaced in Content-Disposition.
	// Empty on pass-through responses.
	Filename string

	CacheHit bool
}

// Service is the cache orchestrator.
type Service struct {
	cache         *store.ObjectStore
	resolver      *Resolver
	engine        *transform.Engine
	defaultSource string
	logger        *zap.Logger
}

// NewService creates the orchestrator. defaultSource substitutes filenames
// that carry no extension before any key or MIME derivation.
func NewService(cache *store.ObjectStore, resolver *Resolver, engine *transform.Engine, defaultSource string, logger *zap.Logger) *Service {
	return &Service{
		cache:         cache,
		resolver:      resolver,
		engine:        engine,
		defaultSource: defaultSource,
		logger:        logger,
	}
}

// Render serves one request: cache hit, else resolve + transform + store.
//
// Flow, in order: validate, derive key, check cache, resolve source,
// pass-through short circuit, transform, best-effort persist, respond.
// On a cache hit neither the resolver nor the transform engine runs.
func (s *Service) Render(ctx context.Context, req Request) (*Rendition, error) {
	if req.Filename == "" {
		return nil, &InvalidRequestError{Reason: "filename is required"}
	}

	name := req.Filename
	if !strings.Contains(name, ".") {
		s.logger.Info("filename has no extension, substituting default source",
			zap.String("filename", name),
			zap.String("default", s.defaultSource))
		name = s.defaultSource
	}

	key, mime := asset.DeriveKey(name, req.Width, req.Height, req.Format)

	if rendition, ok := s.fromCache(ctx, key, mime); ok {
		return rendition, nil
	}

	data, effectiveName, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	// The placeholder took over: every derived attribute, the cache key
	// included, now follows the placeholder name so the response matches a
	// direct request for it.
	if effectiveName != name {
		name = effectiveName
		key, mime = asset.DeriveKey(name, req.Width, req.Height, req.Format)
		if rendition, ok := s.fromCache(ctx, key, mime); ok {
			return rendition, nil
		}
	}

	if !req.hasTransform() {
		return &Rendition{
			Data:        data,
			ContentType: asset.MIMEForExtension(asset.Ext(name)),
		}, nil
	}

	result, err := s.engine.Transform(ctx, data, transform.Options{
		Width:     req.Width,
		Height:    req.Height,
		Format:    req.Format,
		SourceExt: asset.Ext(name),
	})
	if err != nil {
		return nil, err
	}

	// Cache population is best effort: the caller already has a valid
	// result, a failed write must not turn it into an error.
	if err := s.cache.Put(ctx, key, result.Data, result.Format.MIME()); err != nil {
		s.logger.Error("persist derived variant failed",
			zap.String("key", key),
			zap.String("source", name),
			zap.Error(err))
	}

	return &Rendition{
		Data:        result.Data,
		ContentType: result.Format.MIME(),
		Filename:    key,
	}, nil
}

func (s *Service) fromCache(ctx context.Context, key, mime string) (*Rendition, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !drivers.IsNotFound(err) {
			// Any cache read problem degrades to a miss; the source of
			// truth path below still serves the request.
			s.logger.Warn("cache read failed, treating as miss",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}

	s.logger.Debug("cache hit", zap.String("key", key))
	return &Rendition{
		Data:        data,
		ContentType: mime,
		Filename:    key,
		CacheHit:    true,
	}, true
}
