package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pixelvault/pixelvault/internal/asset"
	"github.com/pixelvault/pixelvault/internal/media"
	"github.com/pixelvault/pixelvault/internal/transform"
	"go.uber.org/zap"
)

// handleMedia serves GET /media: look up or build the requested derived
// variant and stream it back. Error bodies are plain text.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	req, err := parseMediaRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rendition, err := s.media.Render(r.Context(), req)
	if err != nil {
		s.writeMediaError(w, r, req, err)
		return
	}

	s.metrics.RecordCacheResult(rendition.CacheHit)
	if !rendition.CacheHit && rendition.Filename != "" {
		s.metrics.RecordTransform(rendition.ContentType)
	}

	w.Header().Set("Content-Type", rendition.ContentType)
	if rendition.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", rendition.Filename))
	}
	if rendition.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}

	_, _ = w.Write(rendition.Data)
}

// parseMediaRequest validates query parameters into a media.Request.
func parseMediaRequest(r *http.Request) (media.Request, error) {
	q := r.URL.Query()

	req := media.Request{Filename: q.Get("filename")}
	if req.Filename == "" {
		return req, errors.New("Filename is required.")
	}

	var err error
	if req.Width, err = parseDimension(q.Get("width"), "width"); err != nil {
		return req, err
	}
	if req.Height, err = parseDimension(q.Get("height"), "height"); err != nil {
		return req, err
	}

	if raw := q.Get("format"); raw != "" {
		f, err := asset.ParseFormat(raw)
		if err != nil {
			return req, errors.New("Unsupported format.")
		}
		req.Format = &f
	}

	return req, nil
}

func parseDimension(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &v, nil
}

// writeMediaError maps pipeline errors onto status codes: user-correctable
// problems are 400s, everything else a 500 with a generic body.
func (s *Server) writeMediaError(w http.ResponseWriter, r *http.Request, req media.Request, err error) {
	var (
		invalidReq  *media.InvalidRequestError
		unsupported *asset.UnsupportedFormatError
		unavailable *media.SourceUnavailableError
		decodeErr   *transform.DecodeError
		encodeErr   *transform.EncodeError
	)

	switch {
	case errors.As(err, &invalidReq):
		http.Error(w, "Filename is required.", http.StatusBadRequest)
	case errors.As(err, &unsupported):
		http.Error(w, "Unsupported format.", http.StatusBadRequest)
	case errors.As(err, &unavailable):
		s.logger.Error("source unavailable",
			zap.String("filename", req.Filename),
			zap.String("requestID", RequestIDFromContext(r.Context())),
			zap.Error(err))
		http.Error(w, "Error downloading the image.", http.StatusInternalServerError)
	case errors.As(err, &decodeErr), errors.As(err, &encodeErr):
		s.logger.Error("image processing failed",
			zap.String("filename", req.Filename),
			zap.String("requestID", RequestIDFromContext(r.Context())),
			zap.Error(err))
		http.Error(w, "Error processing the image.", http.StatusInternalServerError)
	default:
		s.logger.Error("media request failed",
			zap.String("filename", req.Filename),
			zap.String("requestID", RequestIDFromContext(r.Context())),
			zap.Error(err))
		http.Error(w, "Error processing the image.", http.StatusInternalServerError)
	}
}
