// Package transform decodes image bytes, applies the resize policy and
// re-encodes in the target format.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pixelvault/pixelvault/internal/asset"
	"go.uber.org/zap"
)

// Policy selects the resize behavior. Two variants of this service have
// shipped historically: a shrink-only bounding-box fit and an exact resize
// that allows distortion and upscaling. They are never mixed within one
// request; the policy is fixed at construction.
type Policy string

const (
	// PolicyFit shrinks into the requested bounding box, preserving aspect
	// ratio and never enlarging beyond the original dimensions. Default.
	PolicyFit Policy = "fit"

	// PolicyExact resizes to the literal requested dimensions, allowing
	// distortion and upscaling.
	PolicyExact Policy = "exact"
)

// ParsePolicy parses a policy name from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", string(PolicyFit):
		return PolicyFit, nil
	case string(PolicyExact):
		return PolicyExact, nil
	default:
		return "", fmt.Errorf("unknown resize policy: %q", s)
	}
}

// Options are the transform parameters for one request. Nil dimensions are
// "not requested". SourceExt is the effective source's extension, used to
// resolve the output format when Format is nil.
type Options struct {
	Width     *int
	Height    *int
	Format    *asset.Format
	SourceExt string
}

// Result is a transformed image.
type Result struct {
	Data   []byte
	Format asset.Format
	Width  int
	Height int
}

// Engine applies resize and re-encode operations under one fixed policy.
type Engine struct {
	policy Policy
	logger *zap.Logger
}

// NewEngine creates a transform engine.
func NewEngine(policy Policy, logger *zap.Logger) *Engine {
	return &Engine{
		policy: policy,
		logger: logger,
	}
}

// Transform decodes data, resizes it per the engine policy and re-encodes
// it in the resolved output format. Decode failures surface as *DecodeError,
// unknown formats as *asset.UnsupportedFormatError, encode failures as
// *EncodeError.
func (e *Engine) Transform(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	img = e.resize(img, origW, origH, opts.Width, opts.Height)

	format, err := resolveFormat(opts.Format, opts.SourceExt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imagingFormat(format)); err != nil {
		return nil, &EncodeError{Format: string(format), Err: err}
	}

	out := img.Bounds()
	e.logger.Debug("transformed image",
		zap.Int("originalWidth", origW),
		zap.Int("originalHeight", origH),
		zap.Int("width", out.Dx()),
		zap.Int("height", out.Dy()),
		zap.String("format", string(format)))

	return &Result{
		Data:   buf.Bytes(),
		Format: format,
		Width:  out.Dx(),
		Height: out.Dy(),
	}, nil
}

// resize applies the geometry policy. A single missing dimension is computed
// from the original aspect ratio before the policy is applied; with neither
// dimension the image passes through untouched.
func (e *Engine) resize(img image.Image, origW, origH int, width, height *int) image.Image {
	if width == nil && height == nil {
		return img
	}

	var w, h int
	switch {
	case width != nil && height != nil:
		w, h = *width, *height
	case width != nil:
		w = *width
		h = int(math.Round(float64(origH) * float64(w) / float64(origW)))
	default:
		h = *height
		w = int(math.Round(float64(origW) * float64(h) / float64(origH)))
	}

	if e.policy == PolicyExact {
		return imaging.Resize(img, w, h, imaging.Lanczos)
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}

// resolveFormat picks the output format: the explicit request wins, else the
// source extension must itself name a supported format.
func resolveFormat(requested *asset.Format, sourceExt string) (asset.Format, error) {
	if requested != nil {
		return *requested, nil
	}
	return asset.ParseFormat(sourceExt)
}

func imagingFormat(f asset.Format) imaging.Format {
	switch f {
	case asset.FormatPNG:
		return imaging.PNG
	case asset.FormatBMP:
		return imaging.BMP
	case asset.FormatGIF:
		return imaging.GIF
	default:
		return imaging.JPEG
	}
}
