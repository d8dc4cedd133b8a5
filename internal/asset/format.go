package asset

import (
	"fmt"
	"strings"
)

// Format is an output image format supported by the transform pipeline.
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatBMP  Format = "BMP"
	FormatGIF  Format = "GIF"
)

// UnsupportedFormatError reports a format string outside the supported set.
type UnsupportedFormatError struct {
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %q", e.Value)
}

// ParseFormat parses a user-supplied format string into a Format.
// Matching is case-insensitive and "jpg" is treated as an alias for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(s) {
	case "JPEG", "JPG":
		return FormatJPEG, nil
	case "PNG":
		return FormatPNG, nil
	case "BMP":
		return FormatBMP, nil
	case "GIF":
		return FormatGIF, nil
	default:
		return "", &UnsupportedFormatError{Value: s}
	}
}

// MIME returns the MIME type for the format.
func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatGIF:
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

// Ext returns the lowercase file extension used in derived keys.
func (f Format) Ext() string {
	return strings.ToLower(string(f))
}

// MIMEForExtension maps a file extension (without dot, any case) to a MIME
// type. Unrecognized extensions map to application/octet-stream rather than
// erroring; format validation happens later, in the transform pipeline.
func MIMEForExtension(ext string) string {
	f, err := ParseFormat(ext)
	if err != nil {
		return "application/octet-stream"
	}
	return f.MIME()
}
