package asset

import (
	"strconv"
	"strings"
)

// noneToken renders an absent width or height in a derived key. The literal
// "None" keeps keys stable with variants already populated in production
// caches.
const noneToken = "None"

// Ext returns the extension of name (text after the last dot), without the
// dot. Returns "" when name has no extension.
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// DeriveKey computes the canonical cache key and MIME type for a derived
// variant of name. It is a pure function: identical inputs always produce
// the identical key, independent of whether the transform later succeeds.
//
// The key has the shape {base}_{width|None}_{height|None}.{ext} where base
// is name with its extension stripped, and ext is the requested format's
// extension when given, else the source extension lowercased.
func DeriveKey(name string, width, height *int, format *Format) (key, mime string) {
	origExt := Ext(name)
	base := strings.TrimSuffix(name, "."+origExt)

	var outExt string
	if format != nil {
		outExt = format.Ext()
		mime = format.MIME()
	} else {
		outExt = strings.ToLower(origExt)
		mime = MIMEForExtension(origExt)
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('_')
	b.WriteString(dimensionToken(width))
	b.WriteByte('_')
	b.WriteString(dimensionToken(height))
	b.WriteByte('.')
	b.WriteString(outExt)

	return b.String(), mime
}

func dimensionToken(d *int) string {
	if d == nil {
		return noneToken
	}
	return strconv.Itoa(*d)
}
