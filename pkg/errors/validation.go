package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasSize bounds each canvas dimension accepted from users.
const MaxCanvasSize = 8192

// ValidateCanvas checks that a requested canvas size is positive, finite and
// within MaxCanvasSize.
func ValidateCanvas(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidCanvas, "canvas %s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidCanvas, "canvas %s must be positive, got %g", d.name, d.v)
		}
		if d.v > MaxCanvasSize {
			return New(ErrCodeInvalidCanvas, "canvas %s %g exceeds %d", d.name, d.v, MaxCanvasSize)
		}
	}
	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateCacheURL validates a shared cache URL. Only redis schemes are
// accepted.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "cache URL must use redis or rediss scheme")
	}

	return nil
}
