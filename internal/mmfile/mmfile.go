// Package mmfile provides platform-specific helpers for mapping ROM files
// read-only. Callers copy what they need and release the mapping promptly.
package mmfile

import "errors"

// ErrTooLarge indicates a file above the caller's size limit.
var ErrTooLarge = errors.New("mmfile: file too large")
