// Package writer exposes sinks for whole ROM images.
package writer

// Writer receives a complete image.
type Writer interface {
	WriteROM(buf []byte) error
}
