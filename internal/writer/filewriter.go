package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter replaces a file with the image through a temp file and a rename.
type FileWriter struct {
	Path string
	Perm os.FileMode // applied to the new file; 0 keeps the temp file default
}

// WriteROM writes buf to Path. A failed write leaves the old file in place.
func (w *FileWriter) WriteROM(buf []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(w.Path), "."+filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writer: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf); err != nil {
		return fmt.Errorf("writer: write %s: %w", tmpPath, err)
	}
	if w.Perm != 0 {
		if err := tmp.Chmod(w.Perm); err != nil {
			return fmt.Errorf("writer: chmod %s: %w", tmpPath, err)
		}
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("writer: sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writer: close %s: %w", tmpPath, err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writer: rename to %s: %w", w.Path, err)
	}
	return nil
}
