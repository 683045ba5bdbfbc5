package rom

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// WriteBackup writes a zstd-compressed copy of data to w.
func WriteBackup(w io.Writer, data []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("rom: backup: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("rom: backup: %w", err)
	}
	return enc.Close()
}

// ReadBackup decompresses a snapshot written by WriteBackup.
func ReadBackup(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("rom: backup: %w", err)
	}
	defer dec.Close()
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("rom: backup: %w", err)
	}
	return data, nil
}

// Backup writes a zstd snapshot of the image to path.
func (img *Image) Backup(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rom: backup: %w", err)
	}
	if err := WriteBackup(f, img.data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
