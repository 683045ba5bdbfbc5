package rom

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/romkit/internal/format"
)

// Header is the decoded GBA cartridge header.
type Header struct {
	Title     string
	GameCode  string
	MakerCode string
	Version   byte
	Licensed  bool // fixed value 0x96 present at 0xB2
}

// Header decodes the cartridge header at offset 0.
func (img *Image) Header() (Header, error) {
	if len(img.data) < format.GBAHeaderSize {
		return Header{}, fmt.Errorf("rom: header: %w", format.ErrTruncated)
	}
	title, err := headerString(img.data, format.GBATitleOffset, format.GBATitleSize)
	if err != nil {
		return Header{}, err
	}
	code, err := headerString(img.data, format.GBAGameCodeOffset, format.GBAGameCodeSize)
	if err != nil {
		return Header{}, err
	}
	maker, err := headerString(img.data, format.GBAMakerCodeOffset, format.GBAMakerCodeSize)
	if err != nil {
		return Header{}, err
	}
	return Header{
		Title:     title,
		GameCode:  code,
		MakerCode: maker,
		Version:   img.data[format.GBAVersionOffset],
		Licensed:  img.data[format.GBAFixedValueOffset] == format.GBAFixedValue,
	}, nil
}

// headerString decodes a NUL-padded Latin-1 field.
func headerString(b []byte, off, n int) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b[off : off+n])
	if err != nil {
		return "", fmt.Errorf("rom: header field at 0x%X: %w", off, err)
	}
	return strings.TrimRight(string(s), "\x00 "), nil
}
