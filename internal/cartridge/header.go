package cartridge

import (
	"fmt"
	"strings"
)

// Header layout constants. The header occupies 0x0100 - 0x014F of
// every cartridge image.
const (
	LogoStart  = 0x0104
	LogoEnd    = 0x0134
	titleStart = 0x0134
	titleEnd   = 0x0144
)

// Header represents the cartridge header located at 0x0100 - 0x014F.
type Header struct {
	// Title of the game, up to 16 bytes of upper-case ASCII.
	Title string

	// CartridgeType identifies the bank controller the game expects.
	// Only 0x00 (ROM only) runs on the flat model; other values are
	// reported but not honored.
	CartridgeType uint8

	// ROMSize is the declared ROM size in bytes.
	ROMSize uint

	// HeaderChecksum is the declared checksum over 0x0134 - 0x014C.
	HeaderChecksum uint8
}

// parseHeader parses the header fields out of a ROM image. Images
// shorter than the header area yield a zero Header; Load never passes
// one, since it accepts only whole 32 KiB banks.
func parseHeader(rom []byte) Header {
	if len(rom) < 0x0150 {
		return Header{}
	}

	h := Header{
		CartridgeType:  rom[0x0147],
		ROMSize:        uint(32*1024) << rom[0x0148],
		HeaderChecksum: rom[0x014D],
	}

	title := rom[titleStart:titleEnd]
	if i := strings.IndexByte(string(title), 0); i >= 0 {
		title = title[:i]
	}
	h.Title = string(title)

	return h
}

// String implements fmt.Stringer, producing the window-title banner.
func (h Header) String() string {
	if h.Title == "" {
		return "Unknown"
	}
	return fmt.Sprintf("%s (%d KiB)", h.Title, h.ROMSize/1024)
}
