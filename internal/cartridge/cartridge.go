// Package cartridge provides the flat ROM cartridge model: a read-only
// image mapped at 0x0000 - 0x7FFF with no bank controller. Memory bank
// controllers (MBC1/2/3/5) are deliberately not modeled.
package cartridge

import (
	"fmt"
)

// BankSize is the granularity of a cartridge image. A flat cartridge
// is one or more 32 KiB banks, of which only the first is addressable.
const BankSize = 0x8000

// Cartridge represents a cartridge ROM image together with its parsed
// header.
type Cartridge struct {
	rom    []byte
	header Header
}

// Load validates and wraps a cartridge image. The image must be a
// non-zero multiple of 32 KiB.
func Load(rom []byte) (*Cartridge, error) {
	if len(rom) == 0 {
		return nil, fmt.Errorf("cartridge: empty image")
	}
	if len(rom)%BankSize != 0 {
		return nil, fmt.Errorf("cartridge: invalid image length: %d (expected a multiple of %#x)", len(rom), BankSize)
	}

	return &Cartridge{
		rom:    rom,
		header: parseHeader(rom),
	}, nil
}

// Read returns the ROM byte at the given address. Addresses beyond
// the end of the image (0x8000 and up for a single-bank image) read
// as 0xFF, matching an open bus.
func (c *Cartridge) Read(addr uint16) uint8 {
	if int(addr) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[addr]
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Logo returns the logo bitmap from the cartridge header, compared
// against the BIOS copy during reset.
func (c *Cartridge) Logo() []byte {
	return c.rom[LogoStart:LogoEnd]
}
