// Package ppu implements the pixel processing unit: the LCD mode
// state machine scheduled against CPU T-states, and the scanline
// renderer that turns tile maps and OAM entries into the 160x144 RGBA
// framebuffer. The PPU owns the framebuffer and nothing else; tile
// data and sprites are inspected through the MMU.
package ppu

import (
	"github.com/Miliox/goteborg/internal/interrupts"
	"github.com/Miliox/goteborg/internal/types"
)

const (
	// ScreenWidth is the width of the visible display in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the visible display in pixels.
	ScreenHeight = 144
	// FrameDuration is the length of a full frame in T-states:
	// 154 scanlines of 456 T-states each.
	FrameDuration = 70224
)

// LCD modes as reported in the low two bits of STAT.
const (
	ModeHBlank uint8 = 0
	ModeVBlank uint8 = 1
	ModeOAM    uint8 = 2
	ModeVRAM   uint8 = 3
)

// Mode durations in T-states.
const (
	durationHBlank = 204
	durationVBlank = 456 // per VBlank scanline
	durationOAM    = 80
	durationVRAM   = 172
)

// visibleScanlines is the number of rendered scanlines; lastScanline
// is the final VBlank line before LY wraps.
const (
	visibleScanlines = 144
	lastScanline     = 153
)

// Bus is the read-only view the PPU has of the memory map, used to
// inspect tile data, tile maps and OAM.
type Bus interface {
	Read(address uint16) uint8
}

// PPU is the pixel processing unit.
type PPU struct {
	bus Bus
	irq *interrupts.Service

	// LCD registers, 0xFF40 - 0xFF4B
	lcdc uint8
	stat uint8 // enable bits 6..2 and the coincidence flag
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	mode    uint8
	counter uint32

	fb [ScreenWidth * ScreenHeight * 4]uint8

	// BGP-resolved shade of each background pixel on the scanline
	// being built, consulted by sprite priority
	bgShades [ScreenWidth]uint8
}

// New returns a new PPU inspecting memory through the given bus and
// raising interrupts on the given service. The state machine starts
// at LY=0 in OAM scan.
func New(bus Bus, irq *interrupts.Service) *PPU {
	p := &PPU{
		bus:  bus,
		irq:  irq,
		mode: ModeOAM,
	}
	for line := 0; line < ScreenHeight; line++ {
		p.clearScanline(uint8(line))
	}
	return p
}

// Framebuffer borrows the current pixels: 160x144, 4 bytes per pixel
// RGBA, row-major from the top-left. The host should treat it as
// read-only and copy it if it outlives the next frame.
func (p *PPU) Framebuffer() []uint8 {
	return p.fb[:]
}

// Mode returns the current LCD mode.
func (p *PPU) Mode() uint8 {
	return p.mode
}

// Scanline returns the current value of LY.
func (p *PPU) Scanline() uint8 {
	return p.ly
}

// Step advances the mode state machine by t T-states, rendering a
// scanline into the framebuffer at each pixel-transfer exit.
func (p *PPU) Step(t uint8) {
	p.counter += uint32(t)

	for {
		switch p.mode {
		case ModeOAM:
			if p.counter < durationOAM {
				return
			}
			p.counter -= durationOAM
			p.setMode(ModeVRAM)
		case ModeVRAM:
			if p.counter < durationVRAM {
				return
			}
			p.counter -= durationVRAM
			p.renderScanline()
			p.setMode(ModeHBlank)
		case ModeHBlank:
			if p.counter < durationHBlank {
				return
			}
			p.counter -= durationHBlank
			p.setScanline(p.ly + 1)
			if p.ly >= visibleScanlines {
				p.setMode(ModeVBlank)
			} else {
				p.setMode(ModeOAM)
			}
		case ModeVBlank:
			if p.counter < durationVBlank {
				return
			}
			p.counter -= durationVBlank
			p.setScanline(p.ly + 1)
			if p.ly > lastScanline {
				p.setScanline(0)
				p.setMode(ModeOAM)
			}
		}
	}
}

// setMode transitions the state machine, raising the VBlank interrupt
// on mode 1 entry and the LCD STAT interrupt when the matching STAT
// enable bit is set.
func (p *PPU) setMode(mode uint8) {
	p.mode = mode

	switch mode {
	case ModeHBlank:
		if p.stat&types.Bit2 != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeVBlank:
		p.irq.Request(interrupts.VBlankFlag)
		if p.stat&types.Bit4 != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeOAM:
		if p.stat&types.Bit5 != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
}

// setScanline updates LY and the LY=LYC coincidence flag, raising the
// LCD STAT interrupt when the coincidence becomes true with its
// enable bit set.
func (p *PPU) setScanline(line uint8) {
	p.ly = line

	if p.ly == p.lyc {
		coincided := p.stat&types.Bit3 == 0
		p.stat |= types.Bit3
		if coincided && p.stat&types.Bit6 != 0 {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		p.stat &^= types.Bit3
	}
}

// Read returns the value of an LCD register.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.lcdc
	case types.STAT:
		return types.Bit7 | p.stat | p.mode
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}
	return 0xFF
}

// Write sets the value of an LCD register. LY is read-only: writing
// it resets the scanline counter to 0.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		p.lcdc = value
	case types.STAT:
		// only the enable bits (6, 5, 4 and 2) are writable; the
		// coincidence flag stays with the PPU
		p.stat = value&0x74 | p.stat&types.Bit3
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		p.setScanline(0)
	case types.LYC:
		p.lyc = value
		p.setScanline(p.ly) // re-evaluate the coincidence flag
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}
}
