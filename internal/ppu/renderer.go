package ppu

import (
	"sort"

	"github.com/Miliox/goteborg/internal/types"
)

// Tile geometry.
const (
	tileWidth   = 8
	tileHeight  = 8
	tileSize    = 16 // two bytes per row
	tilesPerRow = 32
)

// spritesPerLine is the hardware limit of sprites drawn on one
// scanline.
const spritesPerLine = 10

// renderScanline draws the current scanline into the framebuffer:
// background, then window, then sprites.
func (p *PPU) renderScanline() {
	p.clearScanline(p.ly)

	if p.lcdc&types.Bit0 != 0 {
		p.renderBackground()
	}
	if p.lcdc&types.Bit5 != 0 {
		p.renderWindow()
	}
	if p.lcdc&types.Bit1 != 0 {
		p.renderSprites()
	}
}

// clearScanline resets the scanline to the background colour.
func (p *PPU) clearScanline(line uint8) {
	begin := int(line) * ScreenWidth * 4
	for x := 0; x < ScreenWidth; x++ {
		copy(p.fb[begin+x*4:begin+x*4+4], Colours[0][:])
	}
	if line == p.ly {
		for x := range p.bgShades {
			p.bgShades[x] = 0
		}
	}
}

// tileDataAddress resolves a tile index against the selected tile
// data area. With the 0x9000 base the index is signed: indexes >= 128
// reach down into 0x8800 - 0x8FFF.
func (p *PPU) tileDataAddress(index uint8) uint16 {
	if p.lcdc&types.Bit4 != 0 {
		return 0x8000 + uint16(index)*tileSize
	}
	return uint16(0x9000 + int32(int8(index))*tileSize)
}

// tileValue extracts the 2-bit pixel value of the given column from a
// pair of bit-plane bytes.
func tileValue(lo, hi, bit uint8) uint8 {
	return (hi>>bit)&1<<1 | (lo>>bit)&1
}

// renderBackground draws the background layer of the current
// scanline. The 256x256 pixel tile map wraps in both directions.
func (p *PPU) renderBackground() {
	mapBase := uint16(0x9800)
	if p.lcdc&types.Bit3 != 0 {
		mapBase = 0x9C00
	}

	bgY := p.ly + p.scy
	for column := uint8(0); column < ScreenWidth; column++ {
		bgX := column + p.scx

		index := p.bus.Read(mapBase + uint16(bgY/tileHeight)*tilesPerRow + uint16(bgX/tileWidth))
		addr := p.tileDataAddress(index) + uint16(bgY&7)*2

		lo := p.bus.Read(addr)
		hi := p.bus.Read(addr + 1)

		value := tileValue(lo, hi, 7-bgX&7)
		p.setBackgroundPixel(column, resolvePalette(p.bgp, value))
	}
}

// renderWindow draws the window layer: an unscrolled tile map overlay
// whose top-left corner sits at (WX-7, WY).
func (p *PPU) renderWindow() {
	if p.ly < p.wy || p.wx > ScreenWidth+6 {
		return
	}

	mapBase := uint16(0x9800)
	if p.lcdc&types.Bit6 != 0 {
		mapBase = 0x9C00
	}

	winY := p.ly - p.wy
	startX := int(p.wx) - 7
	for column := 0; column < ScreenWidth; column++ {
		if column < startX {
			continue
		}
		winX := uint8(column - startX)

		index := p.bus.Read(mapBase + uint16(winY/tileHeight)*tilesPerRow + uint16(winX/tileWidth))
		addr := p.tileDataAddress(index) + uint16(winY&7)*2

		lo := p.bus.Read(addr)
		hi := p.bus.Read(addr + 1)

		value := tileValue(lo, hi, 7-winX&7)
		p.setBackgroundPixel(uint8(column), resolvePalette(p.bgp, value))
	}
}

// selectSprites walks OAM and returns the sprites covering the
// current scanline, at most spritesPerLine of them, ordered from the
// lowest drawing priority to the highest: lower X wins, ties broken
// by the lower OAM index.
func (p *PPU) selectSprites(height uint8) []Sprite {
	var selected []Sprite
	for i := uint8(0); i < 40 && len(selected) < spritesPerLine; i++ {
		s := p.readSprite(i)
		if s.X < 1 || s.X > ScreenWidth+tileWidth-1 {
			continue
		}
		if s.Y < 1 || s.Y > ScreenHeight-1+height-1 {
			continue
		}
		top := int(s.Y) - 16
		if int(p.ly) < top || int(p.ly) >= top+int(height) {
			continue
		}
		selected = append(selected, s)
	}

	// draw order is the reverse of priority, so the winning sprite
	// lands on top
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].X != selected[j].X {
			return selected[i].X > selected[j].X
		}
		return selected[i].Index > selected[j].Index
	})
	return selected
}

// renderSprites draws the sprite layer of the current scanline.
func (p *PPU) renderSprites() {
	height := uint8(tileHeight)
	if p.lcdc&types.Bit2 != 0 {
		height = 2 * tileHeight
	}

	for _, s := range p.selectSprites(height) {
		row := p.ly - (s.Y - 16)
		if s.FlipY() {
			row = height - 1 - row
		}

		tile := s.Tile
		if height == 2*tileHeight {
			tile &= 0xFE
		}
		addr := 0x8000 + uint16(tile)*tileSize + uint16(row)*2

		lo := p.bus.Read(addr)
		hi := p.bus.Read(addr + 1)

		palette := p.obp0
		if s.UseOBP1() {
			palette = p.obp1
		}

		for px := uint8(0); px < tileWidth; px++ {
			bit := 7 - px
			if s.FlipX() {
				bit = px
			}
			value := tileValue(lo, hi, bit)
			if value == 0 {
				continue // transparent
			}

			x := int(s.X) - 8 + int(px)
			if x < 0 || x >= ScreenWidth {
				continue
			}
			if s.Behind() && p.bgShades[x] != 0 {
				continue
			}
			p.setPixel(uint8(x), resolvePalette(palette, value))
		}
	}
}

// setBackgroundPixel writes a background/window pixel and records its
// shade for sprite priority.
func (p *PPU) setBackgroundPixel(x, shade uint8) {
	p.bgShades[x] = shade
	p.setPixel(x, shade)
}

// setPixel writes one pixel of the current scanline through the fixed
// colour table.
func (p *PPU) setPixel(x, shade uint8) {
	pos := (int(p.ly)*ScreenWidth + int(x)) * 4
	copy(p.fb[pos:pos+4], Colours[shade][:])
}
