package ppu

import "github.com/Miliox/goteborg/internal/types"

// oamBase is the address of the first OAM entry.
const oamBase = 0xFE00

// Sprite is one decoded 4-byte OAM entry. The stored coordinates are
// offset so that partially visible sprites keep positive values: the
// on-screen position is (X-8, Y-16).
type Sprite struct {
	Y     uint8 // raw OAM byte 0, screen row + 16
	X     uint8 // raw OAM byte 1, screen column + 8
	Tile  uint8 // tile index; in 8x16 mode the low bit is ignored
	Flags uint8 // attribute flags
	Index uint8 // position in OAM, breaks priority ties
}

// Attribute flag accessors.

// Behind reports whether the background keeps priority over this
// sprite wherever the background pixel is not colour 0.
func (s Sprite) Behind() bool { return s.Flags&types.Bit7 != 0 }

// FlipY reports whether the tile rows are mirrored vertically.
func (s Sprite) FlipY() bool { return s.Flags&types.Bit6 != 0 }

// FlipX reports whether the tile columns are mirrored horizontally.
func (s Sprite) FlipX() bool { return s.Flags&types.Bit5 != 0 }

// UseOBP1 reports whether the sprite resolves through OBP1 instead of
// OBP0.
func (s Sprite) UseOBP1() bool { return s.Flags&types.Bit4 != 0 }

// readSprite decodes the OAM entry at the given index.
func (p *PPU) readSprite(index uint8) Sprite {
	addr := uint16(oamBase) + uint16(index)*4
	return Sprite{
		Y:     p.bus.Read(addr),
		X:     p.bus.Read(addr + 1),
		Tile:  p.bus.Read(addr + 2),
		Flags: p.bus.Read(addr + 3),
		Index: index,
	}
}
