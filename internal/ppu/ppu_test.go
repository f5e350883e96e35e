package ppu

import (
	"testing"

	"github.com/cespare/xxhash"

	"github.com/Miliox/goteborg/internal/interrupts"
	"github.com/Miliox/goteborg/internal/types"
)

// flatBus backs the PPU with a flat 64k array in place of the MMU.
type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read(address uint16) uint8 {
	return b.mem[address]
}

func testPPU() (*PPU, *flatBus, *interrupts.Service) {
	bus := &flatBus{}
	irq := interrupts.NewService()
	return New(bus, irq), bus, irq
}

func step(p *PPU, t uint32) {
	for t > 0 {
		n := t
		if n > 255 {
			n = 255
		}
		p.Step(uint8(n))
		t -= n
	}
}

func TestModeStateMachine(t *testing.T) {
	p, _, _ := testPPU()

	if p.Mode() != ModeOAM || p.Scanline() != 0 {
		t.Fatalf("Expected to start at LY=0 in OAM scan, got LY=%d mode=%d", p.Scanline(), p.Mode())
	}

	p.Step(79)
	if p.Mode() != ModeOAM {
		t.Errorf("Expected OAM scan after 79 ticks, got mode %d", p.Mode())
	}
	p.Step(1)
	if p.Mode() != ModeVRAM {
		t.Errorf("Expected pixel transfer after 80 ticks, got mode %d", p.Mode())
	}
	p.Step(172)
	if p.Mode() != ModeHBlank {
		t.Errorf("Expected HBlank after 252 ticks, got mode %d", p.Mode())
	}
	p.Step(204)
	if p.Mode() != ModeOAM || p.Scanline() != 1 {
		t.Errorf("Expected LY=1 OAM scan after 456 ticks, got LY=%d mode=%d", p.Scanline(), p.Mode())
	}
}

func TestVBlankEntry(t *testing.T) {
	p, _, irq := testPPU()

	step(p, 456*visibleScanlines)
	if p.Mode() != ModeVBlank || p.Scanline() != visibleScanlines {
		t.Errorf("Expected LY=144 VBlank, got LY=%d mode=%d", p.Scanline(), p.Mode())
	}
	if irq.Flag&interrupts.VBlankFlag == 0 {
		t.Error("Expected the VBlank interrupt to be requested")
	}
}

// After exactly 70224 T-states the machine is back at LY=0 in OAM
// scan, and VBlank was requested exactly once.
func TestFrameDuration(t *testing.T) {
	p, _, irq := testPPU()

	step(p, 456*visibleScanlines)
	if irq.Flag&interrupts.VBlankFlag == 0 {
		t.Fatal("Expected the VBlank interrupt at line 144")
	}
	irq.Flag = 0

	step(p, FrameDuration-456*visibleScanlines)
	if p.Mode() != ModeOAM || p.Scanline() != 0 {
		t.Errorf("Expected LY=0 OAM scan after a full frame, got LY=%d mode=%d", p.Scanline(), p.Mode())
	}
	if irq.Flag&interrupts.VBlankFlag != 0 {
		t.Error("Expected no second VBlank request within the same frame")
	}
}

func TestSTATModeInterrupts(t *testing.T) {
	p, _, irq := testPPU()
	p.Write(types.STAT, types.Bit5) // interrupt on OAM entry

	p.Step(80)  // -> VRAM
	p.Step(172) // -> HBlank
	if irq.Flag&interrupts.LCDFlag != 0 {
		t.Error("Expected no STAT interrupt for HBlank with only bit 5 set")
	}
	p.Step(204) // -> OAM, line 1
	if irq.Flag&interrupts.LCDFlag == 0 {
		t.Error("Expected a STAT interrupt on OAM entry")
	}
}

func TestSTATHBlankInterrupt(t *testing.T) {
	p, _, irq := testPPU()
	p.Write(types.STAT, types.Bit2) // interrupt on HBlank entry

	if v := p.Read(types.STAT); v&types.Bit2 == 0 {
		t.Fatalf("Expected bit 2 to be writable, STAT reads %#02x", v)
	}

	p.Step(80) // -> VRAM
	if irq.Flag&interrupts.LCDFlag != 0 {
		t.Error("Expected no STAT interrupt before HBlank")
	}
	p.Step(172) // -> HBlank
	if irq.Flag&interrupts.LCDFlag == 0 {
		t.Error("Expected a STAT interrupt on HBlank entry")
	}
}

// The coincidence flag is read-only from the CPU side.
func TestSTATCoincidenceNotWritable(t *testing.T) {
	p, _, _ := testPPU()
	p.Write(types.LYC, 5) // LY=0, no coincidence

	p.Write(types.STAT, types.Bit3)
	if v := p.Read(types.STAT); v&types.Bit3 != 0 {
		t.Errorf("Expected bit 3 to be unwritable, STAT reads %#02x", v)
	}
}

func TestCoincidence(t *testing.T) {
	p, _, irq := testPPU()
	p.Write(types.LYC, 2)
	p.Write(types.STAT, types.Bit6)

	step(p, 456)
	if p.Read(types.STAT)&types.Bit3 != 0 {
		t.Error("Expected the coincidence flag to be clear at LY=1")
	}
	step(p, 456)
	if p.Read(types.STAT)&types.Bit3 == 0 {
		t.Error("Expected the coincidence flag to be set at LY=2")
	}
	if irq.Flag&interrupts.LCDFlag == 0 {
		t.Error("Expected a STAT interrupt when the coincidence became true")
	}
}

func TestScanlineWriteResets(t *testing.T) {
	p, _, _ := testPPU()
	step(p, 456*5)
	if p.Scanline() != 5 {
		t.Fatalf("Expected LY=5, got %d", p.Scanline())
	}
	p.Write(types.LY, 0x99)
	if p.Scanline() != 0 {
		t.Errorf("Expected a CPU write to reset LY to 0, got %d", p.Scanline())
	}
}

func pixel(p *PPU, x, y int) [4]uint8 {
	var px [4]uint8
	copy(px[:], p.Framebuffer()[(y*ScreenWidth+x)*4:])
	return px
}

func TestRenderBackground(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 0: all pixels colour 1
	for row := 0; row < 8; row++ {
		bus.mem[0x8000+row*2] = 0xFF
		bus.mem[0x8000+row*2+1] = 0x00
	}
	// the tile map is already all zeroes, pointing every cell at
	// tile 0
	p.Write(types.LCDC, types.Bit0|types.Bit4)
	p.Write(types.BGP, 0b11100100)

	p.Step(80)
	p.Step(172) // renders line 0

	if got := pixel(p, 0, 0); got != Colours[1] {
		t.Errorf("Expected colour 1 at (0,0), got %v", got)
	}
	if got := pixel(p, 159, 0); got != Colours[1] {
		t.Errorf("Expected colour 1 at (159,0), got %v", got)
	}
	// line 1 has not been rendered yet
	if got := pixel(p, 0, 1); got != Colours[0] {
		t.Errorf("Expected the background colour at (0,1), got %v", got)
	}
}

// With the 0x9000 tile data base, indexes >= 128 are signed offsets
// reaching down into 0x8800.
func TestRenderBackgroundSignedTiles(t *testing.T) {
	p, bus, _ := testPPU()

	for row := 0; row < 8; row++ {
		bus.mem[0x8800+row*2] = 0x00
		bus.mem[0x8800+row*2+1] = 0xFF // colour 2
	}
	for i := 0; i < 32; i++ {
		bus.mem[0x9800+i] = 0x80 // tile -128
	}
	p.Write(types.LCDC, types.Bit0) // signed tile data
	p.Write(types.BGP, 0b11100100)

	p.Step(252)

	if got := pixel(p, 0, 0); got != Colours[2] {
		t.Errorf("Expected colour 2 at (0,0), got %v", got)
	}
}

func TestRenderBackgroundScroll(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 1 is solid colour 3; the map points column 8.. at it
	for row := 0; row < 8; row++ {
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
	}
	bus.mem[0x9800+1] = 0x01
	p.Write(types.LCDC, types.Bit0|types.Bit4)
	p.Write(types.BGP, 0b11100100)
	p.Write(types.SCX, 8)

	p.Step(252)

	// scrolling by one tile brings tile 1 to the left edge
	if got := pixel(p, 0, 0); got != Colours[3] {
		t.Errorf("Expected colour 3 at (0,0) with SCX=8, got %v", got)
	}
	if got := pixel(p, 8, 0); got != Colours[0] {
		t.Errorf("Expected colour 0 at (8,0) with SCX=8, got %v", got)
	}
}

func TestRenderWindow(t *testing.T) {
	p, bus, _ := testPPU()

	// window map (0x9C00) points at tile 1, solid colour 3
	for row := 0; row < 8; row++ {
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
	}
	for i := 0; i < 32; i++ {
		bus.mem[0x9C00+i] = 0x01
	}
	p.Write(types.LCDC, types.Bit0|types.Bit4|types.Bit5|types.Bit6)
	p.Write(types.BGP, 0b11100100)
	p.Write(types.WY, 0)
	p.Write(types.WX, 87) // window starts at column 80

	p.Step(252)

	if got := pixel(p, 79, 0); got != Colours[0] {
		t.Errorf("Expected the background left of the window, got %v", got)
	}
	if got := pixel(p, 80, 0); got != Colours[3] {
		t.Errorf("Expected the window tile at (80,0), got %v", got)
	}
}

func writeSprite(bus *flatBus, index int, y, x, tile, flags uint8) {
	base := 0xFE00 + index*4
	bus.mem[base] = y
	bus.mem[base+1] = x
	bus.mem[base+2] = tile
	bus.mem[base+3] = flags
}

func TestRenderSprites(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 1: solid colour 3
	for row := 0; row < 8; row++ {
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
	}
	writeSprite(bus, 0, 16, 8, 0x01, 0) // top-left corner
	p.Write(types.LCDC, types.Bit1)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 0, 0); got != Colours[3] {
		t.Errorf("Expected the sprite at (0,0), got %v", got)
	}
	if got := pixel(p, 7, 0); got != Colours[3] {
		t.Errorf("Expected the sprite at (7,0), got %v", got)
	}
	if got := pixel(p, 8, 0); got != Colours[0] {
		t.Errorf("Expected the background at (8,0), got %v", got)
	}
}

// Transparent sprite pixels (colour 0) leave the background alone.
func TestSpriteTransparency(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 1 row 0: left half colour 3, right half colour 0
	bus.mem[0x8010] = 0xF0
	bus.mem[0x8011] = 0xF0
	writeSprite(bus, 0, 16, 8, 0x01, 0)
	p.Write(types.LCDC, types.Bit1)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 0, 0); got != Colours[3] {
		t.Errorf("Expected the sprite at (0,0), got %v", got)
	}
	if got := pixel(p, 4, 0); got != Colours[0] {
		t.Errorf("Expected transparency at (4,0), got %v", got)
	}
}

// Among overlapping sprites the lower X coordinate wins.
func TestSpritePriority(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 1: colour 3; tile 2: colour 1
	for row := 0; row < 8; row++ {
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
		bus.mem[0x8020+row*2] = 0xFF
	}
	writeSprite(bus, 0, 16, 12, 0x01, 0) // covers x 4..11
	writeSprite(bus, 1, 16, 8, 0x02, 0)  // covers x 0..7, lower X
	p.Write(types.LCDC, types.Bit1)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 4, 0); got != Colours[1] {
		t.Errorf("Expected the lower-X sprite to win at (4,0), got %v", got)
	}
	if got := pixel(p, 8, 0); got != Colours[3] {
		t.Errorf("Expected the higher-X sprite at (8,0), got %v", got)
	}
}

// A sprite flagged behind the background shows only where the
// background pixel is colour 0.
func TestSpriteBehindBackground(t *testing.T) {
	p, bus, _ := testPPU()

	// background tile 0: colour 2; tile 1 (sprite): colour 3
	for row := 0; row < 8; row++ {
		bus.mem[0x8000+row*2+1] = 0xFF
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
	}
	writeSprite(bus, 0, 16, 8, 0x01, types.Bit7)
	p.Write(types.LCDC, types.Bit0|types.Bit1|types.Bit4)
	p.Write(types.BGP, 0b11100100)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 0, 0); got != Colours[2] {
		t.Errorf("Expected the background to keep priority, got %v", got)
	}
}

func TestSpriteFlip(t *testing.T) {
	p, bus, _ := testPPU()

	// tile 1 row 0: only the leftmost pixel set
	bus.mem[0x8010] = 0x80
	bus.mem[0x8011] = 0x80
	writeSprite(bus, 0, 16, 8, 0x01, types.Bit5) // flip-X
	p.Write(types.LCDC, types.Bit1)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 0, 0); got != Colours[0] {
		t.Errorf("Expected (0,0) to be empty with flip-X, got %v", got)
	}
	if got := pixel(p, 7, 0); got != Colours[3] {
		t.Errorf("Expected the flipped pixel at (7,0), got %v", got)
	}
}

func TestSpritesPerLineLimit(t *testing.T) {
	p, bus, _ := testPPU()

	for row := 0; row < 8; row++ {
		bus.mem[0x8010+row*2] = 0xFF
		bus.mem[0x8010+row*2+1] = 0xFF
	}
	// 11 sprites side by side on line 0; the 11th must be dropped
	for i := 0; i < 11; i++ {
		writeSprite(bus, i, 16, uint8(8+i*8), 0x01, 0)
	}
	p.Write(types.LCDC, types.Bit1)
	p.Write(types.OBP0, 0b11100100)

	p.Step(252)

	if got := pixel(p, 9*8, 0); got != Colours[3] {
		t.Errorf("Expected the 10th sprite to be drawn, got %v", got)
	}
	if got := pixel(p, 10*8, 0); got != Colours[0] {
		t.Errorf("Expected the 11th sprite to be dropped, got %v", got)
	}
}

// Identical video memory renders identical frames; the hash only
// moves when the tile data does.
func TestFramebufferHash(t *testing.T) {
	render := func(tileLow uint8) uint64 {
		p, bus, _ := testPPU()
		for row := 0; row < 8; row++ {
			bus.mem[0x8000+row*2] = tileLow
		}
		p.Write(types.LCDC, types.Bit0|types.Bit4)
		p.Write(types.BGP, 0b11100100)
		step(p, FrameDuration)
		return xxhash.Sum64(p.Framebuffer())
	}

	if render(0xFF) != render(0xFF) {
		t.Error("Expected identical frames to hash identically")
	}
	if render(0xFF) == render(0x0F) {
		t.Error("Expected different tile data to change the frame hash")
	}
}
