package ppu

// Colours is the fixed four-shade RGBA table of the original DMG
// display, indexed by the palette-resolved 2-bit pixel value.
var Colours = [4][4]uint8{
	{0x9B, 0xBC, 0x0F, 0xFF},
	{0x8B, 0xAC, 0x0F, 0xFF},
	{0x30, 0x62, 0x30, 0xFF},
	{0x0F, 0x38, 0x0F, 0xFF},
}

// resolvePalette maps a raw 2-bit pixel value through a palette
// register (BGP, OBP0 or OBP1): each 2-bit field of the register
// selects one of the four shades.
func resolvePalette(reg, value uint8) uint8 {
	return reg >> (value * 2) & 0x3
}
