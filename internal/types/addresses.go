package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO registers are
// mapped to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the joypad register. The lower
	// nibble reports the state of the selected button group;
	// input handling itself lives outside the core, so the
	// MMU models P1 as a plain byte with the unused upper
	// bits reading high.
	P1 HardwareAddress = 0xFF00
	// DIV is the address of the divider register. It is
	// incremented at a rate of 16384Hz, and writing any
	// value to it resets it to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the timer counter register. It
	// is incremented at the rate selected by TAC, and on
	// overflow it is reloaded from TMA and a timer interrupt
	// is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the timer modulo register, the
	// value loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the timer control register.
	//
	//	Bit 2   - Timer Enable
	//	Bit 1-0 - Input Clock Select
	//	          00: 4096Hz  01: 262144Hz  10: 65536Hz  11: 16384Hz
	TAC HardwareAddress = 0xFF07
	// IF is the address of the interrupt flag register. Each of
	// the lower 5 bits requests one interrupt source.
	//
	//	Bit 0: VBlank   (INT 0x40)
	//	Bit 1: LCD STAT (INT 0x48)
	//	Bit 2: Timer    (INT 0x50)
	//	Bit 3: Serial   (INT 0x58)
	//	Bit 4: Joypad   (INT 0x60)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCD control register.
	//
	//	Bit 7 - LCD Display Enable
	//	Bit 6 - Window Tile Map Select   (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 5 - Window Display Enable
	//	Bit 4 - BG & Window Tile Data    (0=8800-97FF, 1=8000-8FFF)
	//	Bit 3 - BG Tile Map Select       (0=9800-9BFF, 1=9C00-9FFF)
	//	Bit 2 - Sprite Size              (0=8x8, 1=8x16)
	//	Bit 1 - Sprite Display Enable
	//	Bit 0 - BG Display Enable
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the LCD status register.
	//
	//	Bit 6 - LYC=LY Coincidence Interrupt Enable
	//	Bit 5 - Mode 2 OAM Interrupt Enable
	//	Bit 4 - Mode 1 VBlank Interrupt Enable
	//	Bit 3 - LYC=LY Coincidence Flag (read-only)
	//	Bit 2 - Mode 0 HBlank Interrupt Enable
	//	Bit 1-0 - Mode Flag (read-only)
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the background scroll Y register.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the background scroll X register.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the current scanline register. It is
	// read-only from the CPU side; a CPU write resets the PPU
	// scanline counter to 0.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the scanline compare register.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the OAM DMA control register. Writing
	// a value v starts a 160 byte transfer from v<<8 to OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the background palette register.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the first sprite palette register.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the second sprite palette register.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the window position Y register.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the window position X register. The
	// window's leftmost on-screen column is WX-7.
	WX HardwareAddress = 0xFF4B
	// BDIS is the address of the BIOS disable register. While it
	// reads 0, the BIOS overlays 0x0000-0x00FF; writing any value
	// with bit 0 set unmaps the BIOS for the remainder of the run.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
