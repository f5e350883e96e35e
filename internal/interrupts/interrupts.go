package interrupts

import (
	"github.com/Miliox/goteborg/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), requested
	// every time the PPU enters VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD STAT interrupt flag (bit 1), requested on
	// STAT mode transitions and LY=LYC coincidence when the
	// corresponding enable bits of the STAT register are set.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2), requested when
	// TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3). Serial
	// transport is not emulated, but the bit keeps its slot in the
	// priority order.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag = types.Bit4
)

// Service holds the interrupt request and enable registers. Components
// request interrupts by setting bits in the Flag register; the CPU
// services the highest-priority pending interrupt at each instruction
// boundary, priority running from bit 0 (VBlank) down to bit 4
// (Joypad).
type Service struct {
	Flag   uint8 // interrupt request register (types.IF)
	Enable uint8 // interrupt enable register (types.IE)
}

// NewService returns a new Service with no interrupts requested or
// enabled.
func NewService() *Service {
	return &Service{}
}

// HasInterrupts reports whether any interrupt is both requested and
// enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}

// Request requests the given interrupt by setting its bit in the Flag
// register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the vector of the highest-priority interrupt that is
// requested and enabled, clearing its request bit, or 0 when nothing
// is pending.
func (s *Service) Vector() uint16 {
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag ^= flag
			return uint16(0x0040 + uint16(i)*8)
		}
	}
	return 0
}
