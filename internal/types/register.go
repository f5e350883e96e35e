package types

// Register represents one of the LR35902's 8-bit registers. The CPU
// has 8 of them: A, B, C, D, E, H, L and F, with F holding the flags.
type Register = uint8

// RegisterPair represents a pair of 8-bit registers addressed as one
// 16-bit word: AF, BC, DE and HL. The pair composes as high<<8 | low.
type RegisterPair struct {
	High *Register
	Low  *Register

	// mask applied to the low register on 16-bit writes. The F
	// register's lower nibble always reads as zero, so the AF pair
	// carries a 0xF0 mask; every other pair uses 0xFF.
	mask uint8
}

// NewRegisterPair returns a RegisterPair over the two given registers.
func NewRegisterPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low, mask: 0xFF}
}

// NewFlagsPair returns a RegisterPair whose low register keeps its
// lower nibble clear, as required of AF.
func NewFlagsPair(high, low *Register) *RegisterPair {
	return &RegisterPair{High: high, Low: low, mask: 0xF0}
}

// Uint16 returns the value of the RegisterPair as a uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.mask
}
