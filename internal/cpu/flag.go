package cpu

import "github.com/Miliox/goteborg/internal/alu"

// Flag masks of the F register, re-exported from the ALU so opcode
// bodies and tests read naturally.
const (
	FlagZero      = alu.FlagZ
	FlagSubtract  = alu.FlagN
	FlagHalfCarry = alu.FlagH
	FlagCarry     = alu.FlagC
)

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag uint8) bool {
	return c.F&flag != 0
}

// setFlag sets the given flag in the F register.
func (c *CPU) setFlag(flag uint8) {
	c.F |= flag
}

// clearFlag clears the given flag from the F register.
func (c *CPU) clearFlag(flag uint8) {
	c.F &^= flag
}
