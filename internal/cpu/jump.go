package cpu

import (
	"fmt"
)

// jumpRelative applies a signed 8-bit offset to PC. PC has already
// advanced past the offset byte; the arithmetic widens to 32 bits
// before truncating back to 16.
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
}

// call pushes the address of the next instruction and jumps.
func (c *CPU) call(address uint16) {
	c.pushStack(c.PC)
	c.PC = address
}

// conditions indexes the cc operand field: NZ, Z, NC, C.
var conditions = [4]struct {
	name string
	met  func(c *CPU) bool
}{
	{"NZ", func(c *CPU) bool { return !c.isFlagSet(FlagZero) }},
	{"Z", func(c *CPU) bool { return c.isFlagSet(FlagZero) }},
	{"NC", func(c *CPU) bool { return !c.isFlagSet(FlagCarry) }},
	{"C", func(c *CPU) bool { return c.isFlagSet(FlagCarry) }},
}

func init() {
	// unconditional control transfers
	DefineInstruction(0xC3, "JP a16", func(c *CPU) uint8 {
		c.PC = c.readOperand16()
		return 16
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) uint8 {
		c.PC = c.HL.Uint16()
		return 4
	})
	DefineInstruction(0x18, "JR r8", func(c *CPU) uint8 {
		c.jumpRelative(c.readOperand())
		return 12
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) uint8 {
		c.call(c.readOperand16())
		return 24
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) uint8 {
		c.PC = c.popStack()
		return 16
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) uint8 {
		c.PC = c.popStack()
		c.ime = true
		return 16
	})

	// conditional control transfers; the not-taken path still
	// consumes the operand bytes
	for i, cond := range conditions {
		i, cond := uint8(i), cond

		DefineInstruction(0xC2+i*8, "JP "+cond.name+", a16", func(c *CPU) uint8 {
			addr := c.readOperand16()
			if cond.met(c) {
				c.PC = addr
				return 16
			}
			return 12
		})
		DefineInstruction(0x20+i*8, "JR "+cond.name+", r8", func(c *CPU) uint8 {
			offset := c.readOperand()
			if cond.met(c) {
				c.jumpRelative(offset)
				return 12
			}
			return 8
		})
		DefineInstruction(0xC4+i*8, "CALL "+cond.name+", a16", func(c *CPU) uint8 {
			addr := c.readOperand16()
			if cond.met(c) {
				c.call(addr)
				return 24
			}
			return 12
		})
		DefineInstruction(0xC0+i*8, "RET "+cond.name, func(c *CPU) uint8 {
			if cond.met(c) {
				c.PC = c.popStack()
				return 20
			}
			return 8
		})
	}

	// RST n: CALL to a fixed low-page vector
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) * 8
		DefineInstruction(0xC7+i*8, fmt.Sprintf("RST %02XH", vector), func(c *CPU) uint8 {
			c.call(vector)
			return 16
		})
	}
}
