package cpu

import (
	"github.com/Miliox/goteborg/internal/alu"
)

// The accumulator rotates clear the zero flag regardless of the
// result; only their CB-prefixed forms report Z.
func init() {
	DefineInstruction(0x07, "RLCA", func(c *CPU) uint8 {
		c.A, c.F = alu.Rlc(c.F, c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) uint8 {
		c.A, c.F = alu.Rrc(c.F, c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) uint8 {
		c.A, c.F = alu.Rl(c.F, c.A)
		c.clearFlag(FlagZero)
		return 4
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) uint8 {
		c.A, c.F = alu.Rr(c.F, c.A)
		c.clearFlag(FlagZero)
		return 4
	})
}

// rotateOps indexes the CB rows 0x00 - 0x1F.
var rotateOps = [4]struct {
	base  uint8
	name  string
	apply func(fl, v uint8) (uint8, uint8)
}{
	{0x00, "RLC", alu.Rlc},
	{0x08, "RRC", alu.Rrc},
	{0x10, "RL", alu.Rl},
	{0x18, "RR", alu.Rr},
}

func init() {
	for _, op := range rotateOps {
		op := op
		for j := uint8(0); j < 8; j++ {
			if j == 6 {
				DefineInstructionCB(op.base+j, op.name+" (HL)", func(c *CPU) uint8 {
					hl := c.HL.Uint16()
					var v uint8
					v, c.F = op.apply(c.F, c.mmu.Read(hl))
					c.mmu.Write(hl, v)
					return 16
				})
				continue
			}
			j := j
			DefineInstructionCB(op.base+j, op.name+" "+registerNames[j], func(c *CPU) uint8 {
				r := c.registerIndex(j)
				*r, c.F = op.apply(c.F, *r)
				return 8
			})
		}
	}
}
