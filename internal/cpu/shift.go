package cpu

import (
	"github.com/Miliox/goteborg/internal/alu"
)

// shiftOps indexes the CB rows 0x20 - 0x3F bar SWAP, which lives in
// swap.go.
var shiftOps = [3]struct {
	base  uint8
	name  string
	apply func(fl, v uint8) (uint8, uint8)
}{
	{0x20, "SLA", alu.Sla},
	{0x28, "SRA", alu.Sra},
	{0x38, "SRL", alu.Srl},
}

func init() {
	for _, op := range shiftOps {
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
