package cpu

import (
	"github.com/Miliox/goteborg/internal/alu"
)

// SWAP r occupies CB row 0x30 - 0x37.
func init() {
	for j := uint8(0); j < 8; j++ {
		if j == 6 {
			DefineInstructionCB(0x36, "SWAP (HL)", func(c *CPU) uint8 {
				hl := c.HL.Uint16()
				var v uint8
				v, c.F = alu.Swap(c.F, c.mmu.Read(hl))
				c.mmu.Write(hl, v)
				return 16
			})
			continue
		}
		j := j
		DefineInstructionCB(0x30+j, "SWAP "+registerNames[j], func(c *CPU) uint8 {
			r := c.registerIndex(j)
			*r, c.F = alu.Swap(c.F, *r)
			return 8
		})
	}
}
