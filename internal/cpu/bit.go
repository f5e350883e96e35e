package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/alu"
)

// BIT, RES and SET fill the CB table from 0x40 up: 8 bit positions by
// 8 operands per operation.
func init() {
	for n := uint8(0); n < 8; n++ {
		n := n
		for j := uint8(0); j < 8; j++ {
			bitOp := 0x40 + n*8 + j
			resOp := 0x80 + n*8 + j
			setOp := 0xC0 + n*8 + j

			if j == 6 {
				DefineInstructionCB(bitOp, fmt.Sprintf("BIT %d, (HL)", n), func(c *CPU) uint8 {
					c.F = alu.Bit(c.F, n, c.mmu.Read(c.HL.Uint16()))
					return 16
				})
				DefineInstructionCB(resOp, fmt.Sprintf("RES %d, (HL)", n), func(c *CPU) uint8 {
					hl := c.HL.Uint16()
					c.mmu.Write(hl, alu.Res(n, c.mmu.Read(hl)))
					return 16
				})
				DefineInstructionCB(setOp, fmt.Sprintf("SET %d, (HL)", n), func(c *CPU) uint8 {
					hl := c.HL.Uint16()
					c.mmu.Write(hl, alu.Set(n, c.mmu.Read(hl)))
					return 16
				})
				continue
			}

			j := j
			DefineInstructionCB(bitOp, fmt.Sprintf("BIT %d, %s", n, registerNames[j]), func(c *CPU) uint8 {
				c.F = alu.Bit(c.F, n, *c.registerIndex(j))
				return 8
			})
			DefineInstructionCB(resOp, fmt.Sprintf("RES %d, %s", n, registerNames[j]), func(c *CPU) uint8 {
				r := c.registerIndex(j)
				*r = alu.Res(n, *r)
				return 8
			})
			DefineInstructionCB(setOp, fmt.Sprintf("SET %d, %s", n, registerNames[j]), func(c *CPU) uint8 {
				r := c.registerIndex(j)
				*r = alu.Set(n, *r)
				return 8
			})
		}
	}
}
