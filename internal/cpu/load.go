package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/alu"
	"github.com/Miliox/goteborg/internal/types"
)

// loadRegister16 loads a 16-bit immediate into the given pair.
func (c *CPU) loadRegister16(reg *types.RegisterPair) {
	reg.SetUint16(c.readOperand16())
}

// LD r, r' and the rest of the load family.
func init() {
	// 0x40 - 0x7F: LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			name := fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src])

			switch {
			case dst == 6:
				src := src
				DefineInstruction(opcode, name, func(c *CPU) uint8 {
					c.mmu.Write(c.HL.Uint16(), *c.registerIndex(src))
					return 8
				})
			case src == 6:
				dst := dst
				DefineInstruction(opcode, name, func(c *CPU) uint8 {
					*c.registerIndex(dst) = c.mmu.Read(c.HL.Uint16())
					return 8
				})
			default:
				dst, src := dst, src
				DefineInstruction(opcode, name, func(c *CPU) uint8 {
					*c.registerIndex(dst) = *c.registerIndex(src)
					return 4
				})
			}
		}
	}

	// 0x06, 0x0E, ... 0x3E: LD r, d8
	for i := uint8(0); i < 8; i++ {
		opcode := 0x06 + i*8
		if i == 6 {
			DefineInstruction(0x36, "LD (HL), d8", func(c *CPU) uint8 {
				c.mmu.Write(c.HL.Uint16(), c.readOperand())
				return 12
			})
			continue
		}
		i := i
		DefineInstruction(opcode, fmt.Sprintf("LD %s, d8", registerNames[i]), func(c *CPU) uint8 {
			*c.registerIndex(i) = c.readOperand()
			return 8
		})
	}

	// 16-bit immediate loads
	DefineInstruction(0x01, "LD BC, d16", func(c *CPU) uint8 {
		c.loadRegister16(c.BC)
		return 12
	})
	DefineInstruction(0x11, "LD DE, d16", func(c *CPU) uint8 {
		c.loadRegister16(c.DE)
		return 12
	})
	DefineInstruction(0x21, "LD HL, d16", func(c *CPU) uint8 {
		c.loadRegister16(c.HL)
		return 12
	})
	DefineInstruction(0x31, "LD SP, d16", func(c *CPU) uint8 {
		c.SP = c.readOperand16()
		return 12
	})

	// indirect stores of A
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) uint8 {
		c.mmu.Write(c.BC.Uint16(), c.A)
		return 8
	})
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) uint8 {
		c.mmu.Write(c.DE.Uint16(), c.A)
		return 8
	})
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) uint8 {
		hl := c.HL.Uint16()
		c.mmu.Write(hl, c.A)
		c.HL.SetUint16(hl + 1)
		return 8
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) uint8 {
		hl := c.HL.Uint16()
		c.mmu.Write(hl, c.A)
		c.HL.SetUint16(hl - 1)
		return 8
	})

	// indirect loads into A
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) uint8 {
		c.A = c.mmu.Read(c.BC.Uint16())
		return 8
	})
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) uint8 {
		c.A = c.mmu.Read(c.DE.Uint16())
		return 8
	})
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) uint8 {
		hl := c.HL.Uint16()
		c.A = c.mmu.Read(hl)
		c.HL.SetUint16(hl + 1)
		return 8
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) uint8 {
		hl := c.HL.Uint16()
		c.A = c.mmu.Read(hl)
		c.HL.SetUint16(hl - 1)
		return 8
	})

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) uint8 {
		addr := c.readOperand16()
		c.mmu.Write(addr, uint8(c.SP))
		c.mmu.Write(addr+1, uint8(c.SP>>8))
		return 20
	})

	// high-page loads
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) uint8 {
		c.mmu.Write(0xFF00+uint16(c.readOperand()), c.A)
		return 12
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) uint8 {
		c.A = c.mmu.Read(0xFF00 + uint16(c.readOperand()))
		return 12
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) uint8 {
		c.mmu.Write(0xFF00+uint16(c.C), c.A)
		return 8
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) uint8 {
		c.A = c.mmu.Read(0xFF00 + uint16(c.C))
		return 8
	})

	// absolute loads
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) uint8 {
		c.mmu.Write(c.readOperand16(), c.A)
		return 16
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) uint8 {
		c.A = c.mmu.Read(c.readOperand16())
		return 16
	})

	// stack pointer transfers
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) uint8 {
		var hl uint16
		hl, c.F = alu.AddSigned(c.F, c.SP, c.readOperand())
		c.HL.SetUint16(hl)
		return 12
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) uint8 {
		c.SP = c.HL.Uint16()
		return 8
	})

	// PUSH / POP
	DefineInstruction(0xC5, "PUSH BC", func(c *CPU) uint8 {
		c.pushStack(c.BC.Uint16())
		return 16
	})
	DefineInstruction(0xD5, "PUSH DE", func(c *CPU) uint8 {
		c.pushStack(c.DE.Uint16())
		return 16
	})
	DefineInstruction(0xE5, "PUSH HL", func(c *CPU) uint8 {
		c.pushStack(c.HL.Uint16())
		return 16
	})
	DefineInstruction(0xF5, "PUSH AF", func(c *CPU) uint8 {
		c.pushStack(c.AF.Uint16())
		return 16
	})
	DefineInstruction(0xC1, "POP BC", func(c *CPU) uint8 {
		c.BC.SetUint16(c.popStack())
		return 12
	})
	DefineInstruction(0xD1, "POP DE", func(c *CPU) uint8 {
		c.DE.SetUint16(c.popStack())
		return 12
	})
	DefineInstruction(0xE1, "POP HL", func(c *CPU) uint8 {
		c.HL.SetUint16(c.popStack())
		return 12
	})
	DefineInstruction(0xF1, "POP AF", func(c *CPU) uint8 {
		// the flags register keeps its low nibble clear
		c.AF.SetUint16(c.popStack())
		return 12
	})
}
