package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/alu"
	"github.com/Miliox/goteborg/internal/types"
)

// aluOp describes one row of the accumulator arithmetic family:
// 0x80-0xBF for the register forms plus one immediate form each.
type aluOp struct {
	name      string
	immOpcode uint8
	apply     func(c *CPU, n uint8)
}

var aluOps = [8]aluOp{
	{"ADD A,", 0xC6, func(c *CPU, n uint8) { c.A, c.F = alu.Add8(c.F, c.A, n) }},
	{"ADC A,", 0xCE, func(c *CPU, n uint8) { c.A, c.F = alu.Adc8(c.F, c.A, n) }},
	{"SUB A,", 0xD6, func(c *CPU, n uint8) { c.A, c.F = alu.Sub8(c.F, c.A, n) }},
	{"SBC A,", 0xDE, func(c *CPU, n uint8) { c.A, c.F = alu.Sbc8(c.F, c.A, n) }},
	{"AND A,", 0xE6, func(c *CPU, n uint8) { c.A, c.F = alu.And(c.F, c.A, n) }},
	{"XOR A,", 0xEE, func(c *CPU, n uint8) { c.A, c.F = alu.Xor(c.F, c.A, n) }},
	{"OR A,", 0xF6, func(c *CPU, n uint8) { c.A, c.F = alu.Or(c.F, c.A, n) }},
	{"CP A,", 0xFE, func(c *CPU, n uint8) { c.F = alu.Cp(c.F, c.A, n) }},
}

// addHL adds the given value to HL, leaving Z untouched.
func (c *CPU) addHL(value uint16) {
	var hl uint16
	hl, c.F = alu.Add16(c.F, c.HL.Uint16(), value)
	c.HL.SetUint16(hl)
}

func init() {
	// 0x80 - 0xBF: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A, r
	for row := uint8(0); row < 8; row++ {
		op := aluOps[row]
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + row*8 + src
			name := fmt.Sprintf("%s %s", op.name, registerNames[src])

			if src == 6 {
				op := op
				DefineInstruction(opcode, name, func(c *CPU) uint8 {
					op.apply(c, c.mmu.Read(c.HL.Uint16()))
					return 8
				})
				continue
			}
			op, src := op, src
			DefineInstruction(opcode, name, func(c *CPU) uint8 {
				op.apply(c, *c.registerIndex(src))
				return 4
			})
		}

		// the matching immediate form
		DefineInstruction(op.immOpcode, op.name+" d8", func(c *CPU) uint8 {
			op.apply(c, c.readOperand())
			return 8
		})
	}

	// 0x04, 0x0C, ... 0x3C: INC r; 0x05, 0x0D, ... 0x3D: DEC r
	for i := uint8(0); i < 8; i++ {
		if i == 6 {
			DefineInstruction(0x34, "INC (HL)", func(c *CPU) uint8 {
				hl := c.HL.Uint16()
				var v uint8
				v, c.F = alu.Inc8(c.F, c.mmu.Read(hl))
				c.mmu.Write(hl, v)
				return 12
			})
			DefineInstruction(0x35, "DEC (HL)", func(c *CPU) uint8 {
				hl := c.HL.Uint16()
				var v uint8
				v, c.F = alu.Dec8(c.F, c.mmu.Read(hl))
				c.mmu.Write(hl, v)
				return 12
			})
			continue
		}
		i := i
		DefineInstruction(0x04+i*8, "INC "+registerNames[i], func(c *CPU) uint8 {
			r := c.registerIndex(i)
			*r, c.F = alu.Inc8(c.F, *r)
			return 4
		})
		DefineInstruction(0x05+i*8, "DEC "+registerNames[i], func(c *CPU) uint8 {
			r := c.registerIndex(i)
			*r, c.F = alu.Dec8(c.F, *r)
			return 4
		})
	}

	// 16-bit increments and decrements; no flag effects
	pairs := []struct {
		incOpcode uint8
		name      string
		reg       func(c *CPU) *types.RegisterPair
	}{
		{0x03, "BC", func(c *CPU) *types.RegisterPair { return c.BC }},
		{0x13, "DE", func(c *CPU) *types.RegisterPair { return c.DE }},
		{0x23, "HL", func(c *CPU) *types.RegisterPair { return c.HL }},
	}
	for _, p := range pairs {
		p := p
		DefineInstruction(p.incOpcode, "INC "+p.name, func(c *CPU) uint8 {
			reg := p.reg(c)
			reg.SetUint16(alu.Inc16(reg.Uint16()))
			return 8
		})
		DefineInstruction(p.incOpcode+8, "DEC "+p.name, func(c *CPU) uint8 {
			reg := p.reg(c)
			reg.SetUint16(alu.Dec16(reg.Uint16()))
			return 8
		})
	}
	DefineInstruction(0x33, "INC SP", func(c *CPU) uint8 {
		c.SP = alu.Inc16(c.SP)
		return 8
	})
	DefineInstruction(0x3B, "DEC SP", func(c *CPU) uint8 {
		c.SP = alu.Dec16(c.SP)
		return 8
	})

	// ADD HL, rr
	DefineInstruction(0x09, "ADD HL, BC", func(c *CPU) uint8 {
		c.addHL(c.BC.Uint16())
		return 8
	})
	DefineInstruction(0x19, "ADD HL, DE", func(c *CPU) uint8 {
		c.addHL(c.DE.Uint16())
		return 8
	})
	DefineInstruction(0x29, "ADD HL, HL", func(c *CPU) uint8 {
		c.addHL(c.HL.Uint16())
		return 8
	})
	DefineInstruction(0x39, "ADD HL, SP", func(c *CPU) uint8 {
		c.addHL(c.SP)
		return 8
	})

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) uint8 {
		c.SP, c.F = alu.AddSigned(c.F, c.SP, c.readOperand())
		return 16
	})
}
