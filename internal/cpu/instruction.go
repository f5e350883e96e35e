package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/alu"
)

// Instruction is one entry of the dispatch tables: a mnemonic for
// the disassembler and the handler that executes it, returning its
// cost in T-states.
type Instruction struct {
	name string
	fn   func(*CPU) uint8
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	return i.name
}

// InstructionSet holds the 256 base opcodes. Entry 0xCB is the
// prefix escape into InstructionSetCB, handled by Step.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 CB-prefixed opcodes. The prefix
// cost is folded into each entry: 8 T-states for register forms, 16
// for (HL) forms.
var InstructionSetCB [256]Instruction

// DefineInstruction installs a handler in the base table.
func DefineInstruction(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSet[opcode] = Instruction{name: name, fn: fn}
}

// DefineInstructionCB installs a handler in the CB table.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU) uint8) {
	InstructionSetCB[opcode] = Instruction{name: name, fn: fn}
}

// The architecture leaves these base opcodes undefined; they execute
// as 4 T-state NOPs.
var undefinedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) uint8 {
		return 4
	})
	DefineInstruction(0x10, "STOP", func(c *CPU) uint8 {
		// modeled as HALT: the core has no wake sources
		c.halted = true
		return 4
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) uint8 {
		c.A, c.F = alu.Daa(c.F, c.A)
		return 4
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) uint8 {
		c.A, c.F = alu.Cpl(c.F, c.A)
		return 4
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) uint8 {
		c.F = alu.Scf(c.F)
		return 4
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) uint8 {
		c.F = alu.Ccf(c.F)
		return 4
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) uint8 {
		c.halted = true
		return 4
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) uint8 {
		c.ime = false
		c.enableIME = false
		return 4
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) uint8 {
		c.enableIME = true
		return 4
	})

	// Step intercepts the prefix byte itself; the entry keeps the
	// table dense for disassembly
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) uint8 {
		return InstructionSetCB[c.readOperand()].fn(c)
	})

	for _, opcode := range undefinedOpcodes {
		opcode := opcode
		DefineInstruction(opcode, fmt.Sprintf("UNDEF %02X", opcode), func(c *CPU) uint8 {
			return 4
		})
	}
}
