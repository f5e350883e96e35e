// Package cpu implements the Sharp LR35902, the 8080/Z80 hybrid at
// the heart of the Game Boy. Instructions dispatch through two dense
// 256-entry tables (base and CB-prefixed); each handler returns its
// cost in T-states, and the interrupt service stage runs at every
// instruction boundary.
package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/interrupts"
	"github.com/Miliox/goteborg/internal/mmu"
	"github.com/Miliox/goteborg/internal/types"
)

// ClockSpeed is the master clock rate of the CPU in T-states per
// second.
const ClockSpeed = 4194304

// CPU represents the LR35902. It owns the register file and drives
// all memory traffic through the MMU.
type CPU struct {
	Registers
	SP uint16
	PC uint16

	mmu *mmu.MMU
	irq *interrupts.Service

	ime       bool
	enableIME bool // EI takes effect one instruction late
	halted    bool

	Debug           bool
	DebugBreakpoint bool
}

// New creates a CPU in the pre-BIOS power-on state: all register
// pairs and SP at 0xFFFF, PC at 0x0000, interrupts disabled.
func New(bus *mmu.MMU, irq *interrupts.Service) *CPU {
	c := &CPU{
		mmu: bus,
		irq: irq,
	}
	c.AF = types.NewFlagsPair(&c.A, &c.F)
	c.BC = types.NewRegisterPair(&c.B, &c.C)
	c.DE = types.NewRegisterPair(&c.D, &c.E)
	c.HL = types.NewRegisterPair(&c.H, &c.L)

	c.Reset()
	return c
}

// Reset restores the power-on register state.
func (c *CPU) Reset() {
	c.A, c.F = 0xFF, 0xFF
	c.B, c.C = 0xFF, 0xFF
	c.D, c.E = 0xFF, 0xFF
	c.H, c.L = 0xFF, 0xFF
	c.SP = 0xFFFF
	c.PC = 0x0000
	c.ime = false
	c.enableIME = false
	c.halted = false
}

// IME returns the state of the interrupt master enable latch.
func (c *CPU) IME() bool {
	return c.ime
}

// Halted reports whether the CPU is parked on a HALT instruction.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step fetches, decodes and executes one instruction and then runs
// the interrupt service stage, returning the total cost in T-states.
// A halted CPU reports 0 T-states. The error path exists for decode
// table entries left unimplemented during bring-up; a complete table
// never takes it.
func (c *CPU) Step() (uint8, error) {
	if c.halted {
		// TODO: resume on a pending interrupt instead of parking
		// forever; out of scope for now.
		return 0, nil
	}

	// an EI executed last instruction becomes visible before this
	// one, so the interrupt poll below sees it
	if c.enableIME {
		c.enableIME = false
		c.ime = true
	}

	opcode := c.readOperand()
	ins := &InstructionSet[opcode]
	if opcode == 0xCB {
		cb := c.readOperand()
		ins = &InstructionSetCB[cb]
		if ins.fn == nil {
			return 0, fmt.Errorf("cpu: unimplemented opcode 0xCB %#02x at %#04x", cb, c.PC-2)
		}
	} else if ins.fn == nil {
		return 0, fmt.Errorf("cpu: unimplemented opcode %#02x at %#04x", opcode, c.PC-1)
	}

	t := ins.fn(c)

	if c.Debug && opcode == 0x40 { // LD B, B doubles as a breakpoint
		c.DebugBreakpoint = true
	}

	return t + c.serviceInterrupts(), nil
}

// serviceInterrupts dispatches the highest-priority pending interrupt
// when the master enable is set: the request bit is cleared, PC is
// pushed, and execution vectors to the handler. At most one source is
// serviced per instruction boundary.
func (c *CPU) serviceInterrupts() uint8 {
	if !c.ime || !c.irq.HasInterrupts() {
		return 0
	}

	c.ime = false
	vector := c.irq.Vector()
	c.pushStack(c.PC)
	c.PC = vector
	return 4
}

// readOperand reads the byte at PC and advances past it.
func (c *CPU) readOperand() uint8 {
	v := c.mmu.Read(c.PC)
	c.PC++
	return v
}

// readOperand16 reads a little-endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	lo := c.readOperand()
	hi := c.readOperand()
	return uint16(hi)<<8 | uint16(lo)
}

// pushStack pushes a 16-bit value: high byte at SP-1, low byte at
// SP-2, SP decremented by 2.
func (c *CPU) pushStack(value uint16) {
	c.mmu.Write(c.SP-1, uint8(value>>8))
	c.mmu.Write(c.SP-2, uint8(value))
	c.SP -= 2
}

// popStack pops a 16-bit value: low byte at SP, high byte at SP+1,
// SP incremented by 2.
func (c *CPU) popStack() uint16 {
	lo := uint16(c.mmu.Read(c.SP))
	hi := uint16(c.mmu.Read(c.SP + 1))
	c.SP += 2
	return hi<<8 | lo
}
