package cpu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/types"
)

// Register is one of the CPU's 8-bit registers.
type Register = types.Register

// Registers holds the 8-bit registers together with the 16-bit pair
// views over them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	AF *types.RegisterPair
	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
}

// registerIndex returns the register selected by the 3-bit operand
// field shared by most opcode families:
//
//	0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A
//
// Index 6 addresses memory and is handled by the caller.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	panic(fmt.Sprintf("cpu: invalid register index: %d", index))
}

// registerNames maps the 3-bit operand field to mnemonics.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// Snapshot is a read-only copy of the register file, handed to
// debuggers and the host.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	AF, BC, DE, HL         uint16
	SP, PC                 uint16
	IME                    bool

	Zero, Subtract, HalfCarry, Carry bool
}

// Snapshot returns the current register state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		AF: c.AF.Uint16(), BC: c.BC.Uint16(), DE: c.DE.Uint16(), HL: c.HL.Uint16(),
		SP: c.SP, PC: c.PC,
		IME:       c.ime,
		Zero:      c.isFlagSet(FlagZero),
		Subtract:  c.isFlagSet(FlagSubtract),
		HalfCarry: c.isFlagSet(FlagHalfCarry),
		Carry:     c.isFlagSet(FlagCarry),
	}
}

// String implements fmt.Stringer in the format used by the debugger
// trace.
func (s Snapshot) String() string {
	return fmt.Sprintf("AF:%04x BC:%04x DE:%04x HL:%04x SP:%04x PC:%04x IME:%t",
		s.AF, s.BC, s.DE, s.HL, s.SP, s.PC, s.IME)
}
