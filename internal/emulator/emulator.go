// Package emulator binds the CPU, MMU and PPU into a frame driver
// and exposes the host-facing surface: reset with integrity checks,
// frame and single-step execution, and read-only views for
// debuggers.
package emulator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Miliox/goteborg/internal/boot"
	"github.com/Miliox/goteborg/internal/cartridge"
	"github.com/Miliox/goteborg/internal/cpu"
	"github.com/Miliox/goteborg/internal/interrupts"
	"github.com/Miliox/goteborg/internal/mmu"
	"github.com/Miliox/goteborg/internal/ppu"
	"github.com/Miliox/goteborg/internal/timer"
	"github.com/Miliox/goteborg/pkg/log"
)

// ClockSpeed is the master clock rate in T-states per second.
const ClockSpeed = cpu.ClockSpeed

// DefaultFPS is the frame rate the frame driver assumes unless
// configured otherwise.
const DefaultFPS = 60

// ErrLogoMismatch is returned by Reset when the Nintendo logo region
// of the BIOS does not match the cartridge header copy, the check the
// real BIOS locks up on.
var ErrLogoMismatch = errors.New("emulator: cartridge logo does not match BIOS")

// Emulator is one Game Boy: the four core subsystems plus the frame
// budget accounting that binds them.
type Emulator struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Interrupts *interrupts.Service
	Timer      *timer.Controller

	Logger log.Logger

	fps     uint
	budget  uint32
	counter uint32

	debug bool
}

// New returns a stopped Emulator. Reset must be called with a BIOS
// and cartridge image before stepping.
func New(opts ...Opt) *Emulator {
	e := &Emulator{
		Logger: log.NewNullLogger(),
		fps:    DefaultFPS,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.budget = ClockSpeed / uint32(e.fps)
	e.build()
	return e
}

// build wires a fresh set of components together.
func (e *Emulator) build() {
	e.Interrupts = interrupts.NewService()
	e.Timer = timer.NewController(e.Interrupts)
	e.MMU = mmu.New(e.Interrupts, e.Timer, e.Logger)
	e.PPU = ppu.New(e.MMU, e.Interrupts)
	e.MMU.AttachVideo(e.PPU)
	e.CPU = cpu.New(e.MMU, e.Interrupts)
	e.CPU.Debug = e.debug
	e.counter = 0
}

// Reset primes memory with the given BIOS and cartridge images and
// restores the power-on state. The Nintendo logo region of the BIOS
// (0x00A8 - 0x00D7) must match the copy in the cartridge header
// (0x0104 - 0x0133).
func (e *Emulator) Reset(bios, cart []byte) error {
	biosROM, err := boot.Load(bios)
	if err != nil {
		return err
	}
	cartROM, err := cartridge.Load(cart)
	if err != nil {
		return err
	}
	if !bytes.Equal(biosROM.Logo(), cartROM.Logo()) {
		return ErrLogoMismatch
	}

	e.build()
	if err := e.MMU.LoadBIOS(bios); err != nil {
		return err
	}
	if err := e.MMU.LoadCartridge(cart); err != nil {
		return err
	}

	e.Logger.Infof("emulator: reset with %s", cartROM.Header())
	return nil
}

// NextFrame runs one frame budget worth of T-states (ClockSpeed/fps)
// and returns the number actually emitted. It returns early when the
// CPU halts, and aborts the frame on a decode error.
func (e *Emulator) NextFrame() (uint32, error) {
	var elapsed uint32
	for e.counter < e.budget {
		t, err := e.step()
		if err != nil {
			return elapsed, err
		}
		if t == 0 {
			return elapsed, nil
		}
		e.counter += uint32(t)
		elapsed += uint32(t)
	}
	e.counter -= e.budget
	return elapsed, nil
}

// NextStep runs exactly one instruction plus the downstream MMU and
// PPU updates, returning its cost in T-states.
func (e *Emulator) NextStep() (uint8, error) {
	return e.step()
}

// step executes one instruction and feeds its T-states to the MMU
// and then the PPU, in that order.
func (e *Emulator) step() (uint8, error) {
	t, err := e.CPU.Step()
	if err != nil {
		e.Logger.Errorf("emulator: %v", err)
		return 0, fmt.Errorf("emulator: %w", err)
	}
	if t == 0 {
		return 0, nil
	}
	e.MMU.Step(t)
	e.PPU.Step(t)
	return t, nil
}

// Framebuffer borrows the current pixels: 160x144 RGBA8888,
// row-major, top-left origin.
func (e *Emulator) Framebuffer() []uint8 {
	return e.PPU.Framebuffer()
}

// Registers returns a read-only view of the register file.
func (e *Emulator) Registers() cpu.Snapshot {
	return e.CPU.Snapshot()
}

// ReadMemory is a read-through for debuggers.
func (e *Emulator) ReadMemory(addr uint16) uint8 {
	return e.MMU.Read(addr)
}

// FPS returns the configured frame rate.
func (e *Emulator) FPS() uint {
	return e.fps
}
