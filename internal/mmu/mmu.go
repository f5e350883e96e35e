// Package mmu provides the memory map unit of the Game Boy. The MMU
// owns every memory buffer in the system and routes all 16-bit
// addresses to the right one with region-specific policy: the BIOS
// overlay, the read-only cartridge, echo RAM aliasing, the unusable
// gap, hardware I/O dispatch and OAM DMA. It also forwards elapsed
// T-states to the timer counters.
package mmu

import (
	"fmt"

	"github.com/Miliox/goteborg/internal/boot"
	"github.com/Miliox/goteborg/internal/cartridge"
	"github.com/Miliox/goteborg/internal/interrupts"
	"github.com/Miliox/goteborg/internal/timer"
	"github.com/Miliox/goteborg/internal/types"
	"github.com/Miliox/goteborg/pkg/log"
)

// IOBus is the interface the MMU uses to delegate memory-mapped
// registers to another component, and the interface that component
// uses to inspect MMU-owned buffers in turn.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// dmaLength is the number of bytes (and T-states) of an OAM DMA
// transfer.
const dmaLength = 160

// MMU is the memory map unit. All memory traffic of the CPU and the
// PPU flows through Read and Write; no component touches another's
// backing arrays directly.
type MMU struct {
	// 0x0000 - 0x00FF while latched in
	bios     *boot.ROM
	biosDone bool

	// 0x0000 - 0x7FFF, read-only
	cart *cartridge.Cartridge

	vram [0x2000]uint8 // 0x8000 - 0x9FFF
	cram [0x2000]uint8 // 0xA000 - 0xBFFF
	wram [0x2000]uint8 // 0xC000 - 0xDFFF, echoed at 0xE000 - 0xFDFF
	oam  [0xA0]uint8   // 0xFE00 - 0xFE9F
	hwio [0x80]uint8   // 0xFF00 - 0xFF7F
	hram [0x7F]uint8   // 0xFF80 - 0xFFFE

	// LCD registers (0xFF40 - 0xFF4B except DMA) are delegated here.
	video IOBus

	irq   *interrupts.Service
	timer *timer.Controller

	// pending OAM DMA; the transfer completes atomically once the
	// scheduled T-states have elapsed
	dmaRemaining int32
	dmaSource    uint16

	Log log.Logger
}

// New returns a new MMU ticking the given timer and raising
// interrupts on the given service.
func New(irq *interrupts.Service, timerCtl *timer.Controller, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &MMU{
		irq:   irq,
		timer: timerCtl,
		Log:   l,
	}
}

// AttachVideo delegates the LCD register range to the given bus.
func (m *MMU) AttachVideo(video IOBus) {
	m.video = video
}

// LoadBIOS installs a 256-byte BIOS image, latched over the bottom of
// the cartridge until the program writes a value with bit 0 set to
// BDIS.
func (m *MMU) LoadBIOS(buf []byte) error {
	rom, err := boot.Load(buf)
	if err != nil {
		return err
	}
	m.bios = rom
	m.biosDone = false
	m.hwio[types.BDIS&0xFF] = 0
	m.Log.Infof("mmu: loaded BIOS (md5 %s)", rom.Checksum())
	return nil
}

// LoadCartridge installs a flat ROM image.
func (m *MMU) LoadCartridge(buf []byte) error {
	cart, err := cartridge.Load(buf)
	if err != nil {
		return err
	}
	m.cart = cart
	m.Log.Infof("mmu: loaded cartridge %s", cart.Header())
	return nil
}

// Cartridge returns the loaded cartridge, or nil.
func (m *MMU) Cartridge() *cartridge.Cartridge {
	return m.cart
}

// BIOS returns the loaded BIOS image, or nil.
func (m *MMU) BIOS() *boot.ROM {
	return m.bios
}

// OAM returns a borrow of the 160 bytes of object attribute memory.
func (m *MMU) OAM() []uint8 {
	return m.oam[:]
}

// Divider returns the current DIV value, for debuggers.
func (m *MMU) Divider() uint8 {
	return m.timer.Divider()
}

// Read returns the value at the given address, honoring the BIOS
// overlay, echo RAM and the unusable gap.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x0100 && !m.biosDone && m.bios != nil:
		return m.bios.Read(address)
	case address < 0x8000:
		if m.cart == nil {
			return 0xFF
		}
		return m.cart.Read(address)
	case address < 0xA000:
		return m.vram[address-0x8000]
	case address < 0xC000:
		return m.cram[address-0xA000]
	case address < 0xE000:
		return m.wram[address-0xC000]
	case address < 0xFE00:
		return m.wram[address-0xE000] // echo
	case address < 0xFEA0:
		return m.oam[address-0xFE00]
	case address < 0xFF00:
		return 0x00 // unusable
	case address < 0xFF80:
		return m.readHWIO(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default:
		return m.irq.Enable
	}
}

// Write stores the value at the given address. Cartridge ROM and the
// unusable gap drop writes silently.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		// ROM is immutable
	case address < 0xA000:
		m.vram[address-0x8000] = value
	case address < 0xC000:
		m.cram[address-0xA000] = value
	case address < 0xE000:
		m.wram[address-0xC000] = value
	case address < 0xFE00:
		m.wram[address-0xE000] = value // echo
	case address < 0xFEA0:
		m.oam[address-0xFE00] = value
	case address < 0xFF00:
		// unusable
	case address < 0xFF80:
		m.writeHWIO(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default:
		m.irq.Enable = value
	}
}

func (m *MMU) readHWIO(address uint16) uint8 {
	switch address {
	case types.P1:
		// no buttons pressed; bits 7..6 are unconnected
		return 0xC0 | m.hwio[0x00] | 0x0F
	case types.DIV:
		return m.timer.Divider()
	case types.TIMA:
		return m.timer.TIMA()
	case types.TMA:
		return m.timer.TMA()
	case types.TAC:
		return m.timer.TAC()
	case types.IF:
		return m.irq.Flag | 0xE0
	case types.DMA:
		return m.hwio[types.DMA&0xFF]
	}
	if address >= types.LCDC && address <= types.WX && m.video != nil {
		return m.video.Read(address)
	}
	return m.hwio[address&0x7F]
}

func (m *MMU) writeHWIO(address uint16, value uint8) {
	switch address {
	case types.P1:
		m.hwio[0x00] = value & 0x30
		return
	case types.DIV:
		// any write resets the divider
		m.timer.ResetDivider()
		return
	case types.TIMA:
		m.timer.SetTIMA(value)
		return
	case types.TMA:
		m.timer.SetTMA(value)
		return
	case types.TAC:
		m.timer.SetTAC(value)
		return
	case types.IF:
		m.irq.Flag = value & 0x1F
		return
	case types.DMA:
		m.hwio[types.DMA&0xFF] = value
		m.dmaSource = uint16(value) << 8
		m.dmaRemaining = dmaLength
		return
	case types.BDIS:
		// one-shot: once set, the BIOS stays unmapped
		if value&types.Bit0 != 0 {
			m.biosDone = true
			m.hwio[types.BDIS&0xFF] |= 1
		}
		return
	}
	if address >= types.LCDC && address <= types.WX && m.video != nil {
		m.video.Write(address, value)
		return
	}
	m.hwio[address&0x7F] = value
}

// Step advances the MMU-owned counters by the T-states of the last
// executed instruction: the divider and timer tick, and a pending OAM
// DMA completes once its 160 T-states have elapsed. The transfer
// itself is atomic; sub-byte DMA progress is not modeled.
func (m *MMU) Step(t uint8) {
	m.timer.Step(t)

	if m.dmaRemaining > 0 {
		m.dmaRemaining -= int32(t)
		if m.dmaRemaining <= 0 {
			m.dmaRemaining = 0
			m.transferOAM()
		}
	}
}

func (m *MMU) transferOAM() {
	for i := uint16(0); i < dmaLength; i++ {
		m.oam[i] = m.Read(m.dmaSource + i)
	}
	m.Log.Debugf("mmu: OAM DMA from %#04x", m.dmaSource)
}

var _ IOBus = (*MMU)(nil)

// String implements fmt.Stringer for debugger memory dumps.
func (m *MMU) String() string {
	if m.cart == nil {
		return fmt.Sprintf("MMU{bios: %t, cart: none}", m.bios != nil && !m.biosDone)
	}
	return fmt.Sprintf("MMU{bios: %t, cart: %v}", m.bios != nil && !m.biosDone, m.cart.Header())
}
