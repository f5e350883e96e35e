// Package timer implements the divider and programmable timer of the
// Game Boy. Both are counters driven by the 4.194304 MHz master
// clock: the divider increments at a fixed 16384Hz, the timer at the
// rate selected by the TAC register, requesting a Timer interrupt on
// overflow.
package timer

import (
	"github.com/Miliox/goteborg/internal/interrupts"
)

// ClockSpeed is the master clock rate in T-states per second.
const ClockSpeed = 4194304

// DividerPeriod is the number of T-states between DIV increments.
const DividerPeriod = ClockSpeed / 16384

// timaPeriods maps TAC bits 1..0 to the timer period in T-states.
//
//	00: 4096Hz  01: 262144Hz  10: 65536Hz  11: 16384Hz
var timaPeriods = [4]uint32{
	ClockSpeed / 4096,
	ClockSpeed / 262144,
	ClockSpeed / 65536,
	ClockSpeed / 16384,
}

// Controller drives the DIV and TIMA/TMA/TAC registers. It is owned
// by the MMU, which routes reads and writes of those registers here
// and forwards the T-states of every executed instruction to Step.
type Controller struct {
	div  uint8
	tima uint8
	tma  uint8
	tac  uint8

	divCounter  uint32
	timaCounter uint32

	irq *interrupts.Service
}

// NewController returns a new Controller raising its overflow
// interrupts on the given service.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// Step advances the counters by t T-states.
func (c *Controller) Step(t uint8) {
	c.divCounter += uint32(t)
	for c.divCounter >= DividerPeriod {
		c.divCounter -= DividerPeriod
		c.div++
	}

	if !c.enabled() {
		return
	}

	period := timaPeriods[c.tac&0b11]
	c.timaCounter += uint32(t)
	for c.timaCounter >= period {
		c.timaCounter -= period
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}

func (c *Controller) enabled() bool {
	return c.tac&0b100 != 0
}

// Divider returns the current value of the DIV register.
func (c *Controller) Divider() uint8 {
	return c.div
}

// ResetDivider implements the DIV write quirk: any written value is
// discarded and the counter restarts from zero.
func (c *Controller) ResetDivider() {
	c.div = 0
	c.divCounter = 0
}

// TIMA returns the timer counter register.
func (c *Controller) TIMA() uint8 { return c.tima }

// SetTIMA sets the timer counter register.
func (c *Controller) SetTIMA(v uint8) { c.tima = v }

// TMA returns the timer modulo register.
func (c *Controller) TMA() uint8 { return c.tma }

// SetTMA sets the timer modulo register.
func (c *Controller) SetTMA(v uint8) { c.tma = v }

// TAC returns the timer control register.
func (c *Controller) TAC() uint8 { return c.tac }

// SetTAC sets the timer control register. Disabling the timer resets
// its internal sub-count, so re-enabling starts a full period away
// from the next increment.
func (c *Controller) SetTAC(v uint8) {
	c.tac = v & 0b111
	if !c.enabled() {
		c.timaCounter = 0
	}
}
