package emulator

import (
	"github.com/Miliox/goteborg/pkg/log"
)

// Opt is a function that configures an Emulator at construction.
type Opt func(e *Emulator)

// WithFPS sets the frame rate the frame driver emits; it determines
// the frame budget in T-states.
func WithFPS(fps uint) Opt {
	return func(e *Emulator) {
		if fps > 0 {
			e.fps = fps
		}
	}
}

// WithLogger routes component logging to the given logger.
func WithLogger(l log.Logger) Opt {
	return func(e *Emulator) {
		e.Logger = l
	}
}

// Debug arms the LD B, B software breakpoint.
func Debug() Opt {
	return func(e *Emulator) {
		e.debug = true
	}
}
