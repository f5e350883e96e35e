package main

import (
	"flag"
	"time"

	"github.com/Miliox/goteborg/internal/emulator"
	"github.com/Miliox/goteborg/pkg/display"
	_ "github.com/Miliox/goteborg/pkg/display/sdl"
	_ "github.com/Miliox/goteborg/pkg/display/web"
	"github.com/Miliox/goteborg/pkg/log"
	"github.com/Miliox/goteborg/pkg/utils"
)

func main() {
	biosFile := flag.String("bios", "bios.bin", "The BIOS image to load")
	romFile := flag.String("rom", "", "The ROM image to load")
	driverName := flag.String("driver", "sdl", "The display driver to use. Can be sdl, web or none")
	fps := flag.Uint("fps", emulator.DefaultFPS, "Frames per second to emit")
	debug := flag.Bool("debug", false, "Enable debug logging and the LD B, B breakpoint")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewDebug()
	}

	if *romFile == "" {
		name, err := utils.AskForFile("Open ROM", ".")
		if err != nil {
			logger.Errorf("no ROM given: %v", err)
			return
		}
		*romFile = name
	}

	bios, err := utils.LoadFile(*biosFile)
	if err != nil {
		logger.Errorf("loading BIOS: %v", err)
		return
	}
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("loading ROM: %v", err)
		return
	}

	opts := []emulator.Opt{
		emulator.WithFPS(*fps),
		emulator.WithLogger(logger),
	}
	if *debug {
		opts = append(opts, emulator.Debug())
	}

	emu := emulator.New(opts...)
	if err := emu.Reset(bios, rom); err != nil {
		logger.Errorf("reset: %v", err)
		return
	}

	if *driverName == "none" {
		runHeadless(emu, logger)
		return
	}

	driver, err := display.GetDriver(*driverName)
	if err != nil {
		logger.Errorf("%v", err)
		return
	}

	frames := make(chan []byte, 1)
	go run(emu, logger, frames)

	if err := driver.Start(frames); err != nil {
		logger.Errorf("display: %v", err)
	}
}

// run paces the emulator against the wall clock and forwards a copy
// of each finished frame to the display driver.
func run(emu *emulator.Emulator, logger log.Logger, frames chan<- []byte) {
	ticker := time.NewTicker(time.Second / time.Duration(emu.FPS()))
	defer ticker.Stop()

	for range ticker.C {
		if _, err := emu.NextFrame(); err != nil {
			logger.Errorf("%v", err)
			return
		}
		if emu.CPU.Halted() {
			logger.Infof("CPU halted, stopping")
			return
		}

		frame := make([]byte, len(emu.Framebuffer()))
		copy(frame, emu.Framebuffer())

		select {
		case frames <- frame:
		default: // the driver is behind; drop the frame
		}
	}
}

// runHeadless drives frames with no display at all, useful for
// benchmarking and CI.
func runHeadless(emu *emulator.Emulator, logger log.Logger) {
	start := time.Now()
	var frames uint64
	for {
		if _, err := emu.NextFrame(); err != nil {
			logger.Errorf("%v", err)
			return
		}
		if emu.CPU.Halted() {
			break
		}
		frames++
		if frames%1000 == 0 {
			logger.Infof("%d frames in %s", frames, time.Since(start).Round(time.Millisecond))
		}
	}
	logger.Infof("halted after %d frames (%s)", frames, time.Since(start).Round(time.Millisecond))
}
