//go:build !test

// Package sdl implements an SDL2 display driver: one window, one
// streaming texture, the framebuffer blitted as it arrives. F11
// copies a screenshot to the clipboard, F12 saves one to disk.
package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Miliox/goteborg/pkg/display"
	"github.com/Miliox/goteborg/pkg/utils"
)

// PixelScale is the window size multiplier over the native 160x144,
// also applied to screenshots.
var PixelScale int32 = 4

func init() {
	display.Install("sdl", &Driver{})
}

// Driver is the SDL2 display driver.
type Driver struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	lastFrame []byte

	quit chan struct{}
}

// Start opens the window and blits frames until the window closes or
// Stop is called.
func (d *Driver) Start(fb <-chan []byte) error {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.QuitSubSystem(sdl.INIT_VIDEO)

	var err error
	d.window, err = sdl.CreateWindow(
		"goteborg",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		display.FrameWidth*PixelScale, display.FrameHeight*PixelScale,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return err
	}
	defer d.window.Destroy()

	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	defer d.renderer.Destroy()

	d.texture, err = d.renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING,
		display.FrameWidth, display.FrameHeight,
	)
	if err != nil {
		return err
	}
	defer d.texture.Destroy()

	d.quit = make(chan struct{})
	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYDOWN {
					d.handleKey(ev.Keysym.Sym)
				}
			}
		}

		select {
		case <-d.quit:
			return nil
		case frame := <-fb:
			d.lastFrame = frame
			if err := d.texture.Update(nil, frame, display.FrameWidth*4); err != nil {
				return err
			}
			if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
				return err
			}
			d.renderer.Present()
		}
	}
}

// handleKey services the screenshot shortcuts against the most
// recently presented frame.
func (d *Driver) handleKey(key sdl.Keycode) {
	if d.lastFrame == nil {
		return
	}
	img := utils.FrameImage(d.lastFrame, display.FrameWidth, display.FrameHeight, int(PixelScale))

	switch key {
	case sdl.K_F11:
		_ = utils.CopyImage(img)
	case sdl.K_F12:
		_ = utils.SaveImage(img)
	}
}

// Stop closes the window loop.
func (d *Driver) Stop() error {
	if d.quit != nil {
		close(d.quit)
	}
	return nil
}
