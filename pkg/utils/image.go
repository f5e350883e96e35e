//go:build !test

package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
	"golang.org/x/image/draw"
)

// FrameImage wraps an RGBA framebuffer as an image, scaled up with
// nearest-neighbour so the pixels stay crisp.
func FrameImage(fb []uint8, width, height, scale int) image.Image {
	src := &image.RGBA{
		Pix:    fb,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// CopyImage places the image on the system clipboard as a PNG.
func CopyImage(img image.Image) error {
	if err := clipboard.Init(); err != nil {
		return err
	}

	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

// SaveImage asks the user where to save the image and writes it as a
// PNG.
func SaveImage(img image.Image) error {
	filename, err := dialog.File().Filter("PNG Image", "png").Title("Save Screenshot").Save()
	if err != nil {
		return err
	}
	if len(filename) < 4 || filename[len(filename)-4:] != ".png" {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// AskForFile shows a file-open dialog, used when no ROM is given on
// the command line.
func AskForFile(title, startingDir string) (string, error) {
	return dialog.File().SetStartDir(startingDir).Title(title).Load()
}
