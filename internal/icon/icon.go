// Package icon renders the application icon.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const Size = 64

var (
	Background = color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Render draws a Size×Size square with a centered "TOP" label.
func Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	// Up arrow above the label.
	mid := Size / 2
	for row := 0; row < 12; row++ {
		y := 10 + row
		for x := mid - row; x <= mid+row; x++ {
			img.Set(x, y, Foreground)
		}
	}

	face := basicfont.Face7x13
	label := "TOP"
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	width := d.MeasureString(label).Ceil()
	d.Dot = fixed.P((Size-width)/2, 44)
	d.DrawString(label)

	return img
}

// PNG returns the icon encoded as PNG.
func PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render()); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
