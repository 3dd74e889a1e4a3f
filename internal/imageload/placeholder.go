package imageload

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	placeholderBG = color.RGBA{R: 0x55, G: 0x55, B: 0x5f, A: 0xff}
	placeholderFG = color.RGBA{R: 0xdd, G: 0xdd, B: 0xe4, A: 0xff}
)

// Placeholder draws a gray tile with title written across it. It stands in
// for images that failed to load.
func Placeholder(title string, width, height int) image.Image {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := imaging.New(width, height, placeholderBG)

	face := basicfont.Face7x13
	baseline := height/2 + face.Ascent/2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(placeholderFG),
		Face: face,
		Dot:  fixed.P(1, baseline),
	}
	d.DrawString(title)
	return img
}
