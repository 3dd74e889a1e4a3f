package imageload

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalf = "▀"

// HalfBlock renders img as terminal rows. Each cell shows two vertical
// pixels: the upper one as foreground of "▀", the lower one as background.
func HalfBlock(img image.Image) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hex(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hex(img.At(x, y+1)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
	}
	return sb.String()
}

// Cells returns the terminal size of HalfBlock(img)
func Cells(img image.Image) (cols, rows int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
