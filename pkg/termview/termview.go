// Package termview shows rendered frames in a terminal. Each character
// cell carries two vertically stacked pixels: the upper one as the
// foreground of an upper half block and the lower one as the background.
package termview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HalfBlock is the glyph every frame cell is drawn with.
const HalfBlock = '▀'

// Cell is one terminal cell's pair of pixels.
type Cell struct {
	Top, Bottom color.RGBA
}

// PixelSize returns the frame size that exactly fills cols×rows cells.
func PixelSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Cells groups the frame into cell rows. An odd final pixel row is paired
// with black.
func Cells(img *image.RGBA) [][]Cell {
	b := img.Bounds()
	rows := (b.Dy() + 1) / 2
	out := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		row := make([]Cell, b.Dx())
		y := b.Min.Y + r*2
		for i := range row {
			x := b.Min.X + i
			row[i].Top = opaque(img.RGBAAt(x, y))
			if y+1 < b.Max.Y {
				row[i].Bottom = opaque(img.RGBAAt(x, y+1))
			} else {
				row[i].Bottom = color.RGBA{A: 255}
			}
		}
		out[r] = row
	}
	return out
}

// opaque composites a premultiplied pixel over black.
func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

// Draw paints the frame into the screen rectangle at (x, y), clipped to
// w×h cells.
func Draw(screen tcell.Screen, img *image.RGBA, x, y, w, h int) {
	for r, row := range Cells(img) {
		if r >= h {
			break
		}
		for i, c := range row {
			if i >= w {
				break
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Top.R), int32(c.Top.G), int32(c.Top.B))).
				Background(tcell.NewRGBColor(int32(c.Bottom.R), int32(c.Bottom.G), int32(c.Bottom.B)))
			screen.SetContent(x+i, y+r, HalfBlock, nil, style)
		}
	}
}

// Render returns the frame as styled text, one line per cell row. Runs of
// identical cells share one style.
func Render(img *image.RGBA) string {
	var sb strings.Builder
	for r, row := range Cells(img) {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for i := 0; i < len(row); {
			j := i + 1
			for j < len(row) && row[j] == row[i] {
				j++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(Hex(row[i].Top))).
				Background(lipgloss.Color(Hex(row[i].Bottom)))
			sb.WriteString(style.Render(strings.Repeat(string(HalfBlock), j-i)))
			i = j
		}
	}
	return sb.String()
}

// Hex formats an opaque pixel as #rrggbb.
func Hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(opaque(c))
	return cc.Hex()
}
