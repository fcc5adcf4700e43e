package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/hornet/pkg/termview"
)

// CanvasView is a custom tview primitive that shows the rendered frame as
// half-block cells, with the loading progress over it while assets load.
type CanvasView struct {
	*tview.Box
	app *App

	// cols and rows are the inner size at the last draw
	cols, rows int
}

// NewCanvasView creates the flight view
func NewCanvasView(app *App) *CanvasView {
	cv := &CanvasView{
		Box: tview.NewBox(),
		app: app,
	}
	cv.SetBorder(true).SetTitle(" F-18 Super Hornet ")
	return cv
}

// Draw paints the last rendered frame
func (cv *CanvasView) Draw(screen tcell.Screen) {
	cv.Box.DrawForSubclass(screen, cv)

	// Get the inner bounds (excluding border)
	x, y, width, height := cv.GetInnerRect()
	cv.cols, cv.rows = width, height

	termview.Draw(screen, cv.app.raster.Frame(), x, y, width, height)

	// Loading text, centred
	if text := cv.app.gauges.Progress(); text != "" {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		row := y + height/2
		col := x + (width-len(text))/2
		if col < x {
			col = x
		}
		for i, ch := range text {
			if col+i >= x+width {
				break
			}
			screen.SetContent(col+i, row, ch, nil, style)
		}
	}
}

// PixelSize returns the frame size that fills the view at the last draw,
// or false before the first draw.
func (cv *CanvasView) PixelSize() (width, height int, ok bool) {
	if cv.cols <= 0 || cv.rows <= 0 {
		return 0, 0, false
	}
	width, height = termview.PixelSize(cv.cols, cv.rows)
	return width, height, true
}
