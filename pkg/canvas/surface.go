// Package canvas defines the 2D drawing surface the scene is rendered onto,
// together with two implementations: a Recorder that captures draw calls and
// a software Raster that rasterizes them into an RGBA image.
package canvas

import "image"

// Surface is an immediate-mode 2D drawing target with a transform and
// global alpha stack. All coordinates are in the current local space.
type Surface interface {
	// Size returns the surface dimensions in pixels
	Size() (width, height float64)

	// Clear fills the whole surface with opaque black, ignoring transform and alpha
	Clear()

	// Save pushes the current transform and alpha; Restore pops them
	Save()
	Restore()

	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)

	// SetAlpha sets the global alpha multiplied into every subsequent draw
	SetAlpha(alpha float64)

	FillRect(x, y, w, h float64, c Color)

	// FillArc fills the circular sector from start to end (radians, clockwise
	// on screen). A full 2π sweep is a disc.
	FillArc(cx, cy, radius, start, end float64, c Color)

	// FillGradient fills a rectangle with a vertical linear gradient
	FillGradient(x, y, w, h float64, top, bottom Color)

	StrokeLine(x0, y0, x1, y1, width float64, c Color)

	// DrawImage draws img scaled into the given rectangle
	DrawImage(img image.Image, x, y, w, h float64)
}

// State is the saved portion of a surface's drawing state.
type State struct {
	Transform Affine
	Alpha     float64
}

// stateStack implements the Save/Restore/transform half of Surface and is
// embedded by both implementations.
type stateStack struct {
	cur   State
	saved []State
}

func newStateStack() stateStack {
	return stateStack{cur: State{Transform: Identity, Alpha: 1}}
}

func (s *stateStack) Save() {
	s.saved = append(s.saved, s.cur)
}

// Restore with nothing saved is a no-op, as on an HTML canvas.
func (s *stateStack) Restore() {
	if n := len(s.saved); n > 0 {
		s.cur = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
}

func (s *stateStack) Translate(x, y float64) { s.cur.Transform = s.cur.Transform.Translate(x, y) }
func (s *stateStack) Rotate(radians float64) { s.cur.Transform = s.cur.Transform.Rotate(radians) }
func (s *stateStack) Scale(sx, sy float64)   { s.cur.Transform = s.cur.Transform.Scale(sx, sy) }

func (s *stateStack) SetAlpha(alpha float64) {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	s.cur.Alpha = alpha
}

// Current returns the active transform and alpha.
func (s *stateStack) Current() State {
	return s.cur
}

// Depth returns the number of saved states.
func (s *stateStack) Depth() int {
	return len(s.saved)
}

func (s *stateStack) reset() {
	s.cur = State{Transform: Identity, Alpha: 1}
	s.saved = s.saved[:0]
}
