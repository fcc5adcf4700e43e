package canvas

import (
	"image"
	"math"
)

// Op identifies a recorded drawing command.
type Op uint8

const (
	OpClear        Op = iota // no args
	OpFillRect                // x, y, w, h
	OpFillArc                 // cx, cy, radius, start, end
	OpFillGradient            // x, y, w, h; Color is top, Color2 is bottom
	OpStrokeLine              // x0, y0, x1, y1, width
	OpDrawImage               // x, y, w, h; Image is set
)

var opNames = [...]string{
	OpClear:        "clear",
	OpFillRect:     "fill_rect",
	OpFillArc:      "fill_arc",
	OpFillGradient: "fill_gradient",
	OpStrokeLine:   "stroke_line",
	OpDrawImage:    "draw_image",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Command is one recorded draw call together with the drawing state that
// was active when it was issued.
type Command struct {
	Op        Op
	Args      []float64
	Color     Color
	Color2    Color
	Image     image.Image
	Alpha     float64
	Transform Affine
}

// Recorder is a Surface that records draw calls in an API-agnostic form
// instead of rasterizing them. It can be replayed onto another Surface.
type Recorder struct {
	stateStack
	width, height float64

	Commands []Command
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder for a surface of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		stateStack: newStateStack(),
		width:      width,
		height:     height,
	}
}

// Reset discards all commands and resets the drawing state, keeping the
// command slice's allocation.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.reset()
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) record(op Op, c, c2 Color, img image.Image, args ...float64) {
	r.Commands = append(r.Commands, Command{
		Op:        op,
		Args:      args,
		Color:     c,
		Color2:    c2,
		Image:     img,
		Alpha:     r.cur.Alpha,
		Transform: r.cur.Transform,
	})
}

func (r *Recorder) Clear() {
	r.record(OpClear, Black, Color{}, nil)
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.record(OpFillRect, c, Color{}, nil, x, y, w, h)
}

func (r *Recorder) FillArc(cx, cy, radius, start, end float64, c Color) {
	r.record(OpFillArc, c, Color{}, nil, cx, cy, radius, start, end)
}

func (r *Recorder) FillGradient(x, y, w, h float64, top, bottom Color) {
	r.record(OpFillGradient, top, bottom, nil, x, y, w, h)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.record(OpStrokeLine, c, Color{}, nil, x0, y0, x1, y1, width)
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.record(OpDrawImage, Color{}, Color{}, img, x, y, w, h)
}

// Count returns how many commands of the given kind were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded commands of the given kind, in order.
func (r *Recorder) Filter(op Op) []Command {
	var cmds []Command
	for _, c := range r.Commands {
		if c.Op == op {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// Replay issues every recorded command onto s with its recorded transform
// and alpha. s's own state is saved and restored around each command.
func (r *Recorder) Replay(s Surface) {
	for _, c := range r.Commands {
		if c.Op == OpClear {
			s.Clear()
			continue
		}

		s.Save()
		s.SetAlpha(c.Alpha)
		t := c.Transform
		setTransform(s, t)

		a := c.Args
		switch c.Op {
		case OpFillRect:
			s.FillRect(a[0], a[1], a[2], a[3], c.Color)
		case OpFillArc:
			s.FillArc(a[0], a[1], a[2], a[3], a[4], c.Color)
		case OpFillGradient:
			s.FillGradient(a[0], a[1], a[2], a[3], c.Color, c.Color2)
		case OpStrokeLine:
			s.StrokeLine(a[0], a[1], a[2], a[3], a[4], c.Color)
		case OpDrawImage:
			s.DrawImage(c.Image, a[0], a[1], a[2], a[3])
		}
		s.Restore()
	}
}

// setTransform replaces the transform on surfaces that expose their state
// stack. Other surfaces receive the transform decomposed as
// translate·rotate·scale, which is exact for every transform built from
// those three operations.
func setTransform(s Surface, t Affine) {
	type transformSetter interface {
		setTransform(Affine)
	}
	if ts, ok := s.(transformSetter); ok {
		ts.setTransform(t)
		return
	}

	sx := math.Hypot(t.A, t.B)
	if sx == 0 {
		s.Scale(0, 0)
		return
	}
	s.Translate(t.E, t.F)
	s.Rotate(math.Atan2(t.B, t.A))
	s.Scale(sx, (t.A*t.D-t.B*t.C)/sx)
}

func (s *stateStack) setTransform(t Affine) {
	s.cur.Transform = t
}
