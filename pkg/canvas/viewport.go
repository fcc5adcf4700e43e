package canvas

// Viewport presents a Surface at a fixed logical size. Every Clear resets
// the underlying drawing state to one scale that maps the logical size onto
// the surface's real size, so a scene keeps its world dimensions at any
// output resolution.
type Viewport struct {
	Surface
	width, height float64
}

// NewViewport wraps s as a width×height surface.
func NewViewport(s Surface, width, height float64) *Viewport {
	return &Viewport{Surface: s, width: width, height: height}
}

func (v *Viewport) Size() (float64, float64) {
	return v.width, v.height
}

func (v *Viewport) Clear() {
	v.Surface.Clear()
	if r, ok := v.Surface.(interface{ reset() }); ok {
		r.reset()
	}
	if v.width <= 0 || v.height <= 0 {
		return
	}
	sw, sh := v.Surface.Size()
	v.Surface.Scale(sw/v.width, sh/v.height)
}
