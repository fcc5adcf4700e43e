package canvas

import (
	"image"
	"image/draw"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// textureCacheSize bounds how many converted source images a Raster keeps.
const textureCacheSize = 32

// Raster is a software Surface that draws into an RGBA image. Shapes are
// filled by mapping each candidate pixel centre back into local space, so
// every shape honours the full affine transform.
type Raster struct {
	stateStack
	img *image.RGBA

	// textures caches RGBA conversions of images passed to DrawImage
	textures *lru.Cache[image.Image, *image.RGBA]
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a raster surface of the given pixel size.
func NewRaster(width, height int) *Raster {
	cache, err := lru.New[image.Image, *image.RGBA](textureCacheSize)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Raster{
		stateStack: newStateStack(),
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		textures:   cache,
	}
}

// Frame returns the image being drawn into. It is reused across frames.
func (r *Raster) Frame() *image.RGBA {
	return r.img
}

// Resize reallocates the frame if the size changed.
func (r *Raster) Resize(width, height int) {
	if b := r.img.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Raster) Size() (float64, float64) {
	b := r.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (r *Raster) Clear() {
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 255
	}
}

func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	x0, y0, x1, y1 := normRect(x, y, w, h)
	r.shade(x0, y0, x1, y1, func(lx, ly float64) (Color, bool) {
		return c, lx >= x0 && lx < x1 && ly >= y0 && ly < y1
	})
}

func (r *Raster) FillArc(cx, cy, radius, start, end float64, c Color) {
	if radius <= 0 {
		return
	}
	full := math.Abs(end-start) >= 2*math.Pi
	span := math.Mod(end-start, 2*math.Pi)
	if span < 0 {
		span += 2 * math.Pi
	}
	r2 := radius * radius

	r.shade(cx-radius, cy-radius, cx+radius, cy+radius, func(lx, ly float64) (Color, bool) {
		dx, dy := lx-cx, ly-cy
		if dx*dx+dy*dy > r2 {
			return c, false
		}
		if full {
			return c, true
		}
		a := math.Mod(math.Atan2(dy, dx)-start, 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		return c, a <= span
	})
}

func (r *Raster) FillGradient(x, y, w, h float64, top, bottom Color) {
	x0, y0, x1, y1 := normRect(x, y, w, h)
	r.shade(x0, y0, x1, y1, func(lx, ly float64) (Color, bool) {
		if lx < x0 || lx >= x1 || ly < y0 || ly >= y1 {
			return Color{}, false
		}
		t := (ly - y) / h
		return top.Lerp(bottom, t), true
	})
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	half := math.Max(width, 1) / 2
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy

	r.shade(math.Min(x0, x1)-half, math.Min(y0, y1)-half, math.Max(x0, x1)+half, math.Max(y0, y1)+half,
		func(lx, ly float64) (Color, bool) {
			t := 0.0
			if l2 > 0 {
				t = ((lx-x0)*dx + (ly-y0)*dy) / l2
				t = math.Max(0, math.Min(1, t))
			}
			px, py := x0+t*dx-lx, y0+t*dy-ly
			return c, px*px+py*py <= half*half
		})
}

func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w == 0 || h == 0 {
		return
	}
	src := r.texture(img)
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	x0, y0, x1, y1 := normRect(x, y, w, h)

	r.shade(x0, y0, x1, y1, func(lx, ly float64) (Color, bool) {
		if lx < x0 || lx >= x1 || ly < y0 || ly >= y1 {
			return Color{}, false
		}
		u := int((lx - x) / w * sw)
		v := int((ly - y) / h * sh)
		if u < 0 || v < 0 || u >= sb.Dx() || v >= sb.Dy() {
			return Color{}, false
		}
		p := src.RGBAAt(sb.Min.X+u, sb.Min.Y+v)
		if p.A == 0 {
			return Color{}, false
		}
		a := float64(p.A) / 255
		return Color{
			R: float64(p.R) / 255 / a,
			G: float64(p.G) / 255 / a,
			B: float64(p.B) / 255 / a,
			A: a,
		}, true
	})
}

// texture returns an RGBA view of img, converting and caching it if needed.
func (r *Raster) texture(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	if rgba, ok := r.textures.Get(img); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	r.textures.Add(img, rgba)
	return rgba
}

// shade visits every pixel whose device-space centre falls inside the
// transformed local rectangle [lx0,lx1]×[ly0,ly1], maps it back to local
// space and blends whatever color the shader returns.
func (r *Raster) shade(lx0, ly0, lx1, ly1 float64, shader func(lx, ly float64) (Color, bool)) {
	m := r.cur.Transform
	inv, ok := m.Invert()
	if !ok || r.cur.Alpha <= 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{lx0, ly0}, {lx1, ly0}, {lx0, ly1}, {lx1, ly1}} {
		dx, dy := m.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, dx), math.Max(maxX, dx)
		minY, maxY = math.Min(minY, dy), math.Max(maxY, dy)
	}

	b := r.img.Bounds()
	px0 := max(b.Min.X, int(math.Floor(minX)))
	py0 := max(b.Min.Y, int(math.Floor(minY)))
	px1 := min(b.Max.X, int(math.Ceil(maxX)))
	py1 := min(b.Max.Y, int(math.Ceil(maxY)))

	alpha := r.cur.Alpha
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			lx, ly := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			if c, ok := shader(lx, ly); ok {
				r.blend(px, py, c, c.A*alpha)
			}
		}
	}
}

// blend composites c over the destination pixel with source-over.
func (r *Raster) blend(x, y int, c Color, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := r.img.PixOffset(x, y)
	pix := r.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	pix[0] = uint8(math.Min(255, c.R*a*255+float64(pix[0])*inv+0.5))
	pix[1] = uint8(math.Min(255, c.G*a*255+float64(pix[1])*inv+0.5))
	pix[2] = uint8(math.Min(255, c.B*a*255+float64(pix[2])*inv+0.5))
	pix[3] = uint8(math.Min(255, a*255+float64(pix[3])*inv+0.5))
}

// normRect orders a rectangle given with a possibly negative size.
func normRect(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	x0, x1 = x, x+w
	if w < 0 {
		x0, x1 = x1, x0
	}
	y0, y1 = y, y+h
	if h < 0 {
		y0, y1 = y1, y0
	}
	return
}
