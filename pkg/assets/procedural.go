package assets

import (
	"image"
	"math"

	"github.com/unklstewy/hornet/pkg/canvas"
)

// Procedural texture sizes
const (
	SpriteSize     = 80
	TerrainTexSize = 128
	CloudTexSize   = 100
	skyTexWidth    = 4
	skyTexHeight   = 256
)

// Generate draws a stand-in texture for k. Sprite and cloud textures have
// transparent backgrounds. Unknown kinds yield nil.
func Generate(k Kind) image.Image {
	switch k {
	case Aircraft:
		return generateAircraft()
	case Terrain:
		return generateTerrain()
	case Cloud:
		return generateCloud()
	case Sky:
		return generateSky()
	}
	return nil
}

// generateAircraft draws a top-down twin-tail jet with its nose along +x.
func generateAircraft() image.Image {
	r := canvas.NewRaster(SpriteSize, SpriteSize)
	r.Translate(SpriteSize/2, SpriteSize/2)

	hull := canvas.MustHex("#6b7580")
	wing := canvas.MustHex("#59626b")
	dark := canvas.MustHex("#3d444a")

	// Swept wings and stabilizers; side mirrors each pair across the fuselage
	for _, side := range []float64{-1, 1} {
		r.Save()
		r.Translate(4, 0)
		r.Scale(1, side)
		r.Rotate(0.45)
		r.FillRect(-6, 0, 12, 30, wing)
		r.Restore()

		r.Save()
		r.Translate(-24, 0)
		r.Scale(1, side)
		r.Rotate(0.5)
		r.FillRect(-4, 0, 8, 14, wing)
		r.Restore()

		// Canted fins
		r.FillRect(-22, side*5-1, 12, 2, dark)
	}

	r.FillRect(-32, -4, 62, 8, hull)
	r.FillArc(30, 0, 4, 0, 2*math.Pi, hull)
	r.FillArc(18, 0, 3.5, 0, 2*math.Pi, canvas.RGB(135, 206, 235))
	r.FillRect(-34, -3, 3, 6, dark)

	return r.Frame()
}

// generateTerrain draws a tileable patchwork of fields with a river.
func generateTerrain() image.Image {
	const cell = 16
	r := canvas.NewRaster(TerrainTexSize, TerrainTexSize)
	r.FillRect(0, 0, TerrainTexSize, TerrainTexSize, canvas.RGB(34, 139, 34))

	for i := 0; i < TerrainTexSize/cell; i++ {
		for j := 0; j < TerrainTexSize/cell; j++ {
			h := hash(i, j)
			hue := 80 + float64(h%50)
			light := 0.25 + float64((h>>8)%20)/100
			r.FillRect(float64(i*cell)+1, float64(j*cell)+1, cell-2, cell-2, canvas.HSL(hue, 0.55, light))
		}
	}

	water := canvas.RGB(64, 110, 170)
	for i := 0; i < 8; i++ {
		x0 := float64(i) * TerrainTexSize / 8
		x1 := float64(i+1) * TerrainTexSize / 8
		y0 := TerrainTexSize/2 + 12*math.Sin(x0/TerrainTexSize*2*math.Pi)
		y1 := TerrainTexSize/2 + 12*math.Sin(x1/TerrainTexSize*2*math.Pi)
		r.StrokeLine(x0, y0, x1, y1, 4, water)
	}
	return r.Frame()
}

// generateCloud draws overlapping soft puffs.
func generateCloud() image.Image {
	r := canvas.NewRaster(CloudTexSize, CloudTexSize)
	puffs := []struct{ x, y, r float64 }{
		{50, 55, 30}, {32, 58, 20}, {68, 58, 20}, {42, 42, 18}, {60, 44, 16},
	}
	for _, p := range puffs {
		for i := 0; i < 3; i++ {
			r.SetAlpha(0.35)
			r.FillArc(p.x, p.y, p.r*(1-float64(i)*0.25), 0, 2*math.Pi, canvas.White)
		}
	}
	return r.Frame()
}

// generateSky draws the daylight sky gradient, stretched to the canvas when drawn.
func generateSky() image.Image {
	r := canvas.NewRaster(skyTexWidth, skyTexHeight)
	r.FillGradient(0, 0, skyTexWidth, skyTexHeight, canvas.HSL(215, 0.9, 0.55), canvas.HSL(200, 0.8, 0.85))
	return r.Frame()
}

// hash is a small deterministic integer hash for texture variation.
func hash(i, j int) uint32 {
	h := uint32(i)*73856093 ^ uint32(j)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}
