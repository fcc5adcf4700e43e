// Package scene draws one frame of the simulator, back to front, onto a
// canvas.Surface: sky, terrain, clouds, artificial horizon, aircraft and
// contrail.
package scene

import (
	"image"
	"math"

	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/coordinates"
	"github.com/unklstewy/hornet/pkg/environment"
	"github.com/unklstewy/hornet/pkg/flight"
)

// Layer tuning
const (
	// SkyGradientCeiling is the altitude at which the fallback sky stops darkening
	SkyGradientCeiling = 30000.0

	// TerrainCeiling is the altitude above which terrain is not drawn
	TerrainCeiling  = 25000.0
	TerrainTileSize = 512.0
	terrainParallax = 0.5
	terrainMinScale = 0.1
	terrainAlpha    = 0.8

	// CloudParallaxRange is the altitude separation at which a cloud vanishes
	CloudParallaxRange = 50000.0
	cloudTracking      = 0.2

	// HazeAltitude is the altitude below which clouds are dimmed
	HazeAltitude      = 5000.0
	hazeFactor        = 0.6
	stormOverlayScale = 0.7
	stormOverlayAlpha = 0.3

	// HorizonPitchScale is pixels of horizon shift per degree of pitch
	HorizonPitchScale = 5.0
	horizonLineWidth  = 2.0

	SpriteSize = 80.0

	// ContrailSpeed is the speed in knots above which the contrail is drawn
	ContrailSpeed    = 800.0
	ContrailSegments = 10
	contrailSpacing  = 20.0
	contrailAlpha    = 0.3
	contrailWidth    = 3.0
)

var (
	horizonSky    = canvas.RGBA(135, 206, 235, 0.3)
	horizonGround = canvas.RGBA(34, 139, 34, 0.3)
	horizonLine   = canvas.RGBA(255, 255, 255, 0.8)

	stormShadow = canvas.MustHex("#333333")
	stormFlat   = canvas.MustHex("#666666")

	flameOuter = canvas.MustHex("#ff4500")
	flameInner = canvas.MustHex("#ffff00")
	flameCore  = canvas.MustHex("#ffffff")

	bodyColor    = canvas.MustHex("#4a4a4a")
	wingColor    = canvas.MustHex("#5a5a5a")
	tailColor    = canvas.MustHex("#3a3a3a")
	cockpitColor = canvas.MustHex("#87ceeb")
)

// Textures are the decoded images the renderer draws when Ready. Ready is
// a single flag: either every layer uses its texture or every layer uses its
// procedural fallback.
type Textures struct {
	Aircraft image.Image
	Terrain  image.Image
	Cloud    image.Image
	Sky      image.Image

	Ready bool
}

// Render draws a complete frame. Visible clouds drift as a side effect.
func Render(s canvas.Surface, ac flight.Aircraft, clouds []environment.Cloud, tex Textures) {
	s.Clear()
	DrawSky(s, ac, tex)
	DrawTerrain(s, ac, tex)
	AdvanceAndDrawClouds(s, ac, clouds, tex)
	DrawHorizon(s, ac)
	DrawAircraft(s, ac, tex)
	DrawContrail(s, ac)
}

// SkyColors returns the fallback gradient's top and bottom colors for an
// altitude: daylight blue over green low down, deepening toward night blue.
func SkyColors(altitude float64) (top, bottom canvas.Color) {
	r := coordinates.Min(altitude/SkyGradientCeiling, 1)
	if r < 0.5 {
		return canvas.HSL(210, 1, (80-r*20)/100), canvas.HSL(120, 0.6, (70-r*10)/100)
	}
	return canvas.HSL(220, 1, (20+r*30)/100), canvas.HSL(240, 0.8, (10+r*20)/100)
}

// DrawSky fills the whole surface with the sky texture or the altitude
// gradient.
func DrawSky(s canvas.Surface, ac flight.Aircraft, tex Textures) {
	w, h := s.Size()
	if tex.Ready {
		s.DrawImage(tex.Sky, 0, 0, w, h)
		return
	}
	top, bottom := SkyColors(ac.Z)
	s.FillGradient(0, 0, w, h, top, bottom)
}

// TerrainOffset returns the tile grid origin for a screen position. It is
// negative or zero, matching a truncated remainder.
func TerrainOffset(x, y float64) (float64, float64) {
	return math.Mod(-(x * terrainParallax), TerrainTileSize),
		math.Mod(-(y * terrainParallax), TerrainTileSize)
}

// TerrainAlpha returns the terrain opacity for an altitude.
func TerrainAlpha(altitude float64) float64 {
	return coordinates.Max(terrainMinScale, 1-altitude/TerrainCeiling) * terrainAlpha
}

// DrawTerrain tiles the ground texture below TerrainCeiling. Nothing is
// drawn without textures.
func DrawTerrain(s canvas.Surface, ac flight.Aircraft, tex Textures) {
	if ac.Z >= TerrainCeiling || !tex.Ready {
		return
	}
	w, h := s.Size()
	ox, oy := TerrainOffset(ac.X, ac.Y)
	nx := int(math.Ceil(w/TerrainTileSize)) + 1
	ny := int(math.Ceil(h/TerrainTileSize)) + 1

	s.Save()
	s.SetAlpha(TerrainAlpha(ac.Z))
	for i := -1; i <= nx; i++ {
		for j := -1; j <= ny; j++ {
			s.DrawImage(tex.Terrain,
				ox+float64(i)*TerrainTileSize, oy+float64(j)*TerrainTileSize,
				TerrainTileSize, TerrainTileSize)
		}
	}
	s.Restore()
}

// CloudProjection places a cloud on screen. It reports false when the cloud
// is too far above or below the aircraft, or falls outside the surface
// grown by the cloud's size.
func CloudProjection(c environment.Cloud, ac flight.Aircraft, width, height float64) (x, y, parallax float64, visible bool) {
	parallax = 1 - math.Abs(ac.Z-c.Altitude)/CloudParallaxRange
	if parallax <= 0 {
		return 0, 0, parallax, false
	}
	x = (c.Position.X-ac.X*cloudTracking)*parallax + width/2
	y = (c.Position.Y-ac.Y*cloudTracking)*parallax + height/2
	visible = x > -c.Size && x < width+c.Size &&
		y > -c.Size && y < height+c.Size
	return x, y, parallax, visible
}

// CloudOpacity returns a visible cloud's draw alpha.
func CloudOpacity(c environment.Cloud, parallax, altitude float64) float64 {
	o := c.Opacity * parallax
	if altitude < HazeAltitude {
		o *= hazeFactor
	}
	return o
}

// AdvanceAndDrawClouds draws every visible cloud and moves it by its drift.
// Culled clouds do not drift. It returns the number of clouds drawn.
func AdvanceAndDrawClouds(s canvas.Surface, ac flight.Aircraft, clouds []environment.Cloud, tex Textures) int {
	w, h := s.Size()
	drawn := 0

	s.Save()
	for i := range clouds {
		c := &clouds[i]
		x, y, p, ok := CloudProjection(*c, ac, w, h)
		if !ok {
			continue
		}

		opacity := CloudOpacity(*c, p, ac.Z)
		s.SetAlpha(opacity)
		if tex.Ready {
			s.DrawImage(tex.Cloud, x-c.Size/2, y-c.Size/2, c.Size, c.Size)
			if c.Type == environment.CloudStorm {
				s.SetAlpha(opacity * stormOverlayAlpha)
				s.FillArc(x, y, c.Size*stormOverlayScale, 0, 2*math.Pi, stormShadow)
			}
		} else {
			fill := canvas.White
			if c.Type == environment.CloudStorm {
				fill = stormFlat
			}
			s.FillArc(x, y, c.Size, 0, 2*math.Pi, fill)
		}

		c.Position = c.Position.Add(c.Drift)
		drawn++
	}
	s.Restore()
	return drawn
}

// HorizonY returns the screen row of the artificial horizon's pivot.
func HorizonY(height, pitch float64) float64 {
	return height/2 + pitch*HorizonPitchScale
}

// DrawHorizon draws the translucent sky and ground half-planes and the
// horizon line, shifted by pitch and rotated by roll about the centre.
func DrawHorizon(s canvas.Surface, ac flight.Aircraft) {
	w, h := s.Size()

	s.Save()
	s.Translate(w/2, HorizonY(h, ac.Pitch))
	s.Rotate(coordinates.Radians(ac.Roll))
	s.FillRect(-w, -h, w*2, h, horizonSky)
	s.FillRect(-w, 0, w*2, h, horizonGround)
	s.StrokeLine(-w, 0, w, 0, horizonLineWidth, horizonLine)
	s.Restore()
}

// DrawAircraft draws the sprite, or a rectangle silhouette without
// textures, rotated by heading and foreshortened vertically by roll. The
// afterburner flame trails behind the nose, which points along local +x.
func DrawAircraft(s canvas.Surface, ac flight.Aircraft, tex Textures) {
	s.Save()
	defer s.Restore()

	s.Translate(ac.X, ac.Y)
	s.Rotate(coordinates.Radians(ac.Heading))
	s.Scale(1, math.Cos(coordinates.Radians(ac.Roll)))

	if tex.Ready {
		half := SpriteSize / 2
		s.DrawImage(tex.Aircraft, -half, -half, SpriteSize, SpriteSize)
		if ac.Afterburner {
			s.FillRect(-half-15, -8, 20, 16, flameOuter)
			s.FillRect(-half-10, -4, 15, 8, flameInner)
			s.FillRect(-half-5, -2, 10, 4, flameCore)
		}
		return
	}

	s.FillRect(-30, -5, 60, 10, bodyColor)
	s.FillRect(-25, -20, 50, 8, wingColor)
	s.FillRect(-25, 12, 50, 8, wingColor)
	s.FillRect(-35, -3, 10, 6, tailColor)
	s.FillRect(15, -3, 10, 6, cockpitColor)
	if ac.Afterburner {
		s.FillRect(-45, -2, 15, 4, flameOuter)
		s.FillRect(-40, -1, 10, 2, flameInner)
	}
}

// ContrailPoints returns the ContrailSegments+1 points of the vapour trail,
// starting at the aircraft and spaced along the reciprocal of the heading.
func ContrailPoints(ac flight.Aircraft) []coordinates.Vec2 {
	dir := coordinates.HeadingVector(ac.Heading)
	pts := make([]coordinates.Vec2, ContrailSegments+1)
	for i := range pts {
		d := float64(i) * contrailSpacing
		pts[i] = coordinates.Vec2{X: ac.X - dir.X*d, Y: ac.Y - dir.Y*d}
	}
	return pts
}

// DrawContrail draws the fading vapour trail above ContrailSpeed.
func DrawContrail(s canvas.Surface, ac flight.Aircraft) {
	if ac.Speed <= ContrailSpeed {
		return
	}
	pts := ContrailPoints(ac)

	s.Save()
	for i := 0; i < ContrailSegments; i++ {
		fade := 1 - float64(i)/ContrailSegments
		s.SetAlpha(contrailAlpha * fade)
		s.StrokeLine(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, contrailWidth, canvas.White)
	}
	s.Restore()
}
