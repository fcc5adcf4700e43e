// Package environment generates the scenery entities that share the sky
// with the aircraft.
package environment

import (
	"math/rand/v2"

	"github.com/MichaelTJones/pcg"

	"github.com/unklstewy/hornet/pkg/coordinates"
)

// CloudCount is the fixed number of clouds generated per session.
const CloudCount = 30

// Generation ranges
const (
	MinCloudAltitude = 5000.0  // feet
	MaxCloudAltitude = 35000.0 // feet
	MinCloudSize     = 40.0    // pixels
	MaxCloudSize     = 120.0   // pixels
	MinCloudOpacity  = 0.4
	MaxCloudOpacity  = 1.0
	StormProbability = 0.3
	MaxDriftSpeed    = 0.25 // pixels per drawn frame, per axis
)

// CloudType distinguishes fair-weather clouds from storm cells.
type CloudType int

const (
	CloudNormal CloudType = iota
	CloudStorm
)

// String returns the cloud type name.
func (c CloudType) String() string {
	if c == CloudStorm {
		return "storm"
	}
	return "normal"
}

// Cloud is a single parallax cloud.
type Cloud struct {
	// Position is the world-space position in pixels
	Position coordinates.Vec2

	// Altitude in feet
	Altitude float64

	// Size is the sprite diameter in pixels
	Size float64

	// Opacity in [0.4, 1.0]
	Opacity float64

	// Type is fixed at generation
	Type CloudType

	// Drift is added to Position each time the cloud is drawn
	Drift coordinates.Vec2
}

// Generate creates exactly CloudCount clouds scattered over a field four
// canvas widths wide and four canvas heights tall, starting one canvas
// before the origin.
func Generate(rng *rand.Rand, width, height float64) []Cloud {
	clouds := make([]Cloud, 0, CloudCount)
	for i := 0; i < CloudCount; i++ {
		c := Cloud{
			Position: coordinates.Vec2{
				X: rng.Float64()*width*4 - width,
				Y: rng.Float64()*height*4 - height,
			},
			Altitude: rng.Float64()*(MaxCloudAltitude-MinCloudAltitude) + MinCloudAltitude,
			Size:     rng.Float64()*(MaxCloudSize-MinCloudSize) + MinCloudSize,
			Opacity:  rng.Float64()*(MaxCloudOpacity-MinCloudOpacity) + MinCloudOpacity,
			Type:     CloudNormal,
		}
		if rng.Float64() > 1-StormProbability {
			c.Type = CloudStorm
		}
		c.Drift = coordinates.Vec2{
			X: (rng.Float64() - 0.5) * 2 * MaxDriftSpeed,
			Y: (rng.Float64() - 0.5) * 2 * MaxDriftSpeed,
		}
		clouds = append(clouds, c)
	}
	return clouds
}

// pcgSequence selects the PCG stream; the seed selects the position in it.
const pcgSequence = 0xda3e39cb94b95bdb

// pcgSource adapts the 32-bit PCG generator to math/rand/v2.
type pcgSource struct {
	pcg *pcg.PCG32
}

func (s pcgSource) Uint64() uint64 {
	return uint64(s.pcg.Random())<<32 | uint64(s.pcg.Random())
}

// NewRand returns the seeded random source used for scenery generation.
func NewRand(seed uint64) *rand.Rand {
	p := pcg.NewPCG32()
	p.Seed(seed, pcgSequence)
	return rand.New(pcgSource{pcg: p})
}
