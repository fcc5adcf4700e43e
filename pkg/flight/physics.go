package flight

import (
	"math"

	"github.com/unklstewy/hornet/pkg/coordinates"
	"github.com/unklstewy/hornet/pkg/input"
)

// Atmosphere and propulsion constants
const (
	SeaLevelDensity  = 0.002377 // slug/ft³
	DensityScale     = 30000.0  // feet
	DryThrustFactor  = 0.85
	AfterburnerBoost = 1.5

	// visualScale converts knots·seconds into screen pixels
	visualScale = 0.1

	// feetPerHour converts the per-frame screen climb into the vertical rate unit
	feetPerHour = 3600.0
	liftGain    = 1000.0
	gravityGain = 60.0

	stallSpeed    = 120.0 // knots
	stallFloor    = 100.0 // feet
	stallPitchFix = 5.0   // degrees per frame

	compressibilityOnset = 900.0
	compressibilitySpan  = 300.0

	idleFuelFlow        = 500.0  // lb/h
	throttleFuelFlow    = 2000.0 // lb/h at full throttle
	afterburnerFuelMult = 2.5
	altitudeEconomy     = 0.3

	lowFuelLevel    = 10.0
	lowFuelThrottle = 0.5
)

// AirDensity returns the exponential-atmosphere density at an altitude in feet.
func AirDensity(altitude float64) float64 {
	return SeaLevelDensity * math.Exp(-altitude/DensityScale)
}

// Weight interpolates between empty and maximum weight by fuel fraction.
func Weight(p Profile, fuel float64) float64 {
	return p.EmptyWeight + (fuel/MaxFuel)*p.FuelCapacity()
}

// Thrust returns the current engine thrust in lbf. The afterburner replaces,
// rather than adds to, the throttle-scaled dry thrust.
func Thrust(p Profile, throttle float64, afterburner bool) float64 {
	if afterburner {
		return p.MaxThrust * AfterburnerBoost
	}
	return throttle * p.MaxThrust * DryThrustFactor
}

// Forces is the aerodynamic state computed at the start of a physics step.
type Forces struct {
	Density         float64 // slug/ft³
	Weight          float64 // lb
	Thrust          float64 // lbf
	DynamicPressure float64 // lb/ft²
	Drag            float64 // lbf
	Lift            float64 // lbf, already scaled by cos(roll)
	Acceleration    float64 // ft/s²
}

// ComputeForces evaluates thrust, drag and lift for the aircraft's current state.
func ComputeForces(ac Aircraft, p Profile) Forces {
	var f Forces
	f.Density = AirDensity(ac.Z)
	f.Weight = Weight(p, ac.Fuel)
	f.Thrust = Thrust(p, ac.Throttle, ac.Afterburner)

	v := ac.Speed * coordinates.KnotsToFeetPerSecond
	f.DynamicPressure = 0.5 * f.Density * v * v
	f.Drag = p.DragCoefficient * p.WingArea * f.DynamicPressure
	f.Lift = p.LiftCoefficient * p.WingArea * f.DynamicPressure * math.Cos(coordinates.Radians(ac.Roll))

	mass := f.Weight / coordinates.StandardGravity
	f.Acceleration = (f.Thrust - f.Drag) / mass
	return f
}

// FuelBurn returns the fuel used over dt seconds, in percent of capacity.
// Higher altitude improves economy.
func FuelBurn(p Profile, throttle float64, afterburner bool, altitude, dt float64) float64 {
	flow := (throttle*throttleFuelFlow + idleFuelFlow) / 3600
	burn := flow * dt / 3600
	if afterburner {
		burn *= afterburnerFuelMult
	}
	burn /= 1 + (altitude/MaxAltitude)*altitudeEconomy
	return burn / p.FuelCapacity() * 100
}

// Integrate advances the aircraft by dt seconds: speed from net force,
// position and altitude from attitude, then the stall, compressibility and
// fuel policies.
func Integrate(ac *Aircraft, p Profile, b Bounds, dt float64) Forces {
	f := ComputeForces(*ac, p)

	speedFtS := ac.Speed * coordinates.KnotsToFeetPerSecond
	newSpeedFtS := coordinates.Max(0, speedFtS+f.Acceleration*dt)
	ac.Speed = coordinates.Min(newSpeedFtS/coordinates.KnotsToFeetPerSecond, ac.MaxSpeed)

	heading := coordinates.Radians(ac.Heading)
	pitch := coordinates.Radians(ac.Pitch)
	roll := coordinates.Radians(ac.Roll)

	step := ac.Speed * dt * visualScale
	ac.VX = math.Sin(heading) * math.Cos(pitch) * step
	ac.VY = -math.Sin(pitch) * step

	verticalLift := f.Lift / f.Weight * math.Cos(pitch) * math.Sin(roll)
	ac.VZ = ac.VY*feetPerHour + verticalLift*liftGain*dt
	ac.VZ -= coordinates.StandardGravity * dt * gravityGain

	ac.X = coordinates.WrapEdge(ac.X+ac.VX, b.Width)
	ac.Y = coordinates.WrapEdge(ac.Y+ac.VY, b.Height)
	ac.Z = coordinates.Clamp(ac.Z+ac.VZ*dt/60, 0, MaxAltitude)

	if ac.Speed < stallSpeed && ac.Z > stallFloor {
		ac.Pitch = coordinates.Max(ac.Pitch-stallPitchFix, StallPitchDown)
	}

	if ac.Speed > compressibilityOnset {
		c := (ac.Speed - compressibilityOnset) / compressibilitySpan
		ac.Pitch *= 1 - c*highSpeedPitchK
		ac.Roll *= 1 - c*highSpeedRollK
	}

	burn := FuelBurn(p, ac.Throttle, ac.Afterburner, ac.Z, dt)
	ac.Fuel = coordinates.Max(0, ac.Fuel-burn)

	if ac.Fuel < lowFuelLevel {
		ac.Throttle = coordinates.Min(ac.Throttle, lowFuelThrottle)
	}
	if ac.Fuel <= 0 {
		ac.Throttle = 0
		ac.Afterburner = false
	}
	// The afterburner never outlives its gating conditions.
	if ac.Throttle <= AfterburnerMinThrottle || ac.Fuel <= AfterburnerMinFuel {
		ac.Afterburner = false
	}

	return f
}

// Step runs both stages for one frame in order.
func Step(ac *Aircraft, p Profile, b Bounds, held input.Set, dt float64) Forces {
	ApplyControls(ac, held)
	return Integrate(ac, p, b, dt)
}
