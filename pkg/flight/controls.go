package flight

import (
	"github.com/unklstewy/hornet/pkg/coordinates"
	"github.com/unklstewy/hornet/pkg/input"
)

// Control response tuning, per frame.
const (
	pitchRate      = 1.5
	yawRate        = 1.2
	turnRollRate   = 2.0
	manualRollRate = 2.5
	throttleUpRate = 0.015
	throttleDnRate = 0.02

	rollDecay     = 0.92
	trimSpeed     = 250.0
	trimGain      = 0.02
	trimSmoothing = 0.02

	highSpeedOnset  = 800.0
	highSpeedSpan   = 400.0
	highSpeedPitchK = 0.3
	highSpeedRollK  = 0.2
)

// Responsiveness scales control inputs: sharper at speed, duller at altitude.
func Responsiveness(speed, altitude float64) float64 {
	speedFactor := coordinates.Min(speed/300, 1)
	altitudeFactor := coordinates.Max(0.3, 1-altitude/MaxAltitude)
	return speedFactor * altitudeFactor
}

// TrimPitch is the pitch the aircraft eases toward with no pitch input.
// It is zero at 250 kt, nose up below and nose down above.
func TrimPitch(speed float64) float64 {
	return (speed - trimSpeed) * trimGain
}

// ApplyControls runs the control-response stage for one frame. Coupled yaw
// roll is applied before manual roll, so manual roll limits win when both
// are held.
func ApplyControls(ac *Aircraft, held input.Set) {
	r := Responsiveness(ac.Speed, ac.Z)

	if held.Has(input.PitchUp) {
		ac.Pitch = coordinates.Min(ac.Pitch+pitchRate*r, MaxPitchUp)
	}
	if held.Has(input.PitchDown) {
		ac.Pitch = coordinates.Max(ac.Pitch-pitchRate*r, MaxPitchDown)
	}

	// Coordinated turn
	if held.Has(input.YawLeft) {
		ac.Heading -= yawRate * r
		ac.Roll = coordinates.Max(ac.Roll-turnRollRate, -MaxTurnRoll)
	}
	if held.Has(input.YawRight) {
		ac.Heading += yawRate * r
		ac.Roll = coordinates.Min(ac.Roll+turnRollRate, MaxTurnRoll)
	}

	if held.Has(input.RollLeft) {
		ac.Roll = coordinates.Max(ac.Roll-manualRollRate, -MaxRoll)
	}
	if held.Has(input.RollRight) {
		ac.Roll = coordinates.Min(ac.Roll+manualRollRate, MaxRoll)
	}

	if held.Has(input.ThrottleUp) {
		ac.Throttle = coordinates.Min(ac.Throttle+throttleUpRate, 1)
	}
	if held.Has(input.ThrottleDown) {
		ac.Throttle = coordinates.Max(ac.Throttle-throttleDnRate, 0)
	}

	// Not sticky: re-evaluated from scratch every frame.
	ac.Afterburner = held.Has(input.Afterburner) &&
		ac.Throttle > AfterburnerMinThrottle &&
		ac.Fuel > AfterburnerMinFuel

	ac.Heading = coordinates.NormalizeHeading(ac.Heading)

	// Auto trim
	if !held.Any(input.RollLeft, input.RollRight, input.YawLeft, input.YawRight) {
		ac.Roll *= rollDecay
	}
	if !held.Any(input.PitchUp, input.PitchDown) {
		ac.Pitch += (TrimPitch(ac.Speed) - ac.Pitch) * trimSmoothing
	}

	if ac.Speed > highSpeedOnset {
		f := (ac.Speed - highSpeedOnset) / highSpeedSpan
		ac.Pitch *= 1 - f*highSpeedPitchK
		ac.Roll *= 1 - f*highSpeedRollK
	}
}
