// Package flight implements the simplified arcade flight model: a control
// response stage that turns held actions into attitude and throttle changes,
// and a physics stage that integrates forces into speed, position, altitude
// and fuel.
//
// The model is tuned for visual plausibility rather than aerodynamic
// accuracy. Nothing in this package returns an error; every quantity is kept
// in range by clamping.
package flight

// Limits shared by the control and physics stages.
const (
	MaxAltitude = 50000.0 // feet
	MaxFuel     = 100.0   // percent

	MaxPitchUp     = 45.0  // degrees, control input limit
	MaxPitchDown   = -30.0 // degrees, control input limit
	StallPitchDown = -45.0 // degrees, stall recovery limit
	MaxTurnRoll    = 45.0  // degrees, coordinated-turn roll limit
	MaxRoll        = 60.0  // degrees, manual roll limit

	AfterburnerMinThrottle = 0.8
	AfterburnerMinFuel     = 5.0
)

// Aircraft is the complete simulated state of the player's aircraft.
type Aircraft struct {
	// X, Y are screen-space position in pixels; both wrap at the canvas edges
	X, Y float64

	// Z is altitude in feet, [0, 50000]
	Z float64

	// VX, VY are the screen-space deltas applied in the last frame
	VX, VY float64

	// VZ is the vertical rate in the intermediate feet-per-hour-scaled unit
	VZ float64

	// Heading in degrees, [0, 360)
	Heading float64

	// Pitch in degrees, positive nose up
	Pitch float64

	// Roll in degrees, positive right wing down, [-60, 60]
	Roll float64

	// Throttle fraction [0, 1]
	Throttle float64

	// Afterburner is engaged only while held with throttle > 0.8 and fuel > 5
	Afterburner bool

	// Fuel remaining in percent [0, 100]
	Fuel float64

	// Speed in knots, [0, MaxSpeed]
	Speed float64

	// MaxSpeed in knots
	MaxSpeed float64
}

// Profile holds the airframe constants used by the physics stage.
type Profile struct {
	// Name is a display name for the airframe
	Name string `json:"name"`

	// MaxThrust is total dry thrust in lbf
	MaxThrust float64 `json:"max_thrust_lbf"`

	// EmptyWeight in lb
	EmptyWeight float64 `json:"empty_weight_lb"`

	// MaxWeight in lb; the difference to EmptyWeight is the fuel capacity
	MaxWeight float64 `json:"max_weight_lb"`

	// WingArea in ft²
	WingArea float64 `json:"wing_area_sqft"`

	// DragCoefficient is the constant Cd
	DragCoefficient float64 `json:"drag_coefficient"`

	// LiftCoefficient is the constant Cl
	LiftCoefficient float64 `json:"lift_coefficient"`

	// MaxSpeed in knots (Mach 1.8 ≈ 1200 kt)
	MaxSpeed float64 `json:"max_speed_kt"`
}

// SuperHornet returns the F/A-18E/F profile the simulator ships with
// (two F414-GE-400 engines).
func SuperHornet() Profile {
	return Profile{
		Name:            "F-18 Super Hornet",
		MaxThrust:       44000,
		EmptyWeight:     32100,
		MaxWeight:       66000,
		WingArea:        500,
		DragCoefficient: 0.022,
		LiftCoefficient: 1.2,
		MaxSpeed:        1200,
	}
}

// FuelCapacity returns the fuel mass in lb represented by 100% fuel.
func (p Profile) FuelCapacity() float64 {
	return p.MaxWeight - p.EmptyWeight
}

// Bounds is the size of the canvas the aircraft wraps around.
type Bounds struct {
	Width, Height float64
}

// NewAircraft returns the aircraft in its initial state: centred on the
// canvas at 1000 ft, 150 kt, 30% throttle and full tanks.
func NewAircraft(p Profile, b Bounds) Aircraft {
	return Aircraft{
		X:        b.Width / 2,
		Y:        b.Height / 2,
		Z:        1000,
		Throttle: 0.3,
		Fuel:     MaxFuel,
		Speed:    150,
		MaxSpeed: p.MaxSpeed,
	}
}
