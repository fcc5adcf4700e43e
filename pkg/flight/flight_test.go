package flight

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/unklstewy/hornet/pkg/input"
)

var testBounds = Bounds{Width: 800, Height: 600}

func newTestAircraft() Aircraft {
	return NewAircraft(SuperHornet(), testBounds)
}

// TestNewAircraft verifies the initial state.
func TestNewAircraft(t *testing.T) {
	ac := newTestAircraft()

	if ac.X != 400 || ac.Y != 300 {
		t.Errorf("Expected aircraft centred at (400,300), got (%f,%f)", ac.X, ac.Y)
	}
	if ac.Z != 1000 {
		t.Errorf("Expected altitude 1000, got %f", ac.Z)
	}
	if ac.Throttle != 0.3 {
		t.Errorf("Expected throttle 0.3, got %f", ac.Throttle)
	}
	if ac.Fuel != 100 {
		t.Errorf("Expected fuel 100, got %f", ac.Fuel)
	}
	if ac.Speed != 150 || ac.MaxSpeed != 1200 {
		t.Errorf("Expected speed 150 / max 1200, got %f / %f", ac.Speed, ac.MaxSpeed)
	}
	if ac.Afterburner {
		t.Error("Expected afterburner off")
	}
}

// TestResponsiveness tests the control authority curve.
func TestResponsiveness(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		altitude float64
		want     float64
	}{
		{"Full authority at 300 kt sea level", 300, 0, 1.0},
		{"Half speed halves authority", 150, 0, 0.5},
		{"Speed factor saturates", 900, 0, 1.0},
		{"Altitude dulls controls", 300, 25000, 0.5},
		{"Altitude factor floors at 0.3", 300, 50000, 0.3},
		{"Stopped aircraft has no authority", 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Responsiveness(tt.speed, tt.altitude)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

// TestApplyControls tests individual control responses.
func TestApplyControls(t *testing.T) {
	t.Run("Pitch up is capped at 45", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 300
		ac.Z = 0
		ac.Pitch = 44
		ApplyControls(&ac, input.Of(input.PitchUp))
		if ac.Pitch != MaxPitchUp {
			t.Errorf("Expected pitch 45, got %f", ac.Pitch)
		}
	})

	t.Run("Pitch down is floored at -30", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 300
		ac.Z = 0
		ac.Pitch = -29.5
		ApplyControls(&ac, input.Of(input.PitchDown))
		if ac.Pitch != MaxPitchDown {
			t.Errorf("Expected pitch -30, got %f", ac.Pitch)
		}
	})

	t.Run("Pitch rate scales with responsiveness", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 300
		ac.Z = 0
		ApplyControls(&ac, input.Of(input.PitchUp))
		if math.Abs(ac.Pitch-1.5) > 1e-9 {
			t.Errorf("Expected pitch 1.5, got %f", ac.Pitch)
		}
	})

	t.Run("Yaw right turns and banks", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 300
		ac.Z = 0
		ApplyControls(&ac, input.Of(input.YawRight))
		if math.Abs(ac.Heading-1.2) > 1e-9 {
			t.Errorf("Expected heading 1.2, got %f", ac.Heading)
		}
		if ac.Roll != 2 {
			t.Errorf("Expected roll 2, got %f", ac.Roll)
		}
	})

	t.Run("Yaw left wraps heading below zero", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 300
		ac.Z = 0
		ApplyControls(&ac, input.Of(input.YawLeft))
		if math.Abs(ac.Heading-358.8) > 1e-9 {
			t.Errorf("Expected heading 358.8, got %f", ac.Heading)
		}
	})

	t.Run("Coordinated turn roll is limited to 45", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Roll = 44.5
		ApplyControls(&ac, input.Of(input.YawRight))
		if ac.Roll != MaxTurnRoll {
			t.Errorf("Expected roll 45, got %f", ac.Roll)
		}
	})

	t.Run("Manual roll overrides the turn limit", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Roll = 45
		ApplyControls(&ac, input.Of(input.YawRight, input.RollRight))
		if ac.Roll != 47.5 {
			t.Errorf("Expected roll 47.5, got %f", ac.Roll)
		}
		ac.Roll = 59
		ApplyControls(&ac, input.Of(input.RollRight))
		if ac.Roll != MaxRoll {
			t.Errorf("Expected roll 60, got %f", ac.Roll)
		}
	})

	t.Run("Throttle rates and bounds", func(t *testing.T) {
		ac := newTestAircraft()
		ApplyControls(&ac, input.Of(input.ThrottleUp))
		if math.Abs(ac.Throttle-0.315) > 1e-9 {
			t.Errorf("Expected throttle 0.315, got %f", ac.Throttle)
		}
		ac.Throttle = 0.995
		ApplyControls(&ac, input.Of(input.ThrottleUp))
		if ac.Throttle != 1 {
			t.Errorf("Expected throttle 1, got %f", ac.Throttle)
		}
		ac.Throttle = 0.01
		ApplyControls(&ac, input.Of(input.ThrottleDown))
		if ac.Throttle != 0 {
			t.Errorf("Expected throttle 0, got %f", ac.Throttle)
		}
	})

	t.Run("Roll decays without roll input", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Roll = 10
		ApplyControls(&ac, 0)
		if math.Abs(ac.Roll-9.2) > 1e-9 {
			t.Errorf("Expected roll 9.2, got %f", ac.Roll)
		}
	})

	t.Run("Pitch eases toward speed trim", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 350 // trim target 2°
		ac.Pitch = 0
		ApplyControls(&ac, 0)
		if math.Abs(ac.Pitch-0.04) > 1e-9 {
			t.Errorf("Expected pitch 0.04, got %f", ac.Pitch)
		}
	})

	t.Run("High speed degrades pitch and roll", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 1200
		ac.Pitch = 10
		ac.Roll = 10
		ac.Z = 0
		ApplyControls(&ac, input.Of(input.PitchUp, input.RollRight))
		// pitch: (10+1.5)*0.7, roll: (10+2.5)*0.8
		if math.Abs(ac.Pitch-8.05) > 1e-9 {
			t.Errorf("Expected pitch 8.05, got %f", ac.Pitch)
		}
		if math.Abs(ac.Roll-10) > 1e-9 {
			t.Errorf("Expected roll 10, got %f", ac.Roll)
		}
	})
}

// TestAfterburnerGating verifies the afterburner is recomputed every frame.
func TestAfterburnerGating(t *testing.T) {
	tests := []struct {
		name     string
		held     input.Set
		throttle float64
		fuel     float64
		want     bool
	}{
		{"Held with high throttle and fuel", input.Of(input.Afterburner), 0.9, 50, true},
		{"Not held", 0, 0.9, 50, false},
		{"Throttle at threshold", input.Of(input.Afterburner), 0.8, 50, false},
		{"Fuel at threshold", input.Of(input.Afterburner), 0.9, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := newTestAircraft()
			ac.Throttle = tt.throttle
			ac.Fuel = tt.fuel
			ac.Afterburner = !tt.want
			ApplyControls(&ac, tt.held)
			if ac.Afterburner != tt.want {
				t.Errorf("Expected afterburner %v, got %v", tt.want, ac.Afterburner)
			}
		})
	}
}

// TestThrust verifies the afterburner overrides dry thrust.
func TestThrust(t *testing.T) {
	p := SuperHornet()
	if got := Thrust(p, 0.5, false); math.Abs(got-0.5*44000*0.85) > 1e-9 {
		t.Errorf("Expected dry thrust 18700, got %f", got)
	}
	if got := Thrust(p, 0.9, true); got != 66000 {
		t.Errorf("Expected afterburner thrust 66000, got %f", got)
	}
}

// TestAirDensity tests the exponential atmosphere.
func TestAirDensity(t *testing.T) {
	if got := AirDensity(0); got != SeaLevelDensity {
		t.Errorf("Expected sea level density %f, got %f", SeaLevelDensity, got)
	}
	want := SeaLevelDensity / math.E
	if got := AirDensity(30000); math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %g at 30000 ft, got %g", want, got)
	}
}

// TestWeight tests the fuel-dependent weight.
func TestWeight(t *testing.T) {
	p := SuperHornet()
	if got := Weight(p, 100); got != 66000 {
		t.Errorf("Expected 66000, got %f", got)
	}
	if got := Weight(p, 0); got != 32100 {
		t.Errorf("Expected 32100, got %f", got)
	}
	if got := Weight(p, 50); got != 49050 {
		t.Errorf("Expected 49050, got %f", got)
	}
}

// TestAfterburnerScenario runs full throttle with the afterburner held at
// one-second steps.
func TestAfterburnerScenario(t *testing.T) {
	p := SuperHornet()
	ac := newTestAircraft()
	ac.Throttle = 1
	ac.Fuel = 100
	held := input.Of(input.Afterburner)

	prevFuel := ac.Fuel
	for i := 0; i < 20; i++ {
		f := Step(&ac, p, testBounds, held, 1.0)
		if f.Thrust != p.MaxThrust*AfterburnerBoost {
			t.Fatalf("step %d: Expected afterburner thrust %f, got %f", i, p.MaxThrust*AfterburnerBoost, f.Thrust)
		}
		if ac.Fuel >= prevFuel {
			t.Fatalf("step %d: Expected fuel to decrease from %g, got %g", i, prevFuel, ac.Fuel)
		}
		prevFuel = ac.Fuel
	}
}

// TestFuelExhaustion verifies throttle and afterburner are forced off at zero fuel.
func TestFuelExhaustion(t *testing.T) {
	p := SuperHornet()
	ac := newTestAircraft()
	ac.Fuel = 0
	ac.Throttle = 1
	held := input.Of(input.ThrottleUp, input.Afterburner)

	for i := 0; i < 10; i++ {
		Step(&ac, p, testBounds, held, 1.0/60)
		if ac.Throttle != 0 {
			t.Fatalf("frame %d: Expected throttle 0, got %f", i, ac.Throttle)
		}
		if ac.Afterburner {
			t.Fatalf("frame %d: Expected afterburner off", i)
		}
		if ac.Fuel != 0 {
			t.Fatalf("frame %d: Expected fuel 0, got %f", i, ac.Fuel)
		}
	}
}

// TestLowFuelThrottleCap verifies throttle is capped at 0.5 below 10% fuel.
func TestLowFuelThrottleCap(t *testing.T) {
	p := SuperHornet()
	ac := newTestAircraft()
	ac.Fuel = 8
	ac.Throttle = 0.9
	Step(&ac, p, testBounds, input.Of(input.Afterburner), 1.0/60)
	if ac.Throttle != 0.5 {
		t.Errorf("Expected throttle capped to 0.5, got %f", ac.Throttle)
	}
	if ac.Afterburner {
		t.Error("Expected afterburner cleared once throttle is capped")
	}
}

// TestToroidalWrap verifies screen-edge wrapping preserves velocity.
func TestToroidalWrap(t *testing.T) {
	p := SuperHornet()

	t.Run("Exit right re-enters left", func(t *testing.T) {
		ac := newTestAircraft()
		ac.X = testBounds.Width - 0.5
		ac.Heading = 90
		ac.Speed = 600
		Integrate(&ac, p, testBounds, 1.0)
		if ac.X != 0 {
			t.Errorf("Expected x 0 after wrap, got %f", ac.X)
		}
		if ac.VX <= 0 {
			t.Errorf("Expected rightward velocity preserved, got %f", ac.VX)
		}
	})

	t.Run("Exit left re-enters right", func(t *testing.T) {
		ac := newTestAircraft()
		ac.X = 0.5
		ac.Heading = 270
		ac.Speed = 600
		Integrate(&ac, p, testBounds, 1.0)
		if ac.X != testBounds.Width {
			t.Errorf("Expected x %f after wrap, got %f", testBounds.Width, ac.X)
		}
		if ac.VX >= 0 {
			t.Errorf("Expected leftward velocity preserved, got %f", ac.VX)
		}
	})

	t.Run("Climbing off the top re-enters at the bottom", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Y = 0.5
		ac.Pitch = 30
		ac.Speed = 600
		Integrate(&ac, p, testBounds, 1.0)
		if ac.Y != testBounds.Height {
			t.Errorf("Expected y %f after wrap, got %f", testBounds.Height, ac.Y)
		}
		if ac.VY >= 0 {
			t.Errorf("Expected upward velocity preserved, got %f", ac.VY)
		}
	})
}

// TestStall verifies the nose is pushed down at low speed.
func TestStall(t *testing.T) {
	p := SuperHornet()

	ac := newTestAircraft()
	ac.Speed = 0
	ac.Throttle = 0
	ac.Z = 5000
	ac.Pitch = 10
	Integrate(&ac, p, testBounds, 1.0/60)
	if ac.Pitch != 5 {
		t.Errorf("Expected pitch 5 after stall correction, got %f", ac.Pitch)
	}

	ac.Pitch = -43
	ac.Speed = 0
	Integrate(&ac, p, testBounds, 1.0/60)
	if ac.Pitch != StallPitchDown {
		t.Errorf("Expected pitch floored at -45, got %f", ac.Pitch)
	}

	ground := newTestAircraft()
	ground.Z = 0
	ground.Speed = 0
	ground.Throttle = 0
	ground.Pitch = 3
	Integrate(&ground, p, testBounds, 1.0/60)
	if ground.Pitch != 3 {
		t.Errorf("Expected no stall correction near the ground, got pitch %f", ground.Pitch)
	}
}

// TestTrimConvergence verifies hands-off flight settles wings level and
// nose on the horizon at 250 kt.
func TestTrimConvergence(t *testing.T) {
	p := SuperHornet()
	ac := newTestAircraft()
	ac.Z = 20000
	ac.Roll = 40
	ac.Pitch = 20

	for i := 0; i < 3000; i++ {
		ac.Speed = 250
		Step(&ac, p, testBounds, 0, 1.0/60)
	}

	if math.Abs(ac.Roll) > 0.01 {
		t.Errorf("Expected roll near 0, got %f", ac.Roll)
	}
	if math.Abs(ac.Pitch) > 0.5 {
		t.Errorf("Expected pitch near 0, got %f", ac.Pitch)
	}
}

// TestInvariantsUnderRandomInput drives the model with arbitrary key
// sequences and step sizes and checks every bounded quantity each frame.
func TestInvariantsUnderRandomInput(t *testing.T) {
	p := SuperHornet()
	rng := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 20; run++ {
		ac := newTestAircraft()
		prevFuel := ac.Fuel

		for frame := 0; frame < 2000; frame++ {
			held := input.Set(rng.IntN(1 << 9))
			dt := rng.Float64() * 2
			if rng.IntN(50) == 0 {
				dt = 30 + rng.Float64()*300
			}

			Step(&ac, p, testBounds, held, dt)

			if ac.Heading < 0 || ac.Heading >= 360 {
				t.Fatalf("run %d frame %d: heading %f out of range", run, frame, ac.Heading)
			}
			if ac.Fuel < 0 || ac.Fuel > 100 {
				t.Fatalf("run %d frame %d: fuel %f out of range", run, frame, ac.Fuel)
			}
			if ac.Fuel > prevFuel {
				t.Fatalf("run %d frame %d: fuel increased from %f to %f", run, frame, prevFuel, ac.Fuel)
			}
			prevFuel = ac.Fuel
			if ac.Z < 0 || ac.Z > MaxAltitude {
				t.Fatalf("run %d frame %d: altitude %f out of range", run, frame, ac.Z)
			}
			if ac.Throttle < 0 || ac.Throttle > 1 {
				t.Fatalf("run %d frame %d: throttle %f out of range", run, frame, ac.Throttle)
			}
			if ac.Speed < 0 || ac.Speed > ac.MaxSpeed {
				t.Fatalf("run %d frame %d: speed %f out of range", run, frame, ac.Speed)
			}
			if ac.Roll < -MaxRoll || ac.Roll > MaxRoll {
				t.Fatalf("run %d frame %d: roll %f out of range", run, frame, ac.Roll)
			}
			if ac.X < 0 || ac.X > testBounds.Width || ac.Y < 0 || ac.Y > testBounds.Height {
				t.Fatalf("run %d frame %d: position (%f,%f) off canvas", run, frame, ac.X, ac.Y)
			}
			if ac.Afterburner && (!held.Has(input.Afterburner) ||
				ac.Throttle <= AfterburnerMinThrottle || ac.Fuel <= AfterburnerMinFuel) {
				t.Fatalf("run %d frame %d: afterburner on without its conditions", run, frame)
			}
		}
	}
}

// TestCompressibility verifies attitude damping above 900 kt.
func TestCompressibility(t *testing.T) {
	p := SuperHornet()

	tests := []struct {
		name      string
		speed     float64
		wantPitch float64
		wantRoll  float64
	}{
		{"Full damping at 1200 kt", 1200, 7, 16},
		{"Half damping at 1050 kt", 1050, 8.5, 18},
		{"No damping at 900 kt", 900, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := newTestAircraft()
			ac.Speed = tt.speed
			ac.Pitch = 10
			ac.Roll = 20
			// dt=0 leaves speed untouched so only the damping acts
			Integrate(&ac, p, testBounds, 0)
			if math.Abs(ac.Pitch-tt.wantPitch) > 1e-9 {
				t.Errorf("Expected pitch %f, got %f", tt.wantPitch, ac.Pitch)
			}
			if math.Abs(ac.Roll-tt.wantRoll) > 1e-9 {
				t.Errorf("Expected roll %f, got %f", tt.wantRoll, ac.Roll)
			}
		})
	}
}

// TestComputeForces tests drag and lift from dynamic pressure.
func TestComputeForces(t *testing.T) {
	p := SuperHornet()
	ac := newTestAircraft()
	ac.Z = 0
	ac.Speed = 300

	f := ComputeForces(ac, p)

	v := 300 * 1.68781
	q := 0.5 * SeaLevelDensity * v * v
	if math.Abs(f.DynamicPressure-q) > 1e-9 {
		t.Errorf("Expected dynamic pressure %f, got %f", q, f.DynamicPressure)
	}
	if want := p.DragCoefficient * p.WingArea * q; math.Abs(f.Drag-want) > 1e-9 {
		t.Errorf("Expected drag %f, got %f", want, f.Drag)
	}
	if want := p.LiftCoefficient * p.WingArea * q; math.Abs(f.Lift-want) > 1e-9 {
		t.Errorf("Expected wings-level lift %f, got %f", want, f.Lift)
	}
	if f.Weight != 66000 {
		t.Errorf("Expected full-tank weight 66000, got %f", f.Weight)
	}
	mass := f.Weight / 32.174
	if want := (f.Thrust - f.Drag) / mass; math.Abs(f.Acceleration-want) > 1e-9 {
		t.Errorf("Expected acceleration %f, got %f", want, f.Acceleration)
	}

	ac.Roll = 60
	banked := ComputeForces(ac, p)
	if math.Abs(banked.Lift-f.Lift/2) > 1e-6 {
		t.Errorf("Expected lift halved at 60° roll, got %f of %f", banked.Lift, f.Lift)
	}
	if banked.Drag != f.Drag {
		t.Errorf("Expected drag independent of roll, got %f and %f", banked.Drag, f.Drag)
	}

	ac.Roll = 0
	ac.Speed = 0
	if stopped := ComputeForces(ac, p); stopped.Drag != 0 || stopped.Lift != 0 {
		t.Errorf("Expected no aerodynamic force at rest, got drag %f lift %f", stopped.Drag, stopped.Lift)
	}
}

// TestFuelBurn tests the afterburner multiplier and altitude economy.
func TestFuelBurn(t *testing.T) {
	p := SuperHornet()

	dry := FuelBurn(p, 1, false, 0, 1)
	wantDry := (2000.0 + 500.0) / 3600 / 3600 / p.FuelCapacity() * 100
	if math.Abs(dry-wantDry) > 1e-15 {
		t.Errorf("Expected dry burn %g, got %g", wantDry, dry)
	}

	wet := FuelBurn(p, 1, true, 0, 1)
	if ratio := wet / dry; math.Abs(ratio-2.5) > 1e-9 {
		t.Errorf("Expected afterburner to burn 2.5x, got %f", ratio)
	}

	high := FuelBurn(p, 1, false, MaxAltitude, 1)
	if math.Abs(high-dry/1.3) > 1e-15 {
		t.Errorf("Expected burn at ceiling %g, got %g", dry/1.3, high)
	}

	idle := FuelBurn(p, 0, false, 0, 1)
	if math.Abs(idle/dry-0.2) > 1e-9 {
		t.Errorf("Expected idle flow to be 1/5 of full throttle, got %f", idle/dry)
	}

	if got := FuelBurn(p, 1, true, 0, 0); got != 0 {
		t.Errorf("Expected no burn over zero time, got %g", got)
	}
}

// TestVerticalIntegration tests gravity and climb integration into altitude.
func TestVerticalIntegration(t *testing.T) {
	p := SuperHornet()
	const dt = 1.0 / 60

	t.Run("Level wings fall under gravity", func(t *testing.T) {
		ac := newTestAircraft()
		z := ac.Z
		Integrate(&ac, p, testBounds, dt)

		wantVZ := -32.174 * dt * 60
		if math.Abs(ac.VZ-wantVZ) > 1e-9 {
			t.Errorf("Expected VZ %f, got %f", wantVZ, ac.VZ)
		}
		if want := z + wantVZ*dt/60; math.Abs(ac.Z-want) > 1e-9 {
			t.Errorf("Expected altitude %f, got %f", want, ac.Z)
		}
	})

	t.Run("Pitch couples screen motion into vertical rate", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Speed = 400
		ac.Pitch = 20
		z := ac.Z
		Integrate(&ac, p, testBounds, dt)

		if ac.VY >= 0 {
			t.Errorf("Expected upward screen motion, got VY %f", ac.VY)
		}
		wantVZ := ac.VY*3600 - 32.174*dt*60
		if math.Abs(ac.VZ-wantVZ) > 1e-9 {
			t.Errorf("Expected VZ %f, got %f", wantVZ, ac.VZ)
		}
		if want := z + ac.VZ*dt/60; math.Abs(ac.Z-want) > 1e-9 {
			t.Errorf("Expected altitude %f, got %f", want, ac.Z)
		}
	})

	t.Run("Ground clamps altitude", func(t *testing.T) {
		ac := newTestAircraft()
		ac.Z = 0
		Integrate(&ac, p, testBounds, dt)
		if ac.Z != 0 {
			t.Errorf("Expected altitude clamped to 0, got %f", ac.Z)
		}
	})
}
