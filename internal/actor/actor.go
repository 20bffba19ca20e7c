// Package actor holds the controlled model's transform state and its
// per-tick state transition.
package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/frostbay/joyrig/internal/joystick"
)

// Joystick ADC geometry: 10-bit readings centered at 512.
const (
	adcCenter    = 512
	adcHalfRange = 512.0
)

// State is the persistent position and orientation of the controlled model.
// Angles are in degrees. Created zero-valued at startup and advanced exactly
// once per tick.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3 // reserved for movement smoothing
	Pitch    float64
	Yaw      float64
	Roll     float64
}

// Tuning holds the per-tick control constants.
type Tuning struct {
	MovementSpeed float64 `yaml:"movement_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	JumpHeight    float64 `yaml:"jump_height"`
	FallRate      float64 `yaml:"fall_rate"`
	Deadzone      float64 `yaml:"deadzone"`
}

// DefaultTuning returns the stock control constants.
func DefaultTuning() Tuning {
	return Tuning{
		MovementSpeed: 0.1,
		RotationSpeed: 2.0,
		JumpHeight:    0.2,
		FallRate:      0.05,
		Deadzone:      0.1,
	}
}

// Advance computes the next state from the current one and an optional
// joystick sample. Pure function: no sample means no horizontal or yaw
// change, but the vertical step still runs — falling depends on altitude,
// not on input arrival, so gravity applies even when the channel is silent.
//
// Invariants on the result: Yaw is wrapped into [0,360) and Position.Y()
// never goes below zero.
func Advance(st State, s *joystick.Sample, t Tuning) State {
	pressed := false

	if s != nil {
		nx := (float64(s.X) - adcCenter) / adcHalfRange
		ny := (float64(s.Y) - adcCenter) / adcHalfRange

		// Deadzone suppresses ADC jitter around the stick's rest position.
		if math.Abs(nx) < t.Deadzone {
			nx = 0
		}
		if math.Abs(ny) < t.Deadzone {
			ny = 0
		}

		st.Position[0] += nx * t.MovementSpeed
		st.Yaw = wrapDegrees(st.Yaw + ny*t.RotationSpeed)

		pressed = s.Pressed
	}

	if pressed {
		// Held presses stack height without bound. The source device
		// behaves this way (no grounded check) and the behavior is kept.
		st.Position[1] += t.JumpHeight
	} else if st.Position[1] > 0 {
		st.Position[1] = math.Max(0, st.Position[1]-t.FallRate)
	}

	return st
}

// wrapDegrees maps an angle into [0,360), including negative inputs.
func wrapDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}
