// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// Directional is a single directional light with lambert terms.
type Directional struct {
	Direction [3]float32 // towards the light, normalized
	Ambient   [3]float32
	Diffuse   [3]float32
}

// Default returns the stock scene light: key light from the top right,
// soft ambient fill.
func Default() Directional {
	return Directional{
		Direction: Normalize([3]float32{5, 5, 5}),
		Ambient:   [3]float32{0.2, 0.2, 0.2},
		Diffuse:   [3]float32{0.8, 0.8, 0.8},
	}
}

// FromAngles converts longitude/latitude angles in degrees to a normalized
// light direction. Longitude is rotation around the Y axis, latitude is
// elevation from the horizon.
func FromAngles(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	return [3]float32{
		float32(math.Cos(latRad) * math.Sin(lonRad)),
		float32(math.Sin(latRad)),
		float32(math.Cos(latRad) * math.Cos(lonRad)),
	}
}

// Normalize returns v scaled to unit length; a zero vector maps to straight
// up so lighting never divides by zero.
func Normalize(v [3]float32) [3]float32 {
	mag := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if mag == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / mag, v[1] / mag, v[2] / mag}
}
