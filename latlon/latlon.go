package latlon

import "math"

const π = math.Pi

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRadians(a float64) float64 {
	return a * π / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / π
}

// Wrap360 normalizes an angle to [0, 360).
func Wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// Wrap180 normalizes an angle to [-180, 180).
func Wrap180(d float64) float64 {
	return Wrap360(d+180.0) - 180.0
}

// Bisect returns the angle halfway between a and b, measured along the
// shorter arc from a to b.
func Bisect(a, b float64) float64 {
	return Wrap360(a + Wrap180(b-a)/2)
}
