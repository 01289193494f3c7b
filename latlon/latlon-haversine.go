package latlon

import "math"

// LatLonHaversine works on the sphere. Turnpoint zone directions are
// computed with it, everything measured during a flight uses a Ruler.
type LatLonHaversine struct{}

func (LatLonHaversine) initialBearingTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)

	Δλ := toRadians(to.Lon - from.Lon)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	y := math.Sin(Δλ) * math.Cos(φ2)
	θ := math.Atan2(y, x)

	b := toDegrees(θ)

	return Wrap360(b)
}

func (hav LatLonHaversine) BearingTo(from, to LatLon) float64 {
	return hav.initialBearingTo(from, to)
}
