package latlon

import "math"

const (
	wgs84Radius     = 6378.137e3
	wgs84Flattening = 1 / 298.257223563
)

// Ruler approximates the earth as flat around a reference latitude. Over
// the few hundred kilometers of a task the error stays far below what
// matters for scoring, and every measure is a handful of multiplications.
type Ruler struct {
	kx float64
	ky float64
}

func NewRuler(lat float64) Ruler {
	e2 := wgs84Flattening * (2 - wgs84Flattening)
	m := toRadians(1) * wgs84Radius

	coslat := math.Cos(toRadians(lat))
	w2 := 1 / (1 - e2*(1-coslat*coslat))
	w := math.Sqrt(w2)

	return Ruler{
		kx: m * w * coslat,
		ky: m * w * w2 * (1 - e2),
	}
}

func wrapLon(deg float64) float64 {
	for deg < -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}

func (r Ruler) DistanceTo(from, to LatLon) float64 {
	dx := wrapLon(from.Lon-to.Lon) * r.kx
	dy := (from.Lat - to.Lat) * r.ky
	return math.Sqrt(dx*dx + dy*dy)
}

// BearingTo returns the bearing in degrees, in (-180, 180].
func (r Ruler) BearingTo(from, to LatLon) float64 {
	dx := wrapLon(to.Lon-from.Lon) * r.kx
	dy := (to.Lat - from.Lat) * r.ky
	return toDegrees(math.Atan2(dx, dy))
}

func (r Ruler) DistanceAndBearingTo(from, to LatLon) (float64, float64) {
	return r.DistanceTo(from, to), r.BearingTo(from, to)
}

func (r Ruler) Destination(from LatLon, bearing float64, distance float64) LatLon {
	a := toRadians(bearing)
	return r.Offset(from, math.Sin(a)*distance, math.Cos(a)*distance)
}

// Offset moves p by dx meters east and dy meters north.
func (r Ruler) Offset(p LatLon, dx, dy float64) LatLon {
	return LatLon{Lat: p.Lat + dy/r.ky, Lon: p.Lon + dx/r.kx}
}

// LineDistance is the length of the polyline through points.
func (r Ruler) LineDistance(points []LatLon) float64 {
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += r.DistanceTo(points[i], points[i+1])
	}
	return total
}

// PointOnLine returns the point of the polyline closest to p, the index of
// the segment it lies on and its position along that segment.
func (r Ruler) PointOnLine(line []LatLon, p LatLon) (LatLon, int, float64) {
	if len(line) == 1 {
		return line[0], 0, 0
	}

	minDist := math.Inf(1)
	var minX, minY, minT float64
	minI := 0

	for i := 0; i < len(line)-1; i++ {
		x := line[i].Lon
		y := line[i].Lat
		dx := wrapLon(line[i+1].Lon-x) * r.kx
		dy := (line[i+1].Lat - y) * r.ky
		t := 0.0

		if dx != 0 || dy != 0 {
			t = (wrapLon(p.Lon-x)*r.kx*dx + (p.Lat-y)*r.ky*dy) / (dx*dx + dy*dy)

			if t > 1 {
				x = line[i+1].Lon
				y = line[i+1].Lat
			} else if t > 0 {
				x += dx / r.kx * t
				y += dy / r.ky * t
			}
		}

		dx = wrapLon(p.Lon-x) * r.kx
		dy = (p.Lat - y) * r.ky

		if sq := dx*dx + dy*dy; sq < minDist {
			minDist = sq
			minX, minY = x, y
			minI = i
			minT = t
		}
	}

	return LatLon{Lat: minY, Lon: minX}, minI, math.Max(0, math.Min(1, minT))
}

// Flat projects p to planar meters. Only differences between projected
// points are meaningful.
func (r Ruler) Flat(p LatLon) [2]float64 {
	return [2]float64{p.Lon * r.kx, p.Lat * r.ky}
}
