package task

import (
	"fmt"
	"math"

	"github.com/a-bouts/glider-scoring/latlon"
)

// KeyholeRadius is the radius of the cylinder part of a keyhole zone.
const KeyholeRadius = 500.0

// Shape is an observation zone. The set of shapes is closed: *Cylinder,
// *Line and *Keyhole.
type Shape interface {
	Position() latlon.LatLon
	isShape()
}

type Cylinder struct {
	Center latlon.LatLon
	Radius float64

	ruler latlon.Ruler
}

type Line struct {
	Center latlon.LatLon
	Length float64
	// Direction in which crossing the line counts.
	Direction float64
	Ends      [2]latlon.LatLon

	ruler latlon.Ruler
}

// Keyhole is a cylinder of KeyholeRadius joined with the half plane
// within 90° either side of Direction, seen from the center.
type Keyhole struct {
	Center    latlon.LatLon
	Direction float64

	ruler latlon.Ruler
}

func NewCylinder(ruler latlon.Ruler, center latlon.LatLon, radius float64) *Cylinder {
	return &Cylinder{Center: center, Radius: radius, ruler: ruler}
}

func NewLine(ruler latlon.Ruler, center latlon.LatLon, length, direction float64) *Line {
	return &Line{
		Center:    center,
		Length:    length,
		Direction: direction,
		Ends: [2]latlon.LatLon{
			ruler.Destination(center, direction+90, length/2),
			ruler.Destination(center, direction-90, length/2),
		},
		ruler: ruler,
	}
}

func NewKeyhole(ruler latlon.Ruler, center latlon.LatLon, direction float64) *Keyhole {
	return &Keyhole{Center: center, Direction: direction, ruler: ruler}
}

func (c *Cylinder) Position() latlon.LatLon { return c.Center }
func (l *Line) Position() latlon.LatLon     { return l.Center }
func (k *Keyhole) Position() latlon.LatLon  { return k.Center }

func (*Cylinder) isShape() {}
func (*Line) isShape()     {}
func (*Keyhole) isShape()  {}

func (c *Cylinder) IsInside(p latlon.LatLon) bool {
	return c.ruler.DistanceTo(c.Center, p) <= c.Radius
}

// CheckCrossing returns the fraction of p1->p2 covered when the line is
// crossed, as long as the crossing goes along Direction.
func (l *Line) CheckCrossing(p1, p2 latlon.LatLon) (float64, bool) {
	f, ok := latlon.SegmentIntersection(p1, p2, l.Ends[0], l.Ends[1])
	if !ok {
		return 0, false
	}

	bearing := l.ruler.BearingTo(p1, p2)
	diff := latlon.Wrap360(l.Direction - bearing)
	if diff > 90 && diff < 270 {
		return 0, false
	}
	return f, true
}

func (k *Keyhole) IsInside(p latlon.LatLon) bool {
	d, b := k.ruler.DistanceAndBearingTo(k.Center, p)
	if d <= KeyholeRadius {
		return true
	}
	return math.Abs(latlon.Wrap180(b-k.Direction)) <= 90
}

func unknownShape(s Shape) string {
	return fmt.Sprintf("task: unknown shape %T", s)
}

// contains reports whether p lies inside an area zone. A line has no
// inside.
func contains(s Shape, p latlon.LatLon) bool {
	switch s := s.(type) {
	case *Cylinder:
		return s.IsInside(p)
	case *Keyhole:
		return s.IsInside(p)
	case *Line:
		return false
	}
	panic(unknownShape(s))
}

// ringRadius is the radius netted out of the task distance when the zone
// is used as start or finish ring.
func ringRadius(s Shape) float64 {
	switch s := s.(type) {
	case *Cylinder:
		return s.Radius
	case *Line, *Keyhole:
		return 0
	}
	panic(unknownShape(s))
}

// NearestPoint returns the point of the zone boundary nearest to p. For a
// keyhole p itself is returned when it is already inside.
func NearestPoint(s Shape, p latlon.LatLon) latlon.LatLon {
	switch s := s.(type) {
	case *Cylinder:
		return circlePoint(s.ruler, s.Center, s.Radius, p)

	case *Line:
		q, _, _ := s.ruler.PointOnLine(s.Ends[:], p)
		return q

	case *Keyhole:
		if s.IsInside(p) {
			return p
		}
		c := circlePoint(s.ruler, s.Center, KeyholeRadius, p)

		// p is behind the dividing line, project it onto that line
		pp, pc := s.ruler.Flat(p), s.ruler.Flat(s.Center)
		a := latlon.Wrap180(s.Direction) * math.Pi / 180
		ux, uy := math.Sin(a), math.Cos(a)
		along := (pp[0]-pc[0])*ux + (pp[1]-pc[1])*uy
		h := s.ruler.Offset(p, -along*ux, -along*uy)

		if s.ruler.DistanceTo(p, h) < s.ruler.DistanceTo(p, c) {
			return h
		}
		return c
	}
	panic(unknownShape(s))
}

func circlePoint(ruler latlon.Ruler, center latlon.LatLon, radius float64, p latlon.LatLon) latlon.LatLon {
	d, b := ruler.DistanceAndBearingTo(center, p)
	if d == 0 {
		b = 0
	}
	return ruler.Destination(center, b, radius)
}
