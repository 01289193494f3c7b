package task

import (
	"errors"
	"math"

	"github.com/a-bouts/glider-scoring/latlon"
)

var ErrTooFewPoints = errors.New("task: a task needs at least a start and a finish")

type Role int

const (
	RoleStart Role = iota
	RoleTurn
	RoleFinish
)

func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleTurn:
		return "turn"
	case RoleFinish:
		return "finish"
	}
	return "unknown"
}

type Turnpoint struct {
	Name  string
	Shape Shape
	Role  Role
}

// CheckStart reports whether moving from p1 to p2 is a valid start: a
// line is crossed along its direction, an area zone is left.
func (tp *Turnpoint) CheckStart(p1, p2 latlon.LatLon) bool {
	if l, ok := tp.Shape.(*Line); ok {
		_, crossed := l.CheckCrossing(p1, p2)
		return crossed
	}
	return contains(tp.Shape, p1) && !contains(tp.Shape, p2)
}

// CheckFinish reports whether moving from p1 to p2 is a valid finish: a
// line is crossed along its direction, an area zone is entered.
func (tp *Turnpoint) CheckFinish(p1, p2 latlon.LatLon) bool {
	return tp.CheckEntry(p1, p2)
}

// CheckEntry reports whether the zone is reached between p1 and p2.
func (tp *Turnpoint) CheckEntry(p1, p2 latlon.LatLon) bool {
	if l, ok := tp.Shape.(*Line); ok {
		_, crossed := l.CheckCrossing(p1, p2)
		return crossed
	}
	return !contains(tp.Shape, p1) && contains(tp.Shape, p2)
}

// Contains reports whether p is inside the zone.
func (tp *Turnpoint) Contains(p latlon.LatLon) bool {
	return contains(tp.Shape, p)
}

type Leg struct {
	From     *Turnpoint
	To       *Turnpoint
	Distance float64
}

type Options struct {
	IsAAT bool
	// MinTime is the minimum task time of an assigned area task, in seconds.
	MinTime float64
}

type Task struct {
	Points  []*Turnpoint
	Legs    []Leg
	Options Options

	// Distance in meters, net of start and finish ring radii.
	Distance float64

	ruler latlon.Ruler
}

// New creates a task from its turnpoints. Roles are assigned from the
// position of each point.
func New(points []*Turnpoint, options Options) (*Task, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	centers := make([]latlon.LatLon, len(points))
	for i, p := range points {
		centers[i] = p.Shape.Position()
		switch {
		case i == 0:
			p.Role = RoleStart
		case i == len(points)-1:
			p.Role = RoleFinish
		default:
			p.Role = RoleTurn
		}
	}

	t := &Task{
		Points:  points,
		Options: options,
		ruler:   RulerFor(centers),
	}

	for i := 0; i < len(points)-1; i++ {
		t.Legs = append(t.Legs, Leg{
			From:     points[i],
			To:       points[i+1],
			Distance: t.ruler.DistanceTo(centers[i], centers[i+1]),
		})
	}

	t.Distance = t.calcDistance()

	return t, nil
}

// RulerFor returns the ruler used by a task whose zones are centered on
// the given points: it is set at the latitude of their bounding box center.
func RulerFor(centers []latlon.LatLon) latlon.Ruler {
	minLat, maxLat := math.Inf(1), math.Inf(-1)
	for _, c := range centers {
		minLat = math.Min(minLat, c.Lat)
		maxLat = math.Max(maxLat, c.Lat)
	}
	return latlon.NewRuler((minLat + maxLat) / 2)
}

// The task distance is the distance from the start point to the finish
// point via all turnpoints, less the radius of the start ring and less the
// radius of the finish ring, if used.
func (t *Task) calcDistance() float64 {
	centers := make([]latlon.LatLon, len(t.Points))
	for i, p := range t.Points {
		centers[i] = p.Shape.Position()
	}
	distance := t.ruler.LineDistance(centers)

	distance -= ringRadius(t.Start().Shape)
	distance -= ringRadius(t.Finish().Shape)

	return math.Max(0, distance)
}

func (t *Task) Start() *Turnpoint {
	return t.Points[0]
}

func (t *Task) Finish() *Turnpoint {
	return t.Points[len(t.Points)-1]
}

func (t *Task) Ruler() latlon.Ruler {
	return t.ruler
}

// MeasureDistance returns the distance between a and b in meters.
func (t *Task) MeasureDistance(a, b latlon.LatLon) float64 {
	return t.ruler.DistanceTo(a, b)
}

// StartRadius is the start ring radius, zero unless the start is a cylinder.
func (t *Task) StartRadius() float64 {
	return ringRadius(t.Start().Shape)
}

// FinishRadius is the finish ring radius, zero unless the finish is a
// cylinder.
func (t *Task) FinishRadius() float64 {
	return ringRadius(t.Finish().Shape)
}
