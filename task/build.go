package task

import (
	"fmt"

	"github.com/a-bouts/glider-scoring/latlon"
)

type ZoneType string

const (
	ZoneCylinder ZoneType = "Cylinder"
	ZoneLine     ZoneType = "Line"
	ZoneKeyhole  ZoneType = "Keyhole"
)

// ZoneSpec describes a turnpoint before its zone is resolved.
type ZoneSpec struct {
	Name     string
	Type     ZoneType
	Location latlon.LatLon
	Radius   float64 // Cylinder
	Length   float64 // Line
}

// Build resolves the zone specs into shapes and creates the task.
//
// Lines and keyholes are oriented from the neighbouring points: the start
// faces the first leg, the finish faces along the last leg and interior
// zones are perpendicular to the bisector of the legs meeting there.
func Build(specs []ZoneSpec, options Options) (*Task, error) {
	if len(specs) < 2 {
		return nil, ErrTooFewPoints
	}

	centers := make([]latlon.LatLon, len(specs))
	for i, s := range specs {
		centers[i] = s.Location
	}
	ruler := RulerFor(centers)

	points := make([]*Turnpoint, 0, len(specs))
	for i, s := range specs {
		var shape Shape

		switch s.Type {
		case ZoneCylinder:
			shape = NewCylinder(ruler, s.Location, s.Radius)
		case ZoneLine:
			shape = NewLine(ruler, s.Location, s.Length, direction(centers, i))
		case ZoneKeyhole:
			shape = NewKeyhole(ruler, s.Location, direction(centers, i)-90)
		default:
			return nil, fmt.Errorf("task: unknown zone type %q of point %d", s.Type, i)
		}

		points = append(points, &Turnpoint{Name: s.Name, Shape: shape})
	}

	return New(points, options)
}

func direction(centers []latlon.LatLon, i int) float64 {
	hav := latlon.LatLonHaversine{}
	location := centers[i]

	if i == 0 {
		return hav.BearingTo(location, centers[i+1])
	}
	if i == len(centers)-1 {
		return hav.BearingTo(centers[i-1], location)
	}

	bearingToPrev := hav.BearingTo(location, centers[i-1])
	bearingToNext := hav.BearingTo(location, centers[i+1])

	return latlon.Bisect(bearingToPrev, bearingToNext) - 90
}
