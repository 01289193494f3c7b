package solver

import (
	"fmt"
	"math"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/latlon"
	"github.com/a-bouts/glider-scoring/task"
	"github.com/a-bouts/glider-scoring/tracker"
)

// edge is the best path from the start ending at one fix.
type edge struct {
	distance float64
	// prev is the fix the path goes through in the previous area, -1 when
	// it comes straight from the start.
	prev int
}

type solution struct {
	last int
	edge edge
}

// AreaTaskSolver finds the credited fixes inside the assigned areas that
// give the largest distance.
//
// The candidate fixes form a layered graph: the start point, the convex
// hull fixes of each area in turn, then the finish point. The best path to
// each candidate fix is kept in edges, keyed by arena index. Fixes of an
// area stop changing once the next area is reached, so an edge never has to
// be recomputed.
type AreaTaskSolver struct {
	task    *task.Task
	tracker *tracker.Tracker

	edges map[int]edge
	// areas 1..filled have all their edges
	filled int

	best *solution
}

func NewAreaTaskSolver(t *task.Task) *AreaTaskSolver {
	return &AreaTaskSolver{
		task:    t,
		tracker: tracker.New(t, tracker.Options{TrackConvexHull: true}),
		edges:   make(map[int]edge),
	}
}

func (s *AreaTaskSolver) Update(fix flight.Fix) []tracker.Event {
	events := s.tracker.Update(fix)

	leg, ok := s.tracker.CurrentLeg()
	if !ok {
		return events
	}
	idx, _ := s.tracker.Last()

	// On the last leg the outlanding distance is measured to the finish
	// point, on any other leg to the point of the next area nearest to the
	// outlanding position.
	var target latlon.LatLon
	if leg == len(s.task.Legs)-1 {
		target = s.task.Finish().Shape.Position()
	} else {
		target = task.NearestPoint(s.task.Points[leg+1].Shape, fix.Coordinate)
	}
	remaining := s.task.MeasureDistance(fix.Coordinate, target)

	var e edge
	if leg == 0 {
		start := s.task.Start().Shape.Position()
		e = edge{distance: s.task.MeasureDistance(start, target) - remaining, prev: -1}
	} else {
		e = s.bestEdgeTo(leg, func(p latlon.LatLon) float64 {
			return math.Max(0, s.task.MeasureDistance(p, target)-remaining)
		})
	}

	if e.distance > 0 && (s.best == nil || e.distance > s.best.edge.distance) {
		s.best = &solution{last: idx, edge: e}
	}

	return events
}

func (s *AreaTaskSolver) Consume(fixes []flight.Fix) []tracker.Event {
	return consume(s, fixes)
}

// bestEdgeTo extends the paths ending in area by one more leg and returns
// the longest.
func (s *AreaTaskSolver) bestEdgeTo(area int, leg func(latlon.LatLon) float64) edge {
	s.fillEdges(area)
	return s.pick(area, leg)
}

// pick expects the edges of area to be filled.
func (s *AreaTaskSolver) pick(area int, leg func(latlon.LatLon) float64) edge {
	fixes := s.tracker.AreaFixes(area)
	if len(fixes) == 0 {
		panic(fmt.Sprintf("solver: no fix recorded in area %d", area))
	}

	best := edge{distance: math.Inf(-1), prev: -1}
	for _, f := range fixes {
		d := s.edges[f].distance + leg(s.tracker.Fix(f).Coordinate)
		if d > best.distance {
			best = edge{distance: d, prev: f}
		}
	}
	return best
}

// fillEdges computes the missing edges of areas 1..upTo, lowest area first
// so that every area only reads edges of the one before.
func (s *AreaTaskSolver) fillEdges(upTo int) {
	open, recording := s.tracker.CurrentLeg()
	start := s.task.Start().Shape.Position()

	for area := s.filled + 1; area <= upTo; area++ {
		for _, f := range s.tracker.AreaFixes(area) {
			if _, ok := s.edges[f]; ok {
				continue
			}

			p := s.tracker.Fix(f).Coordinate
			if area == 1 {
				s.edges[f] = edge{distance: s.task.MeasureDistance(start, p), prev: -1}
				continue
			}

			s.edges[f] = s.pick(area-1, func(q latlon.LatLon) float64 {
				return s.task.MeasureDistance(q, p)
			})
		}

		if !recording || area < open {
			s.filled = area
		}
	}
}

// pathFor follows the edges back from the last fix of a solution and
// prepends the latest start before the first credited fix.
func (s *AreaTaskSolver) pathFor(sol solution) []int {
	path := []int{sol.last}
	for e := sol.edge; e.prev >= 0; e = s.edges[e.prev] {
		path = append(path, e.prev)
	}

	first := path[len(path)-1]
	start, ok := latestStart(s.tracker.Starts(), first)
	if !ok {
		panic(fmt.Sprintf("solver: no start before fix %d", first))
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *AreaTaskSolver) finishEdge() edge {
	finish := s.task.Finish().Shape.Position()
	last := len(s.task.Points) - 2

	if last == 0 {
		start := s.task.Start().Shape.Position()
		return edge{distance: s.task.MeasureDistance(start, finish), prev: -1}
	}
	return s.bestEdgeTo(last, func(p latlon.LatLon) float64 {
		return s.task.MeasureDistance(p, finish)
	})
}

func (s *AreaTaskSolver) Result() AreaResult {
	minTime := s.task.Options.MinTime

	if finish, ok := s.tracker.Finish(); ok {
		e := s.finishEdge()
		distance := math.Max(0, e.distance-s.task.FinishRadius())

		path := s.pathFor(solution{last: finish, edge: e})
		time := seconds(s.tracker.Fix(path[0]), s.tracker.Fix(finish))
		marking := math.Max(time, minTime)

		return AreaResult{
			Result: Result{
				Completed: true,
				Time:      &time,
				Distance:  distance,
				Speed:     speed(distance, marking),
				Path:      fixesAt(s.tracker, path),
			},
			MarkingTime:     &marking,
			MinTimeExceeded: time > minTime,
		}
	}

	if s.best == nil {
		return AreaResult{Result: Result{Path: []flight.Fix{}}}
	}

	// intermediate time and speed are for information only
	path := s.pathFor(*s.best)
	last, _ := s.tracker.Last()
	time := seconds(s.tracker.Fix(path[0]), s.tracker.Fix(last))

	return AreaResult{
		Result: Result{
			Time:     &time,
			Distance: s.best.edge.distance,
			Speed:    speed(s.best.edge.distance, time),
			Path:     fixesAt(s.tracker, path),
		},
		MinTimeExceeded: time > minTime,
	}
}

func (s *AreaTaskSolver) Marking() Marking {
	r := s.Result()
	m := Marking{Completed: r.Completed, Distance: r.Distance, Time: r.Time}
	if r.Completed {
		m.Time = r.MarkingTime
	}
	return m
}
