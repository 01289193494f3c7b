package solver

import (
	"fmt"
	"math"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/task"
	"github.com/a-bouts/glider-scoring/tracker"
)

// RacingTaskSolver scores a task whose turnpoints are fixed. The distance of
// an unfinished flight is net of the start ring radius, like Task.Distance.
type RacingTaskSolver struct {
	task    *task.Task
	tracker *tracker.Tracker

	// best running marking distance while the task is not finished
	best float64
}

func NewRacingTaskSolver(t *task.Task) *RacingTaskSolver {
	return &RacingTaskSolver{
		task:    t,
		tracker: tracker.New(t, tracker.Options{}),
	}
}

func (s *RacingTaskSolver) Update(fix flight.Fix) []tracker.Event {
	events := s.tracker.Update(fix)

	leg, ok := s.tracker.CurrentLeg()
	if !ok {
		return events
	}

	// An outlanding competitor is credited the completed legs and the part
	// of the current leg already covered toward the next turnpoint.
	completed := 0.0
	for _, l := range s.task.Legs[:leg] {
		completed += l.Distance
	}

	next := s.task.Points[leg+1].Shape.Position()
	covered := s.task.Legs[leg].Distance - s.task.MeasureDistance(fix.Coordinate, next)

	distance := completed - s.task.StartRadius() + math.Max(0, covered)
	if distance > s.best {
		s.best = distance
	}

	return events
}

func (s *RacingTaskSolver) Consume(fixes []flight.Fix) []tracker.Event {
	return consume(s, fixes)
}

func (s *RacingTaskSolver) Result() Result {
	if finish, ok := s.tracker.Finish(); ok {
		path, found := searchPath(s.tracker, s.tracker.Reached(), finish)
		if !found {
			panic(fmt.Sprintf("solver: no path from a start to the finish at fix %d", finish))
		}
		path = append(path, finish)

		start := s.tracker.Fix(path[0])
		time := seconds(start, s.tracker.Fix(finish))

		return Result{
			Completed: true,
			Time:      &time,
			Distance:  s.task.Distance,
			Speed:     speed(s.task.Distance, time),
			Path:      fixesAt(s.tracker, path),
		}
	}

	result := Result{Distance: s.best, Path: []flight.Fix{}}
	if last, ok := s.tracker.Last(); ok && s.tracker.Started() {
		if path, found := searchPath(s.tracker, s.tracker.Reached(), last+1); found {
			result.Path = fixesAt(s.tracker, path)
		}
	}
	return result
}

func (s *RacingTaskSolver) Marking() Marking {
	r := s.Result()
	return Marking{Completed: r.Completed, Distance: r.Distance, Time: r.Time}
}
