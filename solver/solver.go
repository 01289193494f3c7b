// Package solver computes the marking distance, time and speed of a flight
// on a task while its fixes arrive.
package solver

import (
	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/task"
	"github.com/a-bouts/glider-scoring/tracker"
)

// Solver is fed the fixes of one competitor in time order. Feeding them one
// by one or in chunks gives the same result.
type Solver interface {
	Update(fix flight.Fix) []tracker.Event
	Consume(fixes []flight.Fix) []tracker.Event
	Marking() Marking
}

// Marking is what day scoring needs from a solver.
type Marking struct {
	Completed bool
	// Distance in meters.
	Distance float64
	// Time in seconds, absent while unknown.
	Time *float64
}

func New(t *task.Task) Solver {
	if t.Options.IsAAT {
		return NewAreaTaskSolver(t)
	}
	return NewRacingTaskSolver(t)
}

type Result struct {
	Completed bool `json:"completed"`
	// Time in seconds.
	Time *float64 `json:"time,omitempty"`
	// Distance in meters.
	Distance float64 `json:"distance"`
	// Speed in km/h.
	Speed *float64     `json:"speed,omitempty"`
	Path  []flight.Fix `json:"path"`
}

type AreaResult struct {
	Result
	// MarkingTime is the flown time, raised to the minimum task time.
	MarkingTime     *float64 `json:"marking_time,omitempty"`
	MinTimeExceeded bool     `json:"aat_min_time_exceeded"`
}

func consume(s Solver, fixes []flight.Fix) []tracker.Event {
	var events []tracker.Event
	for _, fix := range fixes {
		events = append(events, s.Update(fix)...)
	}
	return events
}

func seconds(from, to flight.Fix) float64 {
	return float64(to.Time-from.Time) / 1000
}

// speed in km/h of distance meters flown in time seconds.
func speed(distance, time float64) *float64 {
	if time <= 0 {
		return nil
	}
	v := (distance / 1000) / (time / 3600)
	return &v
}

func fixesAt(tr *tracker.Tracker, indices []int) []flight.Fix {
	fixes := make([]flight.Fix, len(indices))
	for i, idx := range indices {
		fixes[i] = tr.Fix(idx)
	}
	return fixes
}
