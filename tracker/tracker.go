// Package tracker follows a competitor through the zones of a task, one
// fix at a time: valid starts, the turnpoints reached in sequence, the
// fixes recorded inside each reached zone and the finish.
package tracker

import (
	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/latlon"
	"github.com/a-bouts/glider-scoring/task"
)

type EventType int

const (
	EventStart EventType = iota
	EventTurn
	EventFinish
)

func (e EventType) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventTurn:
		return "turn"
	case EventFinish:
		return "finish"
	}
	return "unknown"
}

// Event is a transition observed while consuming a fix. Num is the index
// of the turnpoint involved.
type Event struct {
	Type EventType  `json:"type"`
	Fix  flight.Fix `json:"fix"`
	Num  int        `json:"num"`
}

// AreaVisit is one stay inside a reached turnpoint zone. Fix references
// are indices into the tracker arena.
type AreaVisit struct {
	Enter int
	// Exit is the first fix outside the zone again, -1 while still inside.
	Exit int
	// Fixes recorded inside the zone in time order. With convex hull
	// tracking only the hull vertices are kept.
	Fixes []int
}

type Options struct {
	TrackConvexHull bool
}

type Tracker struct {
	task *task.Task
	opts Options

	fixes []flight.Fix
	last  int

	// next is the index of the turnpoint to reach next. 0 until a valid
	// start, len(task.Points) once finished.
	next int

	starts []int
	visits [][]AreaVisit
	finish int
}

func New(t *task.Task, opts Options) *Tracker {
	return &Tracker{
		task:   t,
		opts:   opts,
		last:   -1,
		visits: make([][]AreaVisit, len(t.Points)),
		finish: -1,
	}
}

// Update consumes the next fix and returns the transitions it caused. A
// crossing needs a previous fix, so the first fix never causes one. At
// most one transition happens per fix.
func (t *Tracker) Update(fix flight.Fix) []Event {
	idx := len(t.fixes)
	t.fixes = append(t.fixes, fix)

	prev := t.last
	t.last = idx

	if prev < 0 || t.Finished() {
		return nil
	}

	p1, p2 := t.fixes[prev].Coordinate, fix.Coordinate
	points := t.task.Points
	n := len(points)

	if reached := t.next - 1; reached >= 1 && reached <= n-2 {
		t.record(reached, idx)
	}

	if t.next < 2 && t.task.Start().CheckStart(p1, p2) {
		t.starts = append(t.starts, idx)
		t.next = 1
		return []Event{{Type: EventStart, Fix: fix, Num: 0}}
	}

	if t.next == 0 {
		return nil
	}

	if t.next == n-1 {
		if t.task.Finish().CheckFinish(p1, p2) {
			t.finish = idx
			t.next = n
			return []Event{{Type: EventFinish, Fix: fix, Num: n - 1}}
		}
		return nil
	}

	if points[t.next].CheckEntry(p1, p2) {
		num := t.next
		t.visits[num] = append(t.visits[num], AreaVisit{Enter: idx, Exit: -1, Fixes: []int{idx}})
		t.next++
		return []Event{{Type: EventTurn, Fix: fix, Num: num}}
	}

	return nil
}

// record keeps following the zone of the last reached turnpoint.
func (t *Tracker) record(num int, idx int) {
	tp := t.task.Points[num]
	inside := tp.Contains(t.fixes[idx].Coordinate)

	visits := t.visits[num]
	open := len(visits) > 0 && visits[len(visits)-1].Exit < 0

	switch {
	case inside && open:
		v := &visits[len(visits)-1]
		v.Fixes = t.add(v.Fixes, idx)
	case inside:
		t.visits[num] = append(visits, AreaVisit{Enter: idx, Exit: -1, Fixes: []int{idx}})
	case open:
		visits[len(visits)-1].Exit = idx
	}
}

func (t *Tracker) add(fixes []int, idx int) []int {
	fixes = append(fixes, idx)
	if !t.opts.TrackConvexHull || len(fixes) <= 3 {
		return fixes
	}

	ruler := t.task.Ruler()
	points := make([][2]float64, len(fixes))
	for i, f := range fixes {
		points[i] = ruler.Flat(t.fixes[f].Coordinate)
	}

	hull := latlon.ConvexHull(points)
	kept := make([]bool, len(fixes))
	for _, h := range hull {
		kept[h] = true
	}

	reduced := fixes[:0]
	for i, f := range fixes {
		if kept[i] {
			reduced = append(reduced, f)
		}
	}
	return reduced
}

// Fix returns the fix stored at arena index i.
func (t *Tracker) Fix(i int) flight.Fix {
	return t.fixes[i]
}

// Last returns the arena index of the latest fix.
func (t *Tracker) Last() (int, bool) {
	return t.last, t.last >= 0
}

// Starts returns the arena indices of every valid start, in order.
func (t *Tracker) Starts() []int {
	return t.starts
}

func (t *Tracker) Started() bool {
	return len(t.starts) > 0
}

// Visits returns the stays inside turnpoint num.
func (t *Tracker) Visits(num int) []AreaVisit {
	return t.visits[num]
}

// AreaFixes returns the fixes of all stays inside turnpoint num.
func (t *Tracker) AreaFixes(num int) []int {
	var fixes []int
	for _, v := range t.visits[num] {
		fixes = append(fixes, v.Fixes...)
	}
	return fixes
}

// CurrentLeg returns the index of the leg being flown. There is none
// before the start and after the finish.
func (t *Tracker) CurrentLeg() (int, bool) {
	if t.next < 1 || t.Finished() {
		return 0, false
	}
	return t.next - 1, true
}

// Reached is the number of turnpoints reached between start and finish.
func (t *Tracker) Reached() int {
	switch {
	case t.next < 1:
		return 0
	case t.Finished():
		return len(t.task.Points) - 2
	}
	return t.next - 1
}

func (t *Tracker) Finished() bool {
	return t.next >= len(t.task.Points)
}

// Finish returns the arena index of the finish fix.
func (t *Tracker) Finish() (int, bool) {
	return t.finish, t.finish >= 0
}
