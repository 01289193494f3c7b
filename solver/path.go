package solver

import (
	"github.com/a-bouts/glider-scoring/tracker"
)

// latestStart returns the last start recorded no later than fix limit.
func latestStart(starts []int, limit int) (int, bool) {
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] <= limit {
			return starts[i], true
		}
	}
	return 0, false
}

// entriesBefore returns, earliest first, the entry fixes of the visits
// that began before fix limit.
func entriesBefore(visits []tracker.AreaVisit, limit int) []int {
	var entries []int
	for _, v := range visits {
		if v.Enter < limit {
			entries = append(entries, v.Enter)
		}
	}
	return entries
}

type searchFrame struct {
	candidates []int
	pos        int
}

// searchPath walks back from fix limit through turnpoints reached..1 and
// returns a start followed by one entry fix per turnpoint, each strictly
// before the next one. Entries are tried earliest first; a candidate that
// leads to no start further back is dropped for the next one.
func searchPath(tr *tracker.Tracker, reached int, limit int) ([]int, bool) {
	path := make([]int, reached+1)

	if reached == 0 {
		start, ok := latestStart(tr.Starts(), limit)
		path[0] = start
		return path, ok
	}

	stack := []searchFrame{{candidates: entriesBefore(tr.Visits(reached), limit)}}
	for len(stack) > 0 {
		num := reached - len(stack) + 1
		top := &stack[len(stack)-1]

		if top.pos >= len(top.candidates) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.candidates[top.pos]
		top.pos++
		path[num] = entry

		if num == 1 {
			if start, ok := latestStart(tr.Starts(), entry); ok {
				path[0] = start
				return path, true
			}
			continue
		}

		stack = append(stack, searchFrame{candidates: entriesBefore(tr.Visits(num-1), entry)})
	}

	return nil, false
}
