package latlon

import "sort"

// SegmentIntersection returns the fraction along p1->p2 where the segment
// p1-p2 crosses the segment q1-q2. Parallel segments never intersect.
func SegmentIntersection(p1, p2, q1, q2 LatLon) (float64, bool) {
	rx, ry := p2.Lon-p1.Lon, p2.Lat-p1.Lat
	sx, sy := q2.Lon-q1.Lon, q2.Lat-q1.Lat

	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, false
	}

	qpx, qpy := q1.Lon-p1.Lon, q1.Lat-p1.Lat
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// ConvexHull returns the indices of the points on the convex hull, in
// counter-clockwise order. Collinear points on an edge are dropped.
// https://en.wikibooks.org/wiki/Algorithm_Implementation/Geometry/Convex_hull/Monotone_chain
func ConvexHull(points [][2]float64) []int {
	n := len(points)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if n <= 2 {
		return idx
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := points[idx[i]], points[idx[j]]
		if a[0] == b[0] {
			return a[1] < b[1]
		}
		return a[0] < b[0]
	})

	cross := func(o, a, b int) float64 {
		po, pa, pb := points[o], points[a], points[b]
		return (pa[0]-po[0])*(pb[1]-po[1]) - (pa[1]-po[1])*(pb[0]-po[0])
	}

	lower := make([]int, 0, n)
	for _, p := range idx {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]int, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := idx[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
