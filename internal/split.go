package internal

import "sort"

// A position along a path: a segment index and a parameter along it
type pathPosition struct {
	seg   int
	param float64
}

func (a pathPosition) before(b pathPosition) bool {
	if a.seg != b.seg {
		return a.seg < b.seg
	}
	return a.param < b.param
}

// Cut a path into pieces at its self-crossings.
//
// The pieces are returned in path order and, laid end to end, retrace the
// whole path. For a closed path the last piece ends back at the first point.
// A path with no crossings comes back as a single piece. Pieces with fewer than
// two distinct points are dropped.
func SplitPathAtSelfCrossings(path Path, closed bool, eps float64) []Path {
	CheckEpsilon("split path", eps)
	CheckPoints2("split path", path)

	path = Deduplicate(path, closed, eps)
	if len(path) < 2 {
		return []Path{}
	}

	crossings := PathSelfIntersections(path, closed, eps)
	cuts := make([]pathPosition, 0, 2*len(crossings)+2)
	for _, crossing := range crossings {
		cuts = append(cuts,
			pathPosition{crossing.SegA, crossing.ParamA},
			pathPosition{crossing.SegB, crossing.ParamB},
		)
	}
	sort.SliceStable(cuts, func(i, j int) bool {
		return cuts[i].before(cuts[j])
	})

	lastSeg := len(path) - 2
	if closed {
		lastSeg = len(path) - 1
	}
	cuts = append([]pathPosition{{0, 0}}, cuts...)
	cuts = append(cuts, pathPosition{lastSeg, 1})
	cuts = deduplicatePositions(cuts, eps)

	result := []Path{}
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		section := Deduplicate(PathSelect(path, from.seg, from.param, to.seg, to.param, closed), false, eps)
		if len(section) > 1 {
			result = append(result, section)
		}
	}
	return result
}

// Drop positions that repeat the one before them. The input is sorted.
func deduplicatePositions(positions []pathPosition, eps float64) []pathPosition {
	result := positions[:0:0]
	for _, p := range positions {
		if len(result) > 0 {
			last := result[len(result)-1]
			if last.seg == p.seg && Equal(last.param, p.param, eps) {
				continue
			}
		}
		result = append(result, p)
	}
	return result
}

// The part of a path between two positions, (s1, u1) and (s2, u2), where the
// first comes before the second. Positions outside the path are clamped to
// its ends. Segment i of a closed path runs from point i to point i+1, with
// the last segment returning to point 0.
func PathSelect(path Path, s1 int, u1 float64, s2 int, u2 float64, closed bool) Path {
	n := len(path)
	if n == 0 {
		return Path{}
	}
	segCount := n - 1
	if closed {
		segCount = n
	}
	if segCount == 0 {
		return Path{path[0]}
	}
	s1, u1 = clampPosition(s1, u1, segCount)
	s2, u2 = clampPosition(s2, u2, segCount)

	pointAt := func(s int, u float64) Point2 {
		return Lerp(path[s], path[(s+1)%n], u)
	}

	forward := s1 < s2 || (s1 == s2 && u1 < u2)
	result := Path{}
	if forward && u1 < 1 {
		result = append(result, pointAt(s1, u1))
	}
	for i := s1 + 1; i <= s2; i++ {
		result = append(result, path[i%n])
	}
	if forward && u2 > 0 {
		result = append(result, pointAt(s2, u2))
	}
	return result
}

func clampPosition(s int, u float64, segCount int) (int, float64) {
	if s < 0 {
		return 0, 0
	}
	if s >= segCount {
		return segCount - 1, 1
	}
	return s, u
}
