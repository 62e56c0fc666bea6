package annotation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/layout-lens-go/domain/frame"
)

// HitThreshold is the pointer distance, in viewport pixels, below which a
// line counts as hit. A point exactly at the threshold misses.
const HitThreshold = 18.0

// FindLineAt returns the index of the first line in lines hit by p. Earlier
// lines win when several overlap. Dots are never considered.
func FindLineAt(lines []Line, f frame.Frame, p frame.Point) (int, bool) {
	for i, l := range lines {
		if hits(l, f, p) {
			return i, true
		}
	}
	return -1, false
}

// FindLineAt resolves p against the store's lines within f.
func (s *Store) FindLineAt(f frame.Frame, p frame.Point) (int, bool) {
	if s == nil {
		return -1, false
	}
	return FindLineAt(s.lines, f, p)
}

func hits(l Line, f frame.Frame, p frame.Point) bool {
	switch v := l.(type) {
	case Vertical:
		return math.Abs(p.X-v.X) < HitThreshold && p.Y >= f.Y && p.Y <= f.Bottom()
	case Horizontal:
		return math.Abs(p.Y-v.Y) < HitThreshold && p.X >= f.X && p.X <= f.Right()
	case Slanted:
		return SegmentDistance(p, v.P1(), v.P2()) < HitThreshold
	}
	return false
}

// SegmentDistance returns the shortest distance from p to the segment a-b
// using the clamped projection of p onto the segment.
func SegmentDistance(p, a, b frame.Point) float64 {
	pv, av, bv := vec(p), vec(a), vec(b)
	ab := r2.Sub(bv, av)
	lenSq := r2.Norm2(ab)
	t := -1.0
	if lenSq != 0 {
		t = r2.Dot(r2.Sub(pv, av), ab) / lenSq
	}
	var closest r2.Vec
	switch {
	case t < 0:
		closest = av
	case t > 1:
		closest = bv
	default:
		closest = r2.Add(av, r2.Scale(t, ab))
	}
	return r2.Norm(r2.Sub(pv, closest))
}

func vec(p frame.Point) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }
