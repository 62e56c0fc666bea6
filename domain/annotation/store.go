package annotation

import (
	"math"

	"github.com/soocke/layout-lens-go/domain/frame"
)

const (
	// SlantLengthFactor is the default slanted length as a share of frame width.
	SlantLengthFactor = 0.75
	// SlantAngle is the default slanted angle in radians.
	SlantAngle = -math.Pi / 4
)

// Store owns the ordered dots and lines. Every mutation bumps Revision so
// renderers can drop cached output; the store never renders by itself.
// The zero value is ready to use.
type Store struct {
	dots     []Dot
	lines    []Line
	revision uint64
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// AddDot appends a dot at p when p lies inside f. It reports whether a dot was added.
func (s *Store) AddDot(f frame.Frame, p frame.Point) bool {
	if s == nil || !f.Contains(p) {
		return false
	}
	s.dots = append(s.dots, Dot{X: p.X, Y: p.Y})
	s.revision++
	return true
}

// AddLine appends a line of orientation o created at p and returns its index.
// Vertical and horizontal guides clamp their coordinate to f. Slanted guides
// get a default segment centered at p whose endpoints are clamped to f
// independently, which may shorten the segment near the frame edges.
func (s *Store) AddLine(f frame.Frame, o Orientation, p frame.Point) (int, bool) {
	if s == nil {
		return -1, false
	}
	var l Line
	switch o {
	case OrientationVertical:
		l = Vertical{X: f.ClampX(p.X)}
	case OrientationHorizontal:
		l = Horizontal{Y: f.ClampY(p.Y)}
	case OrientationSlanted:
		l = DefaultSlanted(f, p)
	default:
		return -1, false
	}
	s.lines = append(s.lines, l)
	s.revision++
	return len(s.lines) - 1, true
}

// DefaultSlanted builds the slanted guide created by a click at p.
func DefaultSlanted(f frame.Frame, p frame.Point) Slanted {
	c := f.ClampPoint(p)
	half := f.W * SlantLengthFactor / 2
	dx := math.Cos(SlantAngle) * half
	dy := math.Sin(SlantAngle) * half
	a := f.ClampPoint(frame.Pt(c.X-dx, c.Y-dy))
	b := f.ClampPoint(frame.Pt(c.X+dx, c.Y+dy))
	return Slanted{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// DeleteLine removes the line at i; later lines shift down by one.
func (s *Store) DeleteLine(i int) bool {
	if s == nil || i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.revision++
	return true
}

// Line returns the line at i.
func (s *Store) Line(i int) (Line, bool) {
	if s == nil || i < 0 || i >= len(s.lines) {
		return nil, false
	}
	return s.lines[i], true
}

// SetLine replaces the line at i, keeping its position in the order.
func (s *Store) SetLine(i int, l Line) bool {
	if s == nil || l == nil || i < 0 || i >= len(s.lines) {
		return false
	}
	if s.lines[i] == l {
		return true
	}
	s.lines[i] = l
	s.revision++
	return true
}

// RemapLines moves every line from its position relative to from to the
// same relative position in to, so lines stay inside the new frame. Dots are
// immutable and keep their coordinates.
func (s *Store) RemapLines(from, to frame.Frame) {
	if s == nil || from == to || from.Empty() || len(s.lines) == 0 {
		return
	}
	for i, l := range s.lines {
		switch v := l.(type) {
		case Vertical:
			s.lines[i] = Vertical{X: to.ClampX(to.Remap(from, frame.Pt(v.X, from.Y)).X)}
		case Horizontal:
			s.lines[i] = Horizontal{Y: to.ClampY(to.Remap(from, frame.Pt(from.X, v.Y)).Y)}
		case Slanted:
			a := to.Remap(from, v.P1())
			b := to.Remap(from, v.P2())
			s.lines[i] = Slanted{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
		}
	}
	s.revision++
}

// Dots returns a copy of the dots in creation order.
func (s *Store) Dots() []Dot {
	if s == nil {
		return nil
	}
	return append([]Dot(nil), s.dots...)
}

// Lines returns a copy of the lines in creation order.
func (s *Store) Lines() []Line {
	if s == nil {
		return nil
	}
	return append([]Line(nil), s.lines...)
}

// LineCount returns the number of lines.
func (s *Store) LineCount() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}

// DotCount returns the number of dots.
func (s *Store) DotCount() int {
	if s == nil {
		return 0
	}
	return len(s.dots)
}

// Revision increases on every mutation.
func (s *Store) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}
