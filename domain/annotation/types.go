package annotation

import (
	"math"

	"github.com/soocke/layout-lens-go/domain/frame"
)

// Orientation enumerates the line variants.
type Orientation int

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
	OrientationSlanted
)

func (o Orientation) String() string {
	switch o {
	case OrientationVertical:
		return "vertical"
	case OrientationHorizontal:
		return "horizontal"
	case OrientationSlanted:
		return "slanted"
	default:
		return "unknown"
	}
}

// Dot is a point annotation. Dots are immutable once created.
type Dot struct {
	X, Y float64
}

// Line is a guide line. The set of implementations is closed: Vertical,
// Horizontal and Slanted.
type Line interface {
	Orientation() Orientation
	isLine()
}

// Vertical is a guide spanning the frame height at X.
type Vertical struct{ X float64 }

// Horizontal is a guide spanning the frame width at Y.
type Horizontal struct{ Y float64 }

// Slanted is a free segment between two endpoints.
type Slanted struct {
	X1, Y1 float64
	X2, Y2 float64
}

func (Vertical) Orientation() Orientation   { return OrientationVertical }
func (Horizontal) Orientation() Orientation { return OrientationHorizontal }
func (Slanted) Orientation() Orientation    { return OrientationSlanted }

func (Vertical) isLine()   {}
func (Horizontal) isLine() {}
func (Slanted) isLine()    {}

// P1 returns the first endpoint.
func (s Slanted) P1() frame.Point { return frame.Pt(s.X1, s.Y1) }

// P2 returns the second endpoint.
func (s Slanted) P2() frame.Point { return frame.Pt(s.X2, s.Y2) }

// Length returns the Euclidean length of the segment.
func (s Slanted) Length() float64 { return math.Hypot(s.X2-s.X1, s.Y2-s.Y1) }

// Translate returns the segment moved by (dx, dy).
func (s Slanted) Translate(dx, dy float64) Slanted {
	return Slanted{X1: s.X1 + dx, Y1: s.Y1 + dy, X2: s.X2 + dx, Y2: s.Y2 + dy}
}

// Segment returns the drawn extent of l within f. Vertical and horizontal
// guides span the whole frame on their free axis.
func Segment(l Line, f frame.Frame) (a, b frame.Point) {
	switch v := l.(type) {
	case Vertical:
		return frame.Pt(v.X, f.Y), frame.Pt(v.X, f.Bottom())
	case Horizontal:
		return frame.Pt(f.X, v.Y), frame.Pt(f.Right(), v.Y)
	case Slanted:
		return v.P1(), v.P2()
	}
	return frame.Point{}, frame.Point{}
}
