package drag

import (
	"math"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// Apply moves l by (dx, dy) inside f. Vertical guides ignore dy and
// horizontal guides ignore dx; both are clamped to the frame on their axis.
// Slanted guides are translated and then shifted back as a whole so their
// length and angle survive whenever the segment fits in the frame.
func Apply(l annotation.Line, f frame.Frame, dx, dy float64) annotation.Line {
	switch v := l.(type) {
	case annotation.Vertical:
		return annotation.Vertical{X: f.ClampX(v.X + dx)}
	case annotation.Horizontal:
		return annotation.Horizontal{Y: f.ClampY(v.Y + dy)}
	case annotation.Slanted:
		return ConstrainSlanted(v.Translate(dx, dy), f)
	}
	return l
}

// ConstrainSlanted brings s back into f using one common translation per
// axis, then clamps each endpoint. The final clamp only changes the shape
// when the segment is larger than the frame on some axis.
func ConstrainSlanted(s annotation.Slanted, f frame.Frame) annotation.Slanted {
	cx := axisCorrection(s.X1, s.X2, f.X, f.Right())
	cy := axisCorrection(s.Y1, s.Y2, f.Y, f.Bottom())
	s = s.Translate(cx, cy)
	a := f.ClampPoint(s.P1())
	b := f.ClampPoint(s.P2())
	return annotation.Slanted{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// axisCorrection returns the shift along one axis that brings the endpoint
// coordinates a and b into [lo, hi]. When both need moving in the same
// direction the larger shift is used; when they pull in opposite directions
// the segment cannot fit and the smaller shift is used.
func axisCorrection(a, b, lo, hi float64) float64 {
	ca := frame.Clamp(a, lo, hi) - a
	cb := frame.Clamp(b, lo, hi) - b
	switch {
	case ca == 0:
		return cb
	case cb == 0:
		return ca
	case (ca > 0) == (cb > 0):
		if math.Abs(ca) > math.Abs(cb) {
			return ca
		}
		return cb
	default:
		if math.Abs(ca) < math.Abs(cb) {
			return ca
		}
		return cb
	}
}
