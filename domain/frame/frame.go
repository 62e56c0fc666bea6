package frame

import (
	"math"
	"strconv"
)

// Margin is the largest share of the viewport the frame may occupy per axis.
const Margin = 0.92

// GoldenRatio is the preset ratio displayed as "Golden".
const GoldenRatio = 1.618

// Point is a position in viewport coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Frame is the centered, aspect-ratio locked guide rectangle in viewport
// coordinates together with the ratio that produced it.
type Frame struct {
	X, Y  float64
	W, H  float64
	Ratio float64
}

// Compute fits a frame of the given ratio into a viewport of vw x vh.
// A viewport proportionally wider than ratio fits by height, otherwise by width.
func Compute(vw, vh, ratio float64) Frame {
	var boxW, boxH float64
	if vw/vh > ratio {
		boxH = vh * Margin
		boxW = boxH * ratio
	} else {
		boxW = vw * Margin
		boxH = boxW / ratio
	}
	return Frame{
		X:     (vw - boxW) / 2,
		Y:     (vh - boxH) / 2,
		W:     boxW,
		H:     boxH,
		Ratio: ratio,
	}
}

// Right returns the x coordinate of the right edge.
func (f Frame) Right() float64 { return f.X + f.W }

// Bottom returns the y coordinate of the bottom edge.
func (f Frame) Bottom() float64 { return f.Y + f.H }

// Empty reports whether the frame has no area.
func (f Frame) Empty() bool { return f.W <= 0 || f.H <= 0 }

// Contains reports whether p lies inside the frame, edges included.
func (f Frame) Contains(p Point) bool {
	return p.X >= f.X && p.X <= f.Right() && p.Y >= f.Y && p.Y <= f.Bottom()
}

// ClampX clamps x to the horizontal extent of the frame.
func (f Frame) ClampX(x float64) float64 { return Clamp(x, f.X, f.Right()) }

// ClampY clamps y to the vertical extent of the frame.
func (f Frame) ClampY(y float64) float64 { return Clamp(y, f.Y, f.Bottom()) }

// ClampPoint clamps both coordinates of p into the frame rectangle.
func (f Frame) ClampPoint(p Point) Point {
	return Point{X: f.ClampX(p.X), Y: f.ClampY(p.Y)}
}

// Remap maps p, given relative to from, to the same relative position in f.
// Points are passed through unchanged when from has no area.
func (f Frame) Remap(from Frame, p Point) Point {
	if from.Empty() {
		return p
	}
	return Point{
		X: f.X + (p.X-from.X)/from.W*f.W,
		Y: f.Y + (p.Y-from.Y)/from.H*f.H,
	}
}

// Label formats the ratio for display: the golden preset reads "Golden",
// any other ratio is rounded to three decimals.
func (f Frame) Label() string { return RatioLabel(f.Ratio) }

// RatioLabel formats a ratio the way Frame.Label does.
func RatioLabel(ratio float64) string {
	if ratio == GoldenRatio {
		return "Golden"
	}
	return strconv.FormatFloat(math.Round(ratio*1000)/1000, 'f', -1, 64)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
