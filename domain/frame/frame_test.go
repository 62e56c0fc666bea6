package frame

import (
	"errors"
	"math"
	"testing"
)

func TestCompute_SquareInLandscape(t *testing.T) {
	f := Compute(1000, 800, 1)
	if f.W != 736 || f.H != 736 || f.X != 132 || f.Y != 32 {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestCompute_Invariants(t *testing.T) {
	viewports := [][2]float64{{1000, 800}, {800, 1000}, {1920, 1080}, {375, 812}, {1, 1}, {3000, 10}}
	ratios := []float64{1, 4.0 / 3, 3.0 / 2, 16.0 / 9, 9.0 / 16, GoldenRatio, 0.2, 7}
	for _, vp := range viewports {
		for _, r := range ratios {
			W, H := vp[0], vp[1]
			f := Compute(W, H, r)
			if math.Abs(f.W-r*f.H) > 1e-6 {
				t.Fatalf("W=%v H=%v r=%v: w=%v != ratio*h=%v", W, H, r, f.W, r*f.H)
			}
			if f.W > Margin*W+1e-9 || f.H > Margin*H+1e-9 {
				t.Fatalf("W=%v H=%v r=%v: frame %vx%v exceeds margin", W, H, r, f.W, f.H)
			}
			if math.Abs(f.X-(W-f.W)/2) > 1e-9 || math.Abs(f.Y-(H-f.H)/2) > 1e-9 {
				t.Fatalf("W=%v H=%v r=%v: frame not centered %+v", W, H, r, f)
			}
			if f.Ratio != r {
				t.Fatalf("ratio not retained: %v", f.Ratio)
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	a := Compute(1280, 720, 4.0/3)
	b := Compute(1280, 720, 4.0/3)
	if a != b {
		t.Fatalf("expected identical frames, got %+v and %+v", a, b)
	}
}

func TestRatioLabel(t *testing.T) {
	cases := map[float64]string{
		GoldenRatio: "Golden",
		1:           "1",
		4.0 / 3:     "1.333",
		16.0 / 9:    "1.778",
		0.5625:      "0.563",
	}
	for r, want := range cases {
		if got := RatioLabel(r); got != want {
			t.Fatalf("RatioLabel(%v)=%q want %q", r, got, want)
		}
	}
}

func TestFrame_ContainsAndClamp(t *testing.T) {
	f := Frame{X: 100, Y: 100, W: 400, H: 400, Ratio: 1}
	if f.Contains(Pt(50, 50)) {
		t.Fatalf("(50,50) should be outside")
	}
	if !f.Contains(Pt(300, 300)) || !f.Contains(Pt(100, 500)) {
		t.Fatalf("interior and edge points should be inside")
	}
	if p := f.ClampPoint(Pt(-5, 900)); p != Pt(100, 500) {
		t.Fatalf("unexpected clamp %+v", p)
	}
}

func TestFrame_Remap(t *testing.T) {
	from := Frame{X: 0, Y: 0, W: 100, H: 100, Ratio: 1}
	to := Frame{X: 50, Y: 10, W: 200, H: 50, Ratio: 4}
	if p := to.Remap(from, Pt(25, 50)); p != Pt(100, 35) {
		t.Fatalf("unexpected remap %+v", p)
	}
	if p := to.Remap(Frame{}, Pt(7, 8)); p != Pt(7, 8) {
		t.Fatalf("empty source frame should pass through, got %+v", p)
	}
}

func TestParseRatio(t *testing.T) {
	ok := map[string]float64{
		"1":      1,
		"4/3":    4.0 / 3,
		" 16:9 ": 16.0 / 9,
		"1.5":    1.5,
		"Golden": GoldenRatio,
	}
	for in, want := range ok {
		got, err := ParseRatio(in)
		if err != nil || math.Abs(got-want) > 1e-12 {
			t.Fatalf("ParseRatio(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"", "abc", "4/0", "-1", "0", "3/x"} {
		if _, err := ParseRatio(in); !errors.Is(err, ErrInvalidRatio) {
			t.Fatalf("ParseRatio(%q) expected ErrInvalidRatio, got %v", in, err)
		}
	}
}
