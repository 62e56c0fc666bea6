package drag

import (
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/frame"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var testFrame = frame.Frame{X: 100, Y: 100, W: 400, H: 400, Ratio: 1}

func newStoreWith(lines ...annotation.Line) *annotation.Store {
	s := annotation.NewStore()
	for _, l := range lines {
		switch v := l.(type) {
		case annotation.Vertical:
			s.AddLine(testFrame, annotation.OrientationVertical, frame.Pt(v.X, 300))
		case annotation.Horizontal:
			s.AddLine(testFrame, annotation.OrientationHorizontal, frame.Pt(300, v.Y))
		case annotation.Slanted:
			i, _ := s.AddLine(testFrame, annotation.OrientationSlanted, frame.Pt(300, 300))
			s.SetLine(i, v)
		}
	}
	return s
}

func TestController_StateFlow(t *testing.T) {
	c := NewController(discardLogger)
	var seq []DragState
	c.AddListener(func(prev, next DragState) { seq = append(seq, next) })
	s := newStoreWith(annotation.Vertical{X: 200})

	c.Arm(0, frame.Pt(200, 300))
	if c.State() != StateArmed {
		t.Fatalf("expected armed, got %v", c.State())
	}
	c.Move(s, testFrame, frame.Pt(210, 300))
	if c.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", c.State())
	}
	c.Release()
	if c.State() != StateIdle {
		t.Fatalf("expected idle, got %v", c.State())
	}
	want := []DragState{StateArmed, StateDragging, StateIdle}
	if len(seq) != len(want) {
		t.Fatalf("unexpected transitions %v", seq)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("unexpected transitions %v", seq)
		}
	}
}

func TestController_MoveIgnoredWhenIdle(t *testing.T) {
	c := NewController(nil)
	s := newStoreWith(annotation.Vertical{X: 200})
	if c.Move(s, testFrame, frame.Pt(400, 300)) {
		t.Fatalf("idle controller must not move lines")
	}
	if l, _ := s.Line(0); l != (annotation.Vertical{X: 200}) {
		t.Fatalf("line changed: %#v", l)
	}
}

func TestController_VerticalIgnoresDy(t *testing.T) {
	c := NewController(nil)
	s := newStoreWith(annotation.Vertical{X: 200})
	c.Arm(0, frame.Pt(200, 300))
	c.Move(s, testFrame, frame.Pt(250, 420))
	if l, _ := s.Line(0); l != (annotation.Vertical{X: 250}) {
		t.Fatalf("unexpected line %#v", l)
	}
}

func TestController_DragRoundTrip(t *testing.T) {
	c := NewController(nil)
	s := newStoreWith(annotation.Vertical{X: 200})
	c.Arm(0, frame.Pt(200, 300))
	c.Move(s, testFrame, frame.Pt(260, 300))
	c.Move(s, testFrame, frame.Pt(200, 300))
	if l, _ := s.Line(0); l != (annotation.Vertical{X: 200}) {
		t.Fatalf("round trip failed: %#v", l)
	}
}

func TestController_AxisClampInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewController(nil)
	s := newStoreWith(annotation.Vertical{X: 300}, annotation.Horizontal{Y: 300})
	for _, idx := range []int{0, 1} {
		p := frame.Pt(300, 300)
		c.Arm(idx, p)
		for i := 0; i < 500; i++ {
			p = frame.Pt(p.X+rng.Float64()*400-200, p.Y+rng.Float64()*400-200)
			c.Move(s, testFrame, p)
			l, _ := s.Line(idx)
			switch v := l.(type) {
			case annotation.Vertical:
				if v.X < testFrame.X || v.X > testFrame.Right() {
					t.Fatalf("vertical escaped frame: %v", v.X)
				}
			case annotation.Horizontal:
				if v.Y < testFrame.Y || v.Y > testFrame.Bottom() {
					t.Fatalf("horizontal escaped frame: %v", v.Y)
				}
			}
		}
		c.Release()
	}
}

func TestController_SlantedKeepsShapeAtBoundary(t *testing.T) {
	c := NewController(nil)
	orig := annotation.Slanted{X1: 200, Y1: 350, X2: 300, Y2: 250}
	s := newStoreWith(orig)
	c.Arm(0, frame.Pt(250, 300))
	c.Move(s, testFrame, frame.Pt(900, 320))
	l, _ := s.Line(0)
	sl := l.(annotation.Slanted)
	if !testFrame.Contains(sl.P1()) || !testFrame.Contains(sl.P2()) {
		t.Fatalf("endpoints left frame: %+v", sl)
	}
	if math.Abs(sl.Length()-orig.Length()) > 1e-9 {
		t.Fatalf("length changed: %v -> %v", orig.Length(), sl.Length())
	}
	if sl.X2 != testFrame.Right() {
		t.Fatalf("expected segment pushed against right edge, got %+v", sl)
	}
	if math.Abs((sl.Y2-sl.Y1)-(orig.Y2-orig.Y1)) > 1e-9 || math.Abs((sl.X2-sl.X1)-(orig.X2-orig.X1)) > 1e-9 {
		t.Fatalf("angle changed: %+v", sl)
	}
}

func TestController_MissingLineResets(t *testing.T) {
	c := NewController(nil)
	s := newStoreWith(annotation.Vertical{X: 200})
	c.Arm(3, frame.Pt(0, 0))
	if c.Move(s, testFrame, frame.Pt(5, 5)) {
		t.Fatalf("move on missing index must fail")
	}
	if c.State() != StateIdle {
		t.Fatalf("expected reset to idle, got %v", c.State())
	}
	if _, ok := c.Index(); ok {
		t.Fatalf("index must be cleared")
	}
}

func TestConstrainSlanted_OversizedSegment(t *testing.T) {
	// Wider than the frame: the final clamp keeps endpoints inside.
	s := annotation.Slanted{X1: 0, Y1: 300, X2: 700, Y2: 300}
	got := ConstrainSlanted(s, testFrame)
	if !testFrame.Contains(got.P1()) || !testFrame.Contains(got.P2()) {
		t.Fatalf("endpoints outside frame: %+v", got)
	}
}

func TestAxisCorrection(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{150, 250, 0},
		{50, 150, 50},
		{450, 550, -50},
		{-50, 20, 150},
		{60, 550, 40},
		{20, 510, -10},
	}
	for _, c := range cases {
		if got := axisCorrection(c.a, c.b, 100, 500); got != c.want {
			t.Fatalf("axisCorrection(%v,%v)=%v want %v", c.a, c.b, got, c.want)
		}
	}
}
