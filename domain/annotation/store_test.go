package annotation

import (
	"math"
	"testing"

	"github.com/soocke/layout-lens-go/domain/frame"
)

var testFrame = frame.Frame{X: 100, Y: 100, W: 400, H: 400, Ratio: 1}

func TestStore_AddDotOnlyInsideFrame(t *testing.T) {
	s := NewStore()
	if s.AddDot(testFrame, frame.Pt(50, 50)) {
		t.Fatalf("dot outside frame must not be added")
	}
	if s.DotCount() != 0 {
		t.Fatalf("expected no dots, got %d", s.DotCount())
	}
	if !s.AddDot(testFrame, frame.Pt(300, 300)) {
		t.Fatalf("dot inside frame must be added")
	}
	dots := s.Dots()
	if len(dots) != 1 || dots[0] != (Dot{X: 300, Y: 300}) {
		t.Fatalf("unexpected dots %v", dots)
	}
}

func TestStore_AddLineClampsAxis(t *testing.T) {
	s := NewStore()
	i, ok := s.AddLine(testFrame, OrientationVertical, frame.Pt(900, 300))
	if !ok || i != 0 {
		t.Fatalf("expected index 0, got %d ok=%v", i, ok)
	}
	if l, _ := s.Line(0); l != (Vertical{X: 500}) {
		t.Fatalf("vertical not clamped: %#v", l)
	}
	i, _ = s.AddLine(testFrame, OrientationHorizontal, frame.Pt(300, -20))
	if l, _ := s.Line(i); l != (Horizontal{Y: 100}) {
		t.Fatalf("horizontal not clamped: %#v", l)
	}
}

func TestStore_AddSlantedDefaults(t *testing.T) {
	s := NewStore()
	i, ok := s.AddLine(testFrame, OrientationSlanted, frame.Pt(300, 300))
	if !ok {
		t.Fatalf("slanted not added")
	}
	l, _ := s.Line(i)
	sl, ok := l.(Slanted)
	if !ok {
		t.Fatalf("expected Slanted, got %T", l)
	}
	want := testFrame.W * SlantLengthFactor
	if math.Abs(sl.Length()-want) > 1e-9 {
		t.Fatalf("length %v want %v", sl.Length(), want)
	}
	// -45 degrees: first endpoint bottom-left, second top-right.
	if !(sl.X1 < sl.X2 && sl.Y1 > sl.Y2) {
		t.Fatalf("unexpected orientation %+v", sl)
	}
	if math.Abs((sl.X1+sl.X2)/2-300) > 1e-9 || math.Abs((sl.Y1+sl.Y2)/2-300) > 1e-9 {
		t.Fatalf("segment not centered at click %+v", sl)
	}
}

func TestStore_AddSlantedNearEdgeIsClamped(t *testing.T) {
	s := NewStore()
	i, _ := s.AddLine(testFrame, OrientationSlanted, frame.Pt(110, 110))
	l, _ := s.Line(i)
	sl := l.(Slanted)
	for _, p := range []frame.Point{sl.P1(), sl.P2()} {
		if !testFrame.Contains(p) {
			t.Fatalf("endpoint %+v outside frame", p)
		}
	}
	if sl.Length() >= testFrame.W*SlantLengthFactor {
		t.Fatalf("expected clamped segment to be shorter, got %v", sl.Length())
	}
}

func TestStore_DeleteShiftsIndices(t *testing.T) {
	s := NewStore()
	s.AddLine(testFrame, OrientationVertical, frame.Pt(150, 300))
	s.AddLine(testFrame, OrientationVertical, frame.Pt(250, 300))
	s.AddLine(testFrame, OrientationHorizontal, frame.Pt(300, 350))
	rev := s.Revision()
	if !s.DeleteLine(1) {
		t.Fatalf("delete failed")
	}
	if s.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.LineCount())
	}
	if l, _ := s.Line(0); l != (Vertical{X: 150}) {
		t.Fatalf("line 0 changed: %#v", l)
	}
	if l, _ := s.Line(1); l != (Horizontal{Y: 350}) {
		t.Fatalf("line 2 should now be at index 1, got %#v", l)
	}
	if s.Revision() == rev {
		t.Fatalf("delete must bump revision")
	}
	if s.DeleteLine(5) || s.DeleteLine(-1) {
		t.Fatalf("out of range delete must fail")
	}
}

func TestStore_SetLineKeepsOrder(t *testing.T) {
	s := NewStore()
	s.AddLine(testFrame, OrientationVertical, frame.Pt(150, 300))
	s.AddLine(testFrame, OrientationHorizontal, frame.Pt(300, 300))
	rev := s.Revision()
	if !s.SetLine(0, Vertical{X: 200}) {
		t.Fatalf("set failed")
	}
	if l, _ := s.Line(0); l != (Vertical{X: 200}) {
		t.Fatalf("unexpected line %#v", l)
	}
	if s.Revision() != rev+1 {
		t.Fatalf("expected revision bump")
	}
	s.SetLine(0, Vertical{X: 200})
	if s.Revision() != rev+1 {
		t.Fatalf("no-op set must not bump revision")
	}
}

func TestStore_RemapLinesKeepsRelativePosition(t *testing.T) {
	s := NewStore()
	s.AddDot(testFrame, frame.Pt(300, 300))
	s.AddLine(testFrame, OrientationVertical, frame.Pt(200, 300))
	s.AddLine(testFrame, OrientationHorizontal, frame.Pt(300, 400))
	to := frame.Frame{X: 0, Y: 0, W: 800, H: 800, Ratio: 1}
	s.RemapLines(testFrame, to)
	if d := s.Dots()[0]; d != (Dot{X: 300, Y: 300}) {
		t.Fatalf("dot must keep its coordinates: %+v", d)
	}
	if l, _ := s.Line(0); l != (Vertical{X: 200}) {
		t.Fatalf("vertical not remapped: %#v", l)
	}
	if l, _ := s.Line(1); l != (Horizontal{Y: 600}) {
		t.Fatalf("horizontal not remapped: %#v", l)
	}
}

func TestSegment_SpansFrame(t *testing.T) {
	a, b := Segment(Vertical{X: 200}, testFrame)
	if a != frame.Pt(200, 100) || b != frame.Pt(200, 500) {
		t.Fatalf("vertical segment %v %v", a, b)
	}
	a, b = Segment(Horizontal{Y: 300}, testFrame)
	if a != frame.Pt(100, 300) || b != frame.Pt(500, 300) {
		t.Fatalf("horizontal segment %v %v", a, b)
	}
}

func TestStore_RemapLinesWithoutLinesKeepsRevision(t *testing.T) {
	s := NewStore()
	s.AddDot(testFrame, frame.Pt(300, 300))
	rev := s.Revision()
	s.RemapLines(testFrame, frame.Frame{X: 0, Y: 0, W: 800, H: 800, Ratio: 1})
	if s.Revision() != rev {
		t.Fatalf("remap with no lines must not bump revision")
	}
	if d := s.Dots()[0]; d != (Dot{X: 300, Y: 300}) {
		t.Fatalf("dot moved: %+v", d)
	}
}
