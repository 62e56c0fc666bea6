package editor

import (
	"log/slog"
	"testing"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/drag"
	"github.com/soocke/layout-lens-go/domain/frame"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// 1000x800 at ratio 1 gives a 736x736 frame at (132,32).
func newTestEditor(mode Mode) *Editor {
	return New(discardLogger, 1000, 800, 1, mode)
}

func TestEditor_FrameFromViewport(t *testing.T) {
	e := newTestEditor(ModeDot)
	want := frame.Frame{X: 132, Y: 32, W: 736, H: 736, Ratio: 1}
	if got := e.Frame(); got != want {
		t.Fatalf("frame = %+v want %+v", got, want)
	}
}

func TestEditor_DotScenario(t *testing.T) {
	e := newTestEditor(ModeDot)
	e.PointerDown(frame.Pt(50, 50))
	if n := e.Store().DotCount(); n != 0 {
		t.Fatalf("click outside frame created %d dots", n)
	}
	e.PointerDown(frame.Pt(300, 300))
	if n := e.Store().DotCount(); n != 1 {
		t.Fatalf("expected 1 dot, got %d", n)
	}
	if _, ok := e.Selection(); ok {
		t.Fatalf("dots must never be selected")
	}
}

func TestEditor_CreateLineSelectsAndArms(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.PointerDown(frame.Pt(400, 300))
	i, ok := e.Selection()
	if !ok || i != 0 {
		t.Fatalf("new line not selected: %d %v", i, ok)
	}
	if e.Drag().State() != drag.StateArmed {
		t.Fatalf("new line not armed: %v", e.Drag().State())
	}
	if !e.PointerMove(frame.Pt(450, 300)) {
		t.Fatalf("expected drag to move the line")
	}
	e.PointerUp()
	l, _ := e.Store().Line(0)
	if l != (annotation.Vertical{X: 450}) {
		t.Fatalf("unexpected line %#v", l)
	}
	if _, ok := e.Selection(); !ok {
		t.Fatalf("selection must survive pointer-up")
	}
	if e.Drag().State() != drag.StateIdle {
		t.Fatalf("expected idle after pointer-up")
	}
}

func TestEditor_SelectModeNeverCreates(t *testing.T) {
	e := newTestEditor(ModeSelect)
	e.PointerDown(frame.Pt(400, 300))
	if e.Store().LineCount() != 0 || e.Store().DotCount() != 0 {
		t.Fatalf("select mode created annotations")
	}
}

func TestEditor_HitSelectsExisting(t *testing.T) {
	e := newTestEditor(ModeHorizontal)
	e.PointerDown(frame.Pt(400, 300))
	e.PointerUp()
	e.SetMode(ModeSelect)
	e.PointerDown(frame.Pt(600, 700))
	if _, ok := e.Selection(); ok {
		t.Fatalf("miss must clear selection")
	}
	e.PointerDown(frame.Pt(600, 310))
	if i, ok := e.Selection(); !ok || i != 0 {
		t.Fatalf("hit must select line 0, got %d %v", i, ok)
	}
	if e.Store().LineCount() != 1 {
		t.Fatalf("hit must not create")
	}
}

func TestEditor_HitInCreationModeDoesNotCreate(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.PointerDown(frame.Pt(400, 300))
	e.PointerUp()
	e.PointerDown(frame.Pt(405, 500))
	if e.Store().LineCount() != 1 {
		t.Fatalf("expected hit to select instead of create, have %d lines", e.Store().LineCount())
	}
}

func TestEditor_MissOutsideFrameClears(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.PointerDown(frame.Pt(400, 300))
	e.PointerUp()
	e.PointerDown(frame.Pt(50, 300))
	if _, ok := e.Selection(); ok {
		t.Fatalf("selection must be cleared")
	}
	if e.Store().LineCount() != 1 {
		t.Fatalf("outside click must not create")
	}
	if e.Drag().State() != drag.StateIdle {
		t.Fatalf("drag must be idle")
	}
}

func TestEditor_DeleteSelected(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.PointerDown(frame.Pt(200, 300))
	e.PointerUp()
	e.PointerDown(frame.Pt(400, 300))
	e.PointerUp()
	e.PointerDown(frame.Pt(600, 300))
	e.PointerUp()
	e.PointerDown(frame.Pt(402, 300))
	e.PointerUp()
	if !e.DeleteVisible() {
		t.Fatalf("delete must be visible with a selection")
	}
	if !e.DeleteSelected() {
		t.Fatalf("delete failed")
	}
	if e.Store().LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", e.Store().LineCount())
	}
	if e.DeleteVisible() {
		t.Fatalf("selection must be cleared after delete")
	}
	if l, _ := e.Store().Line(1); l != (annotation.Vertical{X: 600}) {
		t.Fatalf("later line did not shift: %#v", l)
	}
	if e.DeleteSelected() {
		t.Fatalf("delete without selection must be a no-op")
	}
}

func TestEditor_ResizeKeepsRatioAndDrag(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.SetRatio(4.0 / 3.0)
	e.PointerDown(frame.Pt(500, 400))
	e.Resize(1200, 900)
	if e.Frame().Ratio != 4.0/3.0 {
		t.Fatalf("ratio lost on resize: %v", e.Frame().Ratio)
	}
	if e.Drag().State() != drag.StateArmed {
		t.Fatalf("resize broke the drag")
	}
	e.PointerMove(frame.Pt(5000, 400))
	l, _ := e.Store().Line(0)
	if v := l.(annotation.Vertical); v.X != e.Frame().Right() {
		t.Fatalf("line not clamped to new frame: %v vs %v", v.X, e.Frame().Right())
	}
}

func TestEditor_RemapKeepsLinesInside(t *testing.T) {
	e := newTestEditor(ModeSlant)
	e.PointerDown(frame.Pt(860, 40))
	e.PointerUp()
	e.SetRatio(16.0 / 9.0)
	f := e.Frame()
	l, _ := e.Store().Line(0)
	s := l.(annotation.Slanted)
	const eps = 1e-9
	for _, p := range []frame.Point{s.P1(), s.P2()} {
		if p.X < f.X-eps || p.X > f.Right()+eps || p.Y < f.Y-eps || p.Y > f.Bottom()+eps {
			t.Fatalf("endpoint %+v outside %+v", p, f)
		}
	}
}

func TestEditor_ResizeKeepsDots(t *testing.T) {
	e := newTestEditor(ModeDot)
	e.PointerDown(frame.Pt(300, 300))
	e.Resize(1400, 700)
	e.SetRatio(16.0 / 9.0)
	dots := e.Store().Dots()
	if len(dots) != 1 || dots[0] != (annotation.Dot{X: 300, Y: 300}) {
		t.Fatalf("dot mutated by frame change: %+v", dots)
	}
}

func TestEditor_RatioLabel(t *testing.T) {
	e := newTestEditor(ModeDot)
	e.SetRatio(frame.GoldenRatio)
	if got := e.RatioLabel(); got != "Golden" {
		t.Fatalf("label = %q", got)
	}
	e.SetRatio(-1)
	if e.Ratio() != frame.GoldenRatio {
		t.Fatalf("negative ratio must be ignored")
	}
}

func TestEditor_SnapshotIsACopy(t *testing.T) {
	e := newTestEditor(ModeVertical)
	e.PointerDown(frame.Pt(400, 300))
	snap := e.Snapshot()
	snap.Lines[0] = annotation.Vertical{X: 1}
	if l, _ := e.Store().Line(0); l == (annotation.Vertical{X: 1}) {
		t.Fatalf("snapshot shares storage with the store")
	}
	if sel, ok := snap.Selected(); !ok || sel == nil {
		t.Fatalf("snapshot lost selection")
	}
	if snap.ViewW != 1000 || snap.ViewH != 800 {
		t.Fatalf("unexpected viewport %dx%d", snap.ViewW, snap.ViewH)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("curve"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestEditor_SelectionListener(t *testing.T) {
	e := newTestEditor(ModeVertical)
	var got []int
	e.AddSelectionListener(func(prev, next int) { got = append(got, next) })
	e.PointerDown(frame.Pt(400, 300))
	e.PointerUp()
	e.DeleteSelected()
	if len(got) != 2 || got[0] != 0 || got[1] != NoSelection {
		t.Fatalf("unexpected selection events %v", got)
	}
}
