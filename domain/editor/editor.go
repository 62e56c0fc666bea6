package editor

import (
	"log/slog"

	"github.com/soocke/layout-lens-go/domain/annotation"
	"github.com/soocke/layout-lens-go/domain/drag"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// NoSelection is the Selection value when no line is selected.
const NoSelection = -1

// Snapshot is a read-only copy of everything needed to draw one overlay.
type Snapshot struct {
	ViewW, ViewH int
	Frame        frame.Frame
	Dots         []annotation.Dot
	Lines        []annotation.Line
	Selection    int
	Revision     uint64
}

// Selected returns the selected line, if any.
func (s Snapshot) Selected() (annotation.Line, bool) {
	if s.Selection < 0 || s.Selection >= len(s.Lines) {
		return nil, false
	}
	return s.Lines[s.Selection], true
}

// SelectionListener is notified when the selected index changes.
type SelectionListener func(prev, next int)

// Editor owns the frame, the annotation store, the selection and the drag
// controller, and turns pointer input into store mutations.
// Not safe for concurrent use; drive it from the UI event loop.
type Editor struct {
	logger    *slog.Logger
	viewW     int
	viewH     int
	ratio     float64
	frame     frame.Frame
	store     *annotation.Store
	selection int
	mode      Mode
	drag      *drag.Controller
	listeners []SelectionListener
}

// New returns an editor for a viewport of w x h with the given ratio and mode.
// A non-positive ratio falls back to 1.
func New(logger *slog.Logger, w, h int, ratio float64, mode Mode) *Editor {
	if !(ratio > 0) {
		ratio = 1
	}
	e := &Editor{
		logger:    logger,
		ratio:     ratio,
		store:     annotation.NewStore(),
		selection: NoSelection,
		mode:      mode,
		drag:      drag.NewController(logger),
	}
	e.Resize(w, h)
	return e
}

// AddSelectionListener registers l for selection changes.
func (e *Editor) AddSelectionListener(l SelectionListener) {
	if e == nil || l == nil {
		return
	}
	e.listeners = append(e.listeners, l)
}

// Drag exposes the drag controller for state listeners.
func (e *Editor) Drag() *drag.Controller {
	if e == nil {
		return nil
	}
	return e.drag
}

// Store exposes the annotation store.
func (e *Editor) Store() *annotation.Store {
	if e == nil {
		return nil
	}
	return e.store
}

// Frame returns the current frame.
func (e *Editor) Frame() frame.Frame {
	if e == nil {
		return frame.Frame{}
	}
	return e.frame
}

// Viewport returns the current viewport size.
func (e *Editor) Viewport() (int, int) {
	if e == nil {
		return 0, 0
	}
	return e.viewW, e.viewH
}

// Resize recomputes the frame for a new viewport keeping the current ratio.
// An armed drag stays armed.
func (e *Editor) Resize(w, h int) {
	if e == nil || w <= 0 || h <= 0 {
		return
	}
	e.viewW, e.viewH = w, h
	e.refit()
}

// SetRatio changes the ratio and recomputes the frame. Non-positive ratios
// are ignored.
func (e *Editor) SetRatio(r float64) {
	if e == nil || !(r > 0) || r == e.ratio {
		return
	}
	e.ratio = r
	e.refit()
}

// Ratio returns the selected ratio.
func (e *Editor) Ratio() float64 {
	if e == nil {
		return 0
	}
	return e.ratio
}

// RatioLabel formats the ratio for the toolbar.
func (e *Editor) RatioLabel() string {
	if e == nil {
		return ""
	}
	return frame.RatioLabel(e.ratio)
}

func (e *Editor) refit() {
	if e.viewW <= 0 || e.viewH <= 0 {
		return
	}
	prev := e.frame
	next := frame.Compute(float64(e.viewW), float64(e.viewH), e.ratio)
	if next == prev {
		return
	}
	e.frame = next
	e.store.RemapLines(prev, next)
	if e.logger != nil {
		e.logger.Debug("frame recomputed", "x", next.X, "y", next.Y, "w", next.W, "h", next.H, "ratio", next.Label())
	}
}

// SetMode switches the creation mode.
func (e *Editor) SetMode(m Mode) {
	if e == nil {
		return
	}
	e.mode = m
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode {
	if e == nil {
		return ModeDot
	}
	return e.mode
}

// Selection returns the selected line index.
func (e *Editor) Selection() (int, bool) {
	if e == nil || e.selection == NoSelection {
		return NoSelection, false
	}
	return e.selection, true
}

// DeleteVisible reports whether the delete action applies.
func (e *Editor) DeleteVisible() bool {
	_, ok := e.Selection()
	return ok
}

// PointerDown resolves p to a selection, a new annotation or a cleared
// selection. A hit arms the drag in every mode. Select mode never creates,
// and neither does a miss outside the frame.
func (e *Editor) PointerDown(p frame.Point) {
	if e == nil {
		return
	}
	if i, ok := e.store.FindLineAt(e.frame, p); ok {
		e.setSelection(i)
		e.drag.Arm(i, p)
		return
	}
	e.setSelection(NoSelection)
	e.drag.Reset()
	if e.mode == ModeSelect || !e.frame.Contains(p) {
		return
	}
	if e.mode == ModeDot {
		e.store.AddDot(e.frame, p)
		return
	}
	o, ok := e.mode.orientation()
	if !ok {
		return
	}
	if i, ok := e.store.AddLine(e.frame, o, p); ok {
		e.setSelection(i)
		e.drag.Arm(i, p)
	}
}

// PointerMove drags the selected line. It reports whether a line moved.
func (e *Editor) PointerMove(p frame.Point) bool {
	if e == nil || e.selection == NoSelection {
		return false
	}
	if i, ok := e.drag.Index(); !ok || i != e.selection {
		return false
	}
	return e.drag.Move(e.store, e.frame, p)
}

// PointerUp ends any drag. The selection is kept.
func (e *Editor) PointerUp() {
	if e == nil {
		return
	}
	e.drag.Release()
}

// DeleteSelected removes the selected line. It reports whether a line was removed.
func (e *Editor) DeleteSelected() bool {
	if e == nil || e.selection == NoSelection {
		return false
	}
	if !e.store.DeleteLine(e.selection) {
		return false
	}
	e.drag.Reset()
	e.setSelection(NoSelection)
	return true
}

// Snapshot copies the state the compositor draws from.
func (e *Editor) Snapshot() Snapshot {
	if e == nil {
		return Snapshot{Selection: NoSelection}
	}
	return Snapshot{
		ViewW:     e.viewW,
		ViewH:     e.viewH,
		Frame:     e.frame,
		Dots:      e.store.Dots(),
		Lines:     e.store.Lines(),
		Selection: e.selection,
		Revision:  e.store.Revision(),
	}
}

func (e *Editor) setSelection(i int) {
	prev := e.selection
	if prev == i {
		return
	}
	e.selection = i
	for _, l := range e.listeners {
		l(prev, i)
	}
}
