package drag

import (
	"github.com/soocke/layout-lens-go/domain/annotation"
)

// DragState enumerates the drag controller states.
type DragState int

const (
	StateIdle DragState = iota
	StateArmed
	StateDragging
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// DragStateListener is called on each state transition.
type DragStateListener func(prev, next DragState)

// LineStore is the subset of the annotation store the controller mutates.
type LineStore interface {
	Line(i int) (annotation.Line, bool)
	SetLine(i int, l annotation.Line) bool
}
