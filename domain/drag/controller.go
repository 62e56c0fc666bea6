package drag

import (
	"log/slog"

	"github.com/soocke/layout-lens-go/domain/frame"
)

// Controller moves the selected line under pointer motion.
//
// States: Idle -> Armed(index) -> Dragging(index) -> Idle. Arming happens on
// the same pointer-down that selects or creates a line. It is driven from the
// UI event loop only and does no locking.
type Controller struct {
	state     DragState
	index     int
	last      frame.Point
	logger    *slog.Logger
	listeners []DragStateListener
}

// NewController returns an idle controller.
func NewController(logger *slog.Logger) *Controller {
	return &Controller{state: StateIdle, index: -1, logger: logger}
}

// AddListener registers l for state transitions.
func (c *Controller) AddListener(l DragStateListener) {
	if c == nil || l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// State returns the current state.
func (c *Controller) State() DragState {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// Index returns the armed line index, if any.
func (c *Controller) Index() (int, bool) {
	if c == nil || c.state == StateIdle {
		return -1, false
	}
	return c.index, true
}

// Arm starts a drag of line i with p as the first pointer sample.
func (c *Controller) Arm(i int, p frame.Point) {
	if c == nil || i < 0 {
		return
	}
	c.index = i
	c.last = p
	c.transition(StateArmed)
}

// Move applies the pointer delta since the previous sample to the armed line.
// It reports whether the line changed.
func (c *Controller) Move(store LineStore, f frame.Frame, p frame.Point) bool {
	if c == nil || c.state == StateIdle || store == nil {
		return false
	}
	dx, dy := p.X-c.last.X, p.Y-c.last.Y
	c.last = p
	l, ok := store.Line(c.index)
	if !ok {
		c.Reset()
		return false
	}
	c.transition(StateDragging)
	next := Apply(l, f, dx, dy)
	if next == l {
		return false
	}
	return store.SetLine(c.index, next)
}

// Release ends the drag. The selection owned by the caller is untouched.
func (c *Controller) Release() {
	if c == nil {
		return
	}
	c.transition(StateIdle)
}

// Reset returns to Idle and forgets the armed index.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.transition(StateIdle)
	c.index = -1
}

func (c *Controller) transition(next DragState) {
	prev := c.state
	if prev == next {
		return
	}
	c.state = next
	if c.logger != nil {
		c.logger.Debug("drag state transition", "from", prev.String(), "to", next.String(), "index", c.index)
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}
