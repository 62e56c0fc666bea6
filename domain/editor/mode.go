package editor

import (
	"fmt"
	"strings"

	"github.com/soocke/layout-lens-go/domain/annotation"
)

// Mode selects what a pointer-down on empty frame space creates.
type Mode int

const (
	ModeDot Mode = iota
	ModeVertical
	ModeHorizontal
	ModeSlant
	ModeSelect
)

// Modes lists every mode in toolbar order.
var Modes = []Mode{ModeDot, ModeVertical, ModeHorizontal, ModeSlant, ModeSelect}

func (m Mode) String() string {
	switch m {
	case ModeDot:
		return "dot"
	case ModeVertical:
		return "vertical"
	case ModeHorizontal:
		return "horizontal"
	case ModeSlant:
		return "slant"
	case ModeSelect:
		return "select"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name as written by Mode.String.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return ModeDot, fmt.Errorf("unknown mode %q", s)
}

// orientation maps line-creating modes to their line orientation.
func (m Mode) orientation() (annotation.Orientation, bool) {
	switch m {
	case ModeVertical:
		return annotation.OrientationVertical, true
	case ModeHorizontal:
		return annotation.OrientationHorizontal, true
	case ModeSlant:
		return annotation.OrientationSlanted, true
	}
	return 0, false
}
