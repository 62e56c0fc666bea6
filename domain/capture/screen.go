package capture

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/vova616/screenshot"
)

// ScreenSource captures the whole active monitor.
type ScreenSource struct {
	open atomic.Bool
}

// NewScreenSource returns the screen capture device.
func NewScreenSource() *ScreenSource { return &ScreenSource{} }

func (s *ScreenSource) Device() Device {
	return Device{ID: "screen", Label: "Screen", Facing: FacingEnvironment}
}

// Open probes the display so a missing X server fails here instead of on
// every grab.
func (s *ScreenSource) Open() error {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return fmt.Errorf("screen rect: %w", err)
	}
	if r.Empty() {
		return fmt.Errorf("screen rect: empty %v", r)
	}
	s.open.Store(true)
	return nil
}

func (s *ScreenSource) Grab() (*image.RGBA, error) {
	if !s.open.Load() {
		return nil, ErrNotReady
	}
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *ScreenSource) Close() error {
	s.open.Store(false)
	return nil
}
