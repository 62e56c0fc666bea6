package capture

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg"
)

var barColors = []string{"#c0c0c0", "#c0c000", "#00c0c0", "#00c000", "#c000c0", "#c00000", "#0000c0"}

// PatternSource renders a color-bar test card with a sweeping marker. It
// needs no hardware and always opens.
type PatternSource struct {
	w, h int

	mu    sync.Mutex
	open  bool
	frame int
}

// NewPatternSource returns a w x h test card source.
func NewPatternSource(w, h int) *PatternSource {
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return &PatternSource{w: w, h: h}
}

func (s *PatternSource) Device() Device {
	return Device{ID: "pattern", Label: "Test pattern", Facing: FacingUser}
}

func (s *PatternSource) Open() error {
	s.mu.Lock()
	s.open, s.frame = true, 0
	s.mu.Unlock()
	return nil
}

func (s *PatternSource) Grab() (*image.RGBA, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	n := s.frame
	s.frame++
	s.mu.Unlock()

	dc := gg.NewContext(s.w, s.h)
	defer dc.Close()
	bw := float64(s.w) / float64(len(barColors))
	for i, c := range barColors {
		dc.SetHexColor(c)
		dc.DrawRectangle(float64(i)*bw, 0, bw+1, float64(s.h))
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("pattern bars: %w", err)
		}
	}
	x := float64((n * 8) % s.w)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(x, float64(s.h)*0.8, 12, float64(s.h)*0.2)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("pattern marker: %w", err)
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	if img, ok := dc.Image().(*image.RGBA); ok {
		return img, nil
	}
	return nil, fmt.Errorf("pattern: unexpected image type %T", dc.Image())
}

func (s *PatternSource) Close() error {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
	return nil
}
