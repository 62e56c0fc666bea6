package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

const (
	captureStatsLogInterval = 5 * time.Second
	defaultGrabInterval     = 100 * time.Millisecond
)

// CaptureService owns the capture devices, keeps one of them open and
// publishes its newest frame. Use NewCaptureService to construct an instance.
type CaptureService interface {
	ServiceContract
	Switcher
	RasterSource
	LatestFrame() FrameSnapshot
	Devices() []Device
	Stats() CaptureStats
	Close() error
}

type captureService struct {
	mu         sync.Mutex
	sources    []Source
	preferred  string
	current    int
	active     Source
	// generation changes whenever the active device is replaced; guarded by mu.
	generation uint64

	interval     time.Duration
	logger       *slog.Logger
	running      atomic.Bool
	stop         chan struct{}
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	switches     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewCaptureService constructs a capture service over sources. preferred
// names the device ID tried first by AcquirePreferred; when empty the first
// environment-facing device is used. A non-positive interval falls back to
// 100ms between grabs.
func NewCaptureService(logger *slog.Logger, interval time.Duration, preferred string, sources ...Source) CaptureService {
	return newCaptureService(logger, interval, preferred, sources...)
}

func newCaptureService(logger *slog.Logger, interval time.Duration, preferred string, sources ...Source) *captureService {
	if interval <= 0 {
		interval = defaultGrabInterval
	}
	return &captureService{sources: sources, preferred: preferred, current: -1, interval: interval, logger: logger}
}

func (s *captureService) Devices() []Device {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Device, 0, len(s.sources))
	for _, src := range s.sources {
		out = append(out, src.Device())
	}
	return out
}

func (s *captureService) Current() (Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Device{}, false
	}
	return s.active.Device(), true
}

// AcquirePreferred opens the preferred device, then any other device. It
// returns ErrNoSource when both attempts fail and starts the capture loop
// otherwise.
func (s *captureService) AcquirePreferred() error {
	s.mu.Lock()
	first := s.preferredIndex()
	var errs []error
	tried := -1
	if first >= 0 {
		tried = first
		err := s.openLocked(first)
		if err == nil {
			s.mu.Unlock()
			s.Start()
			return nil
		}
		errs = append(errs, err)
	}
	for i := range s.sources {
		if i == tried {
			continue
		}
		if err := s.openLocked(i); err != nil {
			errs = append(errs, err)
			break
		}
		s.mu.Unlock()
		s.Start()
		return nil
	}
	s.mu.Unlock()
	errs = append([]error{ErrNoSource}, errs...)
	return errors.Join(errs...)
}

// Switch advances to the next device in order. If it cannot be opened the
// service falls back to AcquirePreferred. Without devices it does nothing.
func (s *captureService) Switch() error {
	s.mu.Lock()
	n := len(s.sources)
	if n == 0 {
		s.mu.Unlock()
		return nil
	}
	next := (s.current + 1) % n
	err := s.openLocked(next)
	s.mu.Unlock()
	if err == nil {
		s.switches.Add(1)
		s.Start()
		return nil
	}
	if s.logger != nil {
		s.logger.Error("switch capture device", "error", err)
	}
	return s.AcquirePreferred()
}

func (s *captureService) preferredIndex() int {
	if s.preferred != "" {
		for i, src := range s.sources {
			if src.Device().ID == s.preferred {
				return i
			}
		}
	}
	for i, src := range s.sources {
		if src.Device().Facing == FacingEnvironment {
			return i
		}
	}
	return -1
}

// openLocked closes the active device and opens sources[i]. s.mu must be held.
func (s *captureService) openLocked(i int) error {
	if i < 0 || i >= len(s.sources) {
		return ErrNoSource
	}
	s.generation++
	if s.active != nil {
		if err := s.active.Close(); err != nil && s.logger != nil {
			s.logger.Error("close capture device", "error", err, "source", s.active.Device().ID)
		}
		s.active = nil
	}
	s.latest.Store(nil)
	src := s.sources[i]
	if err := src.Open(); err != nil {
		return fmt.Errorf("open %s: %w", src.Device().ID, err)
	}
	s.active = src
	s.current = i
	if s.logger != nil {
		s.logger.Info("capture device opened", "source", src.Device().ID, "label", src.Device().Label)
	}
	return nil
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

// CurrentRaster returns the newest frame, or false while the device warms up.
func (s *captureService) CurrentRaster() (image.Image, bool) {
	snap := s.latest.Load()
	if snap == nil || snap.Image == nil {
		return nil, false
	}
	return snap.Image, true
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Device:           snapshot.Device,
		Captures:         captures,
		Skipped:          skipped,
		Switches:         s.switches.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

func (s *captureService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return
	}
	s.running.Store(true)
	s.stop = make(chan struct{})
	go s.loop(s.stop)
}

func (s *captureService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return
	}
	s.running.Store(false)
	close(s.stop)
}

// Close stops the loop and releases the active device.
func (s *captureService) Close() error {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	err := s.active.Close()
	s.active = nil
	s.latest.Store(nil)
	return err
}

func (s *captureService) loop(stop <-chan struct{}) {
	defer func() {
		if r := recover(); r != nil {
			s.running.Store(false)
			if s.logger != nil {
				s.logger.Error("capture loop panic", "error", r, "stack", string(debug.Stack()))
			}
		}
	}()
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	grabTicker := time.NewTicker(s.interval)
	defer grabTicker.Stop()
	for {
		s.grabOnce()
		select {
		case <-stop:
			return
		case <-logTicker.C:
			s.logStats()
		case <-grabTicker.C:
		}
	}
}

// grabOnce grabs without holding mu so device changes are never blocked by a
// slow capture. A frame is published only if its device is still active.
func (s *captureService) grabOnce() {
	start := time.Now()
	s.mu.Lock()
	src, gen := s.active, s.generation
	s.mu.Unlock()
	if src == nil {
		s.skipped.Add(1)
		return
	}
	img, err := src.Grab()
	if err != nil {
		s.skipped.Add(1)
		if !errors.Is(err, ErrNotReady) && s.logger != nil {
			s.logger.Error("capture grab", "error", err, "source", src.Device().ID)
		}
		return
	}
	if img == nil {
		s.skipped.Add(1)
		return
	}
	elapsed := time.Since(start)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		s.skipped.Add(1)
		return
	}
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: img, Device: src.Device().ID, CapturedAt: time.Now(), Sequence: seq})
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"source", stats.Device,
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
