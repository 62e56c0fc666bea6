package capture

import (
	"errors"
	"image"
)

var (
	// ErrNoSource is returned when no capture device could be opened.
	ErrNoSource = errors.New("capture: no source available")
	// ErrNotReady is returned by a source that has no frame to hand out yet.
	ErrNotReady = errors.New("capture: source not ready")
)

// Facing values mirror camera facing modes. The screen is the
// "environment" device: it shows what is in front of the user.
const (
	FacingEnvironment = "environment"
	FacingUser        = "user"
)

// Device describes one capture source.
type Device struct {
	ID     string
	Label  string
	Facing string
}

// Source produces frames for the capture loop. Grab is called after a
// successful Open and may still be running when Close is called; it must
// then return ErrNotReady or a frame that the service discards.
type Source interface {
	Device() Device
	Open() error
	Grab() (*image.RGBA, error)
	Close() error
}

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest snapshot while Running reports activity.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}

// RasterSource is what the compositor needs from the video source: the
// newest still, if one has arrived.
type RasterSource interface {
	CurrentRaster() (image.Image, bool)
}

// ServiceContract exposes basic lifecycle control for capture services.
type ServiceContract interface {
	Start()
	Stop()
	Running() bool
}

// Switcher acquires and cycles capture devices.
type Switcher interface {
	AcquirePreferred() error
	Switch() error
	Current() (Device, bool)
}
