package model

import (
	"sync/atomic"
)

// SourceModel tracks the active capture device and whether the last
// acquisition failed. The zero value has no device and is usable.
// Concurrency-safe via atomics because capture callbacks and presenter ticks may race.
type SourceModel struct {
	device atomic.Value // string
	failed atomic.Bool
}

// Device returns the label of the active device, or "".
func (m *SourceModel) Device() string {
	if m == nil {
		return ""
	}
	if v, ok := m.device.Load().(string); ok {
		return v
	}
	return ""
}

// SetDevice records a successful acquisition of label.
func (m *SourceModel) SetDevice(label string) {
	if m == nil {
		return
	}
	m.device.Store(label)
	m.failed.Store(false)
}

// SetFailed records a failed acquisition and clears the device.
func (m *SourceModel) SetFailed() {
	if m == nil {
		return
	}
	m.device.Store("")
	m.failed.Store(true)
}

// Failed reports whether the last acquisition failed.
func (m *SourceModel) Failed() bool {
	if m == nil {
		return false
	}
	return m.failed.Load()
}
