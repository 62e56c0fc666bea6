package model

import "strconv"

// ViewportModel holds the preview canvas size in pixels. Zero value means
// no size yet and is usable.
// No synchronization needed: updates occur on the UI thread.
type ViewportModel struct {
	w, h int
}

// NewViewportModel returns a model sized w x h.
func NewViewportModel(w, h int) *ViewportModel {
	m := &ViewportModel{}
	m.Set(w, h)
	return m
}

// Set stores the size and reports whether it changed. Non-positive sizes
// are ignored.
func (m *ViewportModel) Set(w, h int) bool {
	if m == nil || w <= 0 || h <= 0 {
		return false
	}
	if m.w == w && m.h == h {
		return false
	}
	m.w, m.h = w, h
	return true
}

// Size returns the stored size.
func (m *ViewportModel) Size() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.w, m.h
}

// ParseSize converts the width and height text that Tk reports for a
// <Configure> event. ok is false when either value is not a positive integer.
func ParseSize(width, height string) (w, h int, ok bool) {
	w, err := strconv.Atoi(width)
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err = strconv.Atoi(height)
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
