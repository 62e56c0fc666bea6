package model

import (
	"time"
)

// DefaultNoticeTTL is how long a notice stays visible.
const DefaultNoticeTTL = 4 * time.Second

// NoticeModel holds a transient user-visible message. Presenters should poll
// Text() on each tick. The zero value is ready to use.
type NoticeModel struct {
	text    string
	expires time.Time
	ttl     time.Duration
}

// NewNoticeModel returns a model whose notices last ttl.
func NewNoticeModel(ttl time.Duration) *NoticeModel {
	return &NoticeModel{ttl: ttl}
}

// Show replaces the current notice.
func (m *NoticeModel) Show(text string, now time.Time) {
	if m == nil {
		return
	}
	ttl := m.ttl
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	m.text = text
	m.expires = now.Add(ttl)
}

// Text returns the notice visible at now, or "" once it expired.
func (m *NoticeModel) Text(now time.Time) string {
	if m == nil || m.text == "" {
		return ""
	}
	if !now.Before(m.expires) {
		m.text = ""
		return ""
	}
	return m.text
}
