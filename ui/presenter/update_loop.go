package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Preview  *PreviewPresenter
	Notice   *NoticePresenter
	Status   *StatusPresenter
	Schedule func()
}

func NewLoop(preview *PreviewPresenter, notice *NoticePresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Preview: preview, Notice: notice, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Preview != nil {
		l.Preview.Tick()
	}
	if l.Notice != nil {
		l.Notice.Tick(now)
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
