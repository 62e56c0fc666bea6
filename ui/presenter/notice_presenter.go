package presenter

import (
	"time"

	"github.com/soocke/layout-lens-go/ui/model"
)

// Notifier raises a transient user-visible message.
type Notifier interface {
	Show(text string)
}

// NoticeView displays the current notice; "" hides it.
type NoticeView interface {
	SetNotice(text string)
}

// NoticePresenter moves notices from the model to the view.
type NoticePresenter struct {
	model *model.NoticeModel
	view  NoticeView
	now   func() time.Time
	shown string
}

func NewNoticePresenter(m *model.NoticeModel, view NoticeView) *NoticePresenter {
	return &NoticePresenter{model: m, view: view, now: time.Now}
}

// Show records text and displays it immediately.
func (p *NoticePresenter) Show(text string) {
	if p == nil || p.model == nil {
		return
	}
	now := p.now()
	p.model.Show(text, now)
	p.Tick(now)
}

// Tick updates the view when the visible notice changed.
func (p *NoticePresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	text := p.model.Text(now)
	if text == p.shown {
		return
	}
	p.shown = text
	p.view.SetNotice(text)
}
