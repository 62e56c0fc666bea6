package view

import (
	"github.com/soocke/layout-lens-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the capture source line and the transient notice.
type StatusBar interface {
	SetStatus(text string)
	SetNotice(text string)
}

type statusBar struct {
	statusLbl *LabelWidget
	noticeLbl *TLabelWidget
}

// NewStatusBar creates the status and notice labels in row. The notice takes
// the remaining columns.
func NewStatusBar(row, columns int) StatusBar {
	s := &statusBar{
		statusLbl: Label(Txt("Source: none"), Anchor("w"), Width(28)),
		noticeLbl: TLabel(Txt(""), Anchor("e")),
	}
	Grid(s.statusLbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	span := columns - 1
	if span < 1 {
		span = 1
	}
	Grid(s.noticeLbl, Row(row), Column(1), Columnspan(span), Sticky("e"), Padx("0.4m"), Pady("0.2m"))
	return s
}

func (s *statusBar) SetStatus(text string) {
	if s == nil || s.statusLbl == nil {
		return
	}
	s.statusLbl.Configure(Txt(text))
}

func (s *statusBar) SetNotice(text string) {
	if s == nil || s.noticeLbl == nil {
		return
	}
	style := theme.StyleNoticeLabel
	if text == "" {
		style = "TLabel"
	}
	s.noticeLbl.Configure(Txt(text), Style(style))
}
