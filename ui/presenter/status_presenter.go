package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/layout-lens-go/domain/capture"
	"github.com/soocke/layout-lens-go/ui/model"
)

const statusInterval = 500 * time.Millisecond

// StatsSource reports capture loop counters.
type StatsSource interface {
	Stats() capture.CaptureStats
}

// StatusView displays the capture status line.
type StatusView interface {
	SetStatus(text string)
}

// StatusPresenter formats the active device and capture rate for the view.
type StatusPresenter struct {
	source *model.SourceModel
	stats  StatsSource
	view   StatusView

	last         time.Time
	lastCaptures uint64
	text         string
}

// NewStatusPresenter returns a new StatusPresenter.
func NewStatusPresenter(source *model.SourceModel, stats StatsSource, view StatusView) *StatusPresenter {
	return &StatusPresenter{source: source, stats: stats, view: view}
}

// Tick refreshes the status line at most every statusInterval.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	if !p.last.IsZero() && now.Sub(p.last) < statusInterval {
		return
	}
	text := p.format(now)
	if text != p.text {
		p.text = text
		p.view.SetStatus(text)
	}
}

func (p *StatusPresenter) format(now time.Time) string {
	if p.source.Failed() {
		p.last = now
		return "Source: unavailable"
	}
	device := p.source.Device()
	if device == "" {
		p.last = now
		return "Source: none"
	}
	if p.stats == nil {
		p.last = now
		return "Source: " + device
	}
	st := p.stats.Stats()
	fps := 0.0
	if !p.last.IsZero() && st.Captures >= p.lastCaptures {
		if dt := now.Sub(p.last).Seconds(); dt > 0 {
			fps = float64(st.Captures-p.lastCaptures) / dt
		}
	}
	p.last = now
	p.lastCaptures = st.Captures
	return fmt.Sprintf("Source: %s  %.1f fps", device, fps)
}
