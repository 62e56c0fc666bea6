package presenter

import (
	"image"
	"log/slog"
	"sync"

	"github.com/soocke/layout-lens-go/domain/capture"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/frame"
)

// SceneSource supplies the current editor state.
type SceneSource interface {
	Snapshot() editor.Snapshot
}

// FrameSource supplies the most recent captured frame.
type FrameSource interface {
	LatestFrame() capture.FrameSnapshot
}

// PreviewComposer flattens a raster and the live overlay.
type PreviewComposer interface {
	Preview(raster image.Image, s editor.Snapshot) (*image.RGBA, error)
}

// PreviewView displays the composed preview.
type PreviewView interface {
	UpdatePreview(img image.Image)
}

type previewKey struct {
	sequence  uint64
	revision  uint64
	selection int
	frame     frame.Frame
	w, h      int
}

type previewTask struct {
	key    previewKey
	raster image.Image
	scene  editor.Snapshot
}

type previewResult struct {
	key previewKey
	img *image.RGBA
	err error
}

// PreviewPresenter composes the preview off the UI thread whenever the
// captured frame or the editor state changed, and pushes finished images to
// the view on the next tick.
type PreviewPresenter struct {
	Scene    SceneSource
	Frames   FrameSource
	Composer PreviewComposer
	View     PreviewView
	logger   *slog.Logger

	workerOnce sync.Once
	workCh     chan previewTask
	resultCh   chan previewResult

	dispatched previewKey
	pending    bool
	closed     bool
}

// NewPreviewPresenter constructs a preview presenter. frames may be nil, in
// which case only the overlay is drawn.
func NewPreviewPresenter(scene SceneSource, frames FrameSource, composer PreviewComposer, view PreviewView, logger *slog.Logger) *PreviewPresenter {
	return &PreviewPresenter{
		Scene:    scene,
		Frames:   frames,
		Composer: composer,
		View:     view,
		logger:   logger,
		workCh:   make(chan previewTask, 1),
		resultCh: make(chan previewResult, 1),
	}
}

// Tick applies finished compositions and schedules a new one when the input
// changed since the last dispatch.
func (p *PreviewPresenter) Tick() {
	if p == nil || p.closed || p.Scene == nil || p.Composer == nil || p.View == nil {
		return
	}
	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	scene := p.Scene.Snapshot()
	if scene.ViewW <= 0 || scene.ViewH <= 0 {
		return
	}
	var snap capture.FrameSnapshot
	if p.Frames != nil {
		snap = p.Frames.LatestFrame()
	}
	key := previewKey{
		sequence:  snap.Sequence,
		revision:  scene.Revision,
		selection: scene.Selection,
		frame:     scene.Frame,
		w:         scene.ViewW,
		h:         scene.ViewH,
	}
	if p.pending && key == p.dispatched {
		return
	}
	p.dispatched = key
	p.pending = true
	var raster image.Image
	if snap.Image != nil {
		raster = snap.Image
	}
	p.dispatchTask(previewTask{key: key, raster: raster, scene: scene})
}

func (p *PreviewPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker(p.workCh)
	})
}

func (p *PreviewPresenter) runWorker(work <-chan previewTask) {
	for task := range work {
		img, err := p.compose(task)
		res := previewResult{key: task.key, img: img, err: err}
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *PreviewPresenter) compose(task previewTask) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("preview compose panic", "error", r)
			}
			img = nil
		}
	}()
	return p.Composer.Preview(task.raster, task.scene)
}

func (p *PreviewPresenter) dispatchTask(task previewTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *PreviewPresenter) handleResult(res previewResult) {
	if res.err != nil || res.img == nil {
		if res.err != nil && p.logger != nil {
			p.logger.Error("preview compose", "error", res.err)
		}
		if res.key == p.dispatched {
			p.pending = false
		}
		return
	}
	p.View.UpdatePreview(res.img)
}

// Close stops the compose worker. Later ticks do nothing.
func (p *PreviewPresenter) Close() {
	if p == nil || p.closed || p.workCh == nil {
		return
	}
	p.closed = true
	p.workerOnce.Do(func() {})
	close(p.workCh)
}
