package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/layout-lens-go/config"
	dbg "github.com/soocke/layout-lens-go/debug"
	"github.com/soocke/layout-lens-go/ui/presenter"
	"github.com/soocke/layout-lens-go/ui/theme"
)

const debugLogInterval = 10 * time.Second

type app struct {
	config  *config.Config
	logger  *slog.Logger
	width   int
	height  int
	tick    time.Duration
	afterID string

	container *AppContainer
	cancel    context.CancelFunc
	closed    bool
}

// NewApp configures the root window and builds the container.
func NewApp(title string, width, height int, cfg *config.Config, logger *slog.Logger, cfgPath string) (*app, error) {
	a := &app{config: cfg, logger: logger, width: width, height: height}
	a.tick = time.Duration(cfg.TickMS) * time.Millisecond

	c, err := BuildContainer(cfg, logger, width, height, cfgPath)
	if err != nil {
		return nil, err
	}
	a.container = c

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a, nil
}

// Start builds the widgets, acquires a capture device and runs the Tk event
// loop until the window closes.
func (a *app) Start() {
	theme.InitStyles()
	c := a.container
	c.RootView.Build(c.Presets, c.Handlers(a.exitHandler, func() { theme.ToggleDark() }))
	c.Loop = presenter.NewLoop(c.PreviewPresenter, c.NoticePresenter, c.StatusPresenter, a.scheduleUpdate)
	c.ToolbarPresenter.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if a.config.Debug {
		dbg.StartGoroutineLogger(ctx, debugLogInterval, a.logger)
		dbg.StartMemLogger(ctx, debugLogInterval, a.logger)
	}

	// Without a device the editor still works on a blank canvas.
	_ = c.CapturePresenter.Acquire()

	a.scheduleUpdate()
	App.Wait()
	a.shutdown()
}

func (a *app) update() {
	defer a.recoverLog("update")
	if a.container != nil && a.container.Loop != nil {
		a.container.Loop.Tick()
		return
	}
	a.scheduleUpdate()
}

func (a *app) recoverLog(where string) {
	if r := recover(); r != nil {
		if a.logger != nil {
			a.logger.Error("ui panic", "where", where, "error", r, "stack", string(debug.Stack()))
		}
		a.scheduleUpdate()
	}
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	a.shutdown()
	Destroy(App)
}

// shutdown stops background work. Safe to call more than once.
func (a *app) shutdown() {
	if a.closed {
		return
	}
	a.closed = true
	if a.cancel != nil {
		a.cancel()
	}
	c := a.container
	if c == nil {
		return
	}
	c.PreviewPresenter.Close()
	if c.CaptureSvc != nil {
		if err := c.CaptureSvc.Close(); err != nil && a.logger != nil {
			a.logger.Error("close capture", "error", err)
		}
	}
	if c.Compositor != nil {
		c.Compositor.Purge()
	}
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.tick, func() { a.update() })
}
