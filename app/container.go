package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/layout-lens-go/assets"
	"github.com/soocke/layout-lens-go/config"
	"github.com/soocke/layout-lens-go/domain/capture"
	"github.com/soocke/layout-lens-go/domain/compositor"
	"github.com/soocke/layout-lens-go/domain/editor"
	"github.com/soocke/layout-lens-go/domain/export"
	"github.com/soocke/layout-lens-go/ui/model"
	"github.com/soocke/layout-lens-go/ui/presenter"
	"github.com/soocke/layout-lens-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config  *config.Config
	CfgPath string
	Logger  *slog.Logger

	Editor     *editor.Editor
	Compositor *compositor.Compositor
	CaptureSvc capture.CaptureService
	Exporter   *export.Exporter
	Presets    []assets.RatioPreset

	Source   *model.SourceModel
	Viewport *model.ViewportModel
	Notice   *model.NoticeModel

	RootView  *view.RootView
	ExportWin *view.ExportWindow
	Settings  view.SettingsPanel

	// Presenters
	PreviewPresenter *presenter.PreviewPresenter
	PointerPresenter *presenter.PointerPresenter
	ToolbarPresenter *presenter.ToolbarPresenter
	NoticePresenter  *presenter.NoticePresenter
	StatusPresenter  *presenter.StatusPresenter
	CapturePresenter *presenter.CapturePresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Widgets are not created here;
// see RootView.Build.
func BuildContainer(cfg *config.Config, logger *slog.Logger, width, height int, cfgPath string) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}

	mode, err := editor.ParseMode(cfg.DefaultMode)
	if err != nil {
		logger.Warn("default mode", "error", err)
	}
	c.Editor = editor.New(logger, width, height, cfg.Ratio(), mode)

	c.Compositor, err = compositor.NewCompositor(logger, cfg.OverlayCacheSize)
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}

	c.Presets, err = assets.RatioPresets()
	if err != nil {
		return nil, fmt.Errorf("ratio presets: %w", err)
	}

	sources := []capture.Source{capture.NewScreenSource(), capture.NewPatternSource(width, height)}
	if cfg.ImageDir != "" {
		sources = append(sources, capture.NewImageSequenceSource(cfg.ImageDir))
	}
	interval := time.Duration(cfg.CaptureIntervalMS) * time.Millisecond
	c.CaptureSvc = capture.NewCaptureService(logger, interval, cfg.PreferredSource, sources...)

	c.Exporter = export.NewExporter(cfg, nil, logger)
	c.ExportWin = view.NewExportWindow(c.Exporter.Save, logger)
	c.Exporter.SetPresenter(c.ExportWin)

	c.Source = &model.SourceModel{}
	c.Viewport = model.NewViewportModel(width, height)
	c.Notice = model.NewNoticeModel(model.DefaultNoticeTTL)

	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	c.NoticePresenter = presenter.NewNoticePresenter(c.Notice, c.RootView)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Editor, c.CaptureSvc, c.Compositor, c.RootView, logger)
	c.PointerPresenter = presenter.NewPointerPresenter(c.Editor, c.Viewport, c.RootView)
	c.ToolbarPresenter = presenter.NewToolbarPresenter(c.Editor, c.RootView, c.NoticePresenter, logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.Source, c.CaptureSvc, c.RootView)
	c.CapturePresenter = presenter.NewCapturePresenter(presenter.CaptureDeps{
		Model:    c.Source,
		Switcher: c.CaptureSvc,
		Raster:   c.CaptureSvc,
		Scene:    c.Editor,
		Composer: c.Compositor,
		Exporter: c.Exporter,
		Notice:   c.NoticePresenter,
		Logger:   logger,
	})
	c.Settings = view.NewSettingsPanel(cfg, cfgPath, c.ToolbarPresenter.SelectRatioText, logger)

	c.Editor.AddSelectionListener(func(prev, next int) {
		c.RootView.SetDeleteVisible(next != editor.NoSelection)
	})
	return c, nil
}

// Handlers binds the view actions to the presenters. exit is invoked by the
// Exit button.
func (c *AppContainer) Handlers(exit func(), toggleTheme func()) view.Handlers {
	return view.Handlers{
		SelectMode:  c.ToolbarPresenter.SelectMode,
		SelectRatio: c.ToolbarPresenter.SelectRatio,
		Delete:      c.PointerPresenter.Delete,
		Capture: func() {
			_, _ = c.CapturePresenter.Export()
		},
		Switch: func() {
			_ = c.CapturePresenter.Switch()
		},
		Settings:    c.Settings.OpenOrFocus,
		ToggleTheme: toggleTheme,
		Exit:        exit,
		Preview: view.PreviewHandlers{
			Press:   c.PointerPresenter.Press,
			Motion:  c.PointerPresenter.Motion,
			Release: c.PointerPresenter.Release,
			Resize:  c.PointerPresenter.Resize,
		},
	}
}
