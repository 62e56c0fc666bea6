package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/layout-lens-go/app"
	"github.com/soocke/layout-lens-go/config"
)

func main() {
	cfgPath := flag.String("config", "", "path to a JSON or YAML config file (default: per-user config dir)")
	source := flag.String("source", "", "preferred capture source: screen, pattern or images")
	imageDir := flag.String("images", "", "directory of frames for the images source")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	path := *cfgPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, "config path:", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if *source != "" {
		cfg.PreferredSource = *source
	}
	if *imageDir != "" {
		cfg.ImageDir = *imageDir
	}
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", path, "error", err)
	}

	application, err := app.NewApp("Layout Lens", cfg.WindowWidth, cfg.WindowHeight, cfg, logger, path)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	application.Start()
}
