package main

import (
	"log/slog"

	"github.com/vango-dev/feather/internal/config"
	"github.com/vango-dev/feather/internal/demo"
	"github.com/vango-dev/feather/pkg/assets"
	"github.com/vango-dev/feather/pkg/render"
)

// newApp builds the demo application on a server-mode runtime.
func newApp(cfg *config.Config, logger *slog.Logger, recorder render.Recorder, todos []string) (*demo.App, error) {
	var manifest *assets.Manifest
	if path := cfg.ManifestPath(); path != "" {
		m, err := assets.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("asset manifest loaded", "path", path, "entries", m.Len())
		manifest = m
	}

	rt := render.NewRuntime(render.Options{
		PlaceholderPrefix: cfg.Render.PlaceholderPrefix,
		Logger:            logger,
		Recorder:          recorder,
	})
	return demo.New(rt, demo.NewStore(todos...), demo.Options{
		Title:        cfg.Name,
		Lang:         cfg.Render.Lang,
		ClientScript: cfg.Render.ClientScript,
		Stylesheet:   cfg.Render.Stylesheet,
		Assets:       assets.NewResolver(manifest, cfg.Static.Prefix),
	}), nil
}
