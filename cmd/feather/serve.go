package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/feather/internal/config"
	"github.com/vango-dev/feather/internal/demo"
	"github.com/vango-dev/feather/pkg/middleware"
	"github.com/vango-dev/feather/pkg/render"
	"github.com/vango-dev/feather/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port  int
		host  string
		todos []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the application over HTTP",
		Long: `Serve every page of the application, the static directory and,
when enabled, Prometheus metrics.

Examples:
  feather serve
  feather serve --port=8080 --todo="buy milk" --todo="ship it"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, todos)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().StringArrayVar(&todos, "todo", nil, "Seed a todo (repeatable)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, todos []string) error {
	logger := newLogger(cfg, os.Stderr)

	var opts []server.Option
	opts = append(opts, server.WithLogger(logger))

	var recorder render.Recorder
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
		recorder = m
		opts = append(opts, server.WithMetrics(m, reg))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, server.WithTracing(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}

	cacheControl := server.CacheControlNone
	if cfg.Static.CacheControl == "production" {
		cacheControl = server.CacheControlProduction
	}
	srv := server.New(&server.Config{
		Address:         cfg.ServerAddress(),
		StaticDir:       cfg.PublicPath(),
		StaticPrefix:    cfg.Static.Prefix,
		CacheControl:    cacheControl,
		MetricsPath:     cfg.Metrics.Path,
		ShutdownTimeout: cfg.ShutdownTimeout(),
	}, opts...)

	app, err := newApp(cfg, logger, recorder, todos)
	if err != nil {
		return err
	}
	registerPages(srv, app)

	logger.Info("serving", "app", app, "address", cfg.ServerAddress())
	return srv.ListenAndServe(ctx)
}

// registerPages mounts every static route plus the parameterized greeting.
func registerPages(srv *server.Server, app *demo.App) {
	for _, route := range app.Routes() {
		build := route.Build
		srv.Page(route.Path, func(r *http.Request) (*render.Render, error) {
			return build(r.Context())
		})
	}
	srv.Page("/hello/{name}", func(r *http.Request) (*render.Render, error) {
		return app.HelloDocument(chi.URLParam(r, "name")), nil
	})
}
