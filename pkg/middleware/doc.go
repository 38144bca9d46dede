// Package middleware provides observability for feather servers.
//
// # Prometheus Metrics
//
// Metrics is both an HTTP middleware and a render.Recorder. Pass it to the
// runtime to count engine activity and wrap the router to count requests:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("docs"))
//	rt := render.NewRuntime(render.Options{Recorder: m})
//	r.Use(m.Handler)
//
// Collected series (default namespace "feather"):
//   - feather_renders_built_total: renders created
//   - feather_renders_materialized_total: fragments parsed
//   - feather_render_mounts_total / feather_render_unmounts_total
//   - feather_http_requests_total{route,status}
//   - feather_http_request_duration_seconds{route}
//   - feather_page_render_errors_total{route}
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request using the global tracer
// provider. Configure the provider in main() before serving.
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("docs")))
package middleware
