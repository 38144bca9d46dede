// Package server serves renders over HTTP.
//
// Pages are functions from a request to a render; the response body is the
// render's serialization. Everything else (routing, static files, metrics,
// tracing, request logs) is plain chi middleware around that.
//
//	srv := server.New(server.DefaultConfig(), server.WithLogger(logger))
//	srv.Page("/", func(r *http.Request) (*render.Render, error) {
//	    return render.HTML(`<h1>`, "Hello", `</h1>`), nil
//	})
//	err := srv.ListenAndServe(ctx)
package server
