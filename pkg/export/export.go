package export

import (
	"context"
	stderrors "errors"
	"log/slog"
	"path"
	"strings"

	"github.com/vango-dev/feather/internal/errors"
	"github.com/vango-dev/feather/pkg/render"
)

var (
	// ErrNoPages is returned when Export is given nothing to write.
	ErrNoPages = stderrors.New("export: no pages")

	// ErrInvalidPath is returned for page paths that cannot become keys.
	ErrInvalidPath = stderrors.New("export: invalid page path")
)

// Page is one exported document.
type Page struct {
	// Path is the URL path, e.g. "/" or "/about".
	Path string

	// Build produces the page.
	Build func(ctx context.Context) (*render.Render, error)
}

// Result summarizes an export.
type Result struct {
	// Locations lists where each page went, in page order.
	Locations []string

	// Bytes is the total size written.
	Bytes int64
}

// Option configures Export.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the export logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Export builds every page and writes it to sink. It stops at the first
// failure; pages already written stay written.
func Export(ctx context.Context, sink Sink, pages []Page, opts ...Option) (*Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if len(pages) == 0 {
		return nil, errors.New("E100").Wrap(ErrNoPages)
	}

	res := &Result{}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key, err := KeyFor(p.Path)
		if err != nil {
			return res, err
		}
		r, err := p.Build(ctx)
		if err != nil {
			return res, errors.New("E080").WithDetailf("page %s", p.Path).Wrap(err)
		}

		body := []byte(r.String())
		if err := sink.Put(ctx, key, body, "text/html; charset=utf-8"); err != nil {
			return res, errors.New("E101").WithDetailf("%s: %v", sink.Location(key), err).Wrap(err)
		}

		loc := sink.Location(key)
		o.logger.Debug("page exported", "path", p.Path, "location", loc, "bytes", len(body))
		res.Locations = append(res.Locations, loc)
		res.Bytes += int64(len(body))
	}

	o.logger.Info("export complete", "pages", len(res.Locations), "bytes", res.Bytes)
	return res, nil
}

// KeyFor maps a page path to its object key. Paths with an extension keep
// it; every other path becomes a directory index.
func KeyFor(pagePath string) (string, error) {
	invalid := func(reason string) (string, error) {
		return "", errors.New("E102").WithDetailf("%q: %s", pagePath, reason).Wrap(ErrInvalidPath)
	}

	if !strings.HasPrefix(pagePath, "/") {
		return invalid("must start with /")
	}
	if strings.ContainsAny(pagePath, "{}*\\\x00") {
		return invalid("patterns and special characters cannot be exported")
	}
	for _, seg := range strings.Split(pagePath, "/") {
		if seg == "." || seg == ".." {
			return invalid("dot segments are not allowed")
		}
	}

	clean := strings.TrimPrefix(path.Clean(pagePath), "/")
	if clean == "" {
		return "index.html", nil
	}
	if path.Ext(clean) != "" && !strings.HasSuffix(pagePath, "/") {
		return clean, nil
	}
	return clean + "/index.html", nil
}
