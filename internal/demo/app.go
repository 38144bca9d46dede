package demo

import (
	"context"
	"log/slog"

	"github.com/vango-dev/feather/pkg/assets"
	"github.com/vango-dev/feather/pkg/render"
)

// Options configures the document shell.
type Options struct {
	Title        string
	Lang         string
	ClientScript string

	// Stylesheet is linked from every page when set.
	Stylesheet string

	// Assets resolves the client script and stylesheet to their served
	// URLs. Nil references them as given.
	Assets assets.Resolver
}

// App renders the demo pages on one runtime.
type App struct {
	rt    *render.Runtime
	store *Store
	opts  Options
}

// New creates an App. A nil runtime means render.Default().
func New(rt *render.Runtime, store *Store, opts Options) *App {
	if rt == nil {
		rt = render.Default()
	}
	if opts.Title == "" {
		opts.Title = "Feather"
	}
	return &App{rt: rt, store: store, opts: opts}
}

// Store returns the app's store.
func (a *App) Store() *Store {
	return a.store
}

// Greeting renders a hello line. name is escaped.
func (a *App) Greeting(name string) *render.Render {
	return a.rt.HTML(`<div class="greeting">Hello, `, render.Escape(name), `!</div>`)
}

// TodoItem renders one entry. On a client runtime it logs when the item
// enters and leaves the document.
func (a *App) TodoItem(todo Todo) *render.Render {
	rt := a.rt
	return rt.Func(func() *render.Render {
		// Registration only fails outside a component scope, and rt.Func
		// opens one. In server mode it is a no-op.
		_ = rt.OnMount(func() {
			rt.Logger().Debug("todo mounted", "title", todo.Title)
		})
		_ = rt.OnUnmount(func() {
			rt.Logger().Debug("todo unmounted", "title", todo.Title)
		})

		class := ""
		if todo.Done {
			class = ` class="done"`
		}
		return rt.HTML(`<li`, class, `>`, todo, `</li>`)
	})
}

// TodoList renders the whole list, one nested render per todo.
func (a *App) TodoList() *render.Render {
	todos := a.store.List()
	items := make([]*render.Render, 0, len(todos))
	for _, t := range todos {
		items = append(items, a.TodoItem(t))
	}

	var empty any
	if len(items) == 0 {
		empty = `<p class="empty">Nothing to do.</p>`
	}
	return a.rt.HTML(`<ul id="todos">`, items, `</ul>`, empty, ``)
}

// Document renders the full page around the todo list.
func (a *App) Document() *render.Render {
	return a.page(a.opts.Title, a.TodoList())
}

// HelloDocument renders the full page around a greeting.
func (a *App) HelloDocument(name string) *render.Render {
	return a.page("Hello, "+name, a.Greeting(name))
}

func (a *App) page(title string, body *render.Render) *render.Render {
	script := a.opts.ClientScript
	if script == "" {
		script = render.DefaultClientScript
	}
	if script != "-" {
		script = a.asset(script)
	}

	var links []render.LinkTag
	if a.opts.Stylesheet != "" {
		links = append(links, render.LinkTag{Rel: "stylesheet", Href: a.asset(a.opts.Stylesheet)})
	}

	return a.rt.Page(render.PageData{
		Title:        title,
		Lang:         a.opts.Lang,
		ClientScript: script,
		Meta: []render.MetaTag{
			{HTTPEquiv: "X-UA-Compatible", Content: "IE=edge"},
		},
		Links: links,
		Body:  body,
	})
}

func (a *App) asset(source string) string {
	if a.opts.Assets == nil {
		return source
	}
	return a.opts.Assets.Asset(source)
}

// Route is a static page of the app.
type Route struct {
	Path  string
	Title string
	Build func(ctx context.Context) (*render.Render, error)
}

// Routes lists the pages that exist without request input, in a stable
// order. These are the pages the server registers and the exporter writes.
func (a *App) Routes() []Route {
	return []Route{
		{
			Path:  "/",
			Title: a.opts.Title,
			Build: func(context.Context) (*render.Render, error) {
				return a.Document(), nil
			},
		},
		{
			Path:  "/hello",
			Title: "Hello",
			Build: func(context.Context) (*render.Render, error) {
				return a.HelloDocument("World"), nil
			},
		},
	}
}

// Route returns the route registered for path.
func (a *App) Route(path string) (Route, bool) {
	for _, r := range a.Routes() {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// LogValue implements slog.LogValuer.
func (a *App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("title", a.opts.Title),
		slog.Int("todos", a.store.Len()),
	)
}
